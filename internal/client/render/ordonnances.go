package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dontpanic-sante/dpcli/internal/client/models"
)

type ordonnanceItem struct {
	rec     models.Ordonnance
	visible bool
}

// ordoFilter is the prescriptions search state, separate from the
// conversation filter because both lists react to the same search box.
type ordonnanceView struct {
	items  []ordonnanceItem
	filter string
}

// SetOrdonnances replaces the prescription grid. The caller provides the
// list already sorted in its chosen direction.
func (r *Renderer) SetOrdonnances(list []models.Ordonnance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ordos.items = make([]ordonnanceItem, len(list))
	for i, o := range list {
		r.ordos.items[i] = ordonnanceItem{rec: o}
	}
	r.applyOrdoFilterLocked()
	r.renderOrdosLocked()
}

// FilterOrdonnances mirrors the search box: an item stays visible when the
// term appears in its lowercased title, doctor name, or tags.
func (r *Renderer) FilterOrdonnances(term string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ordos.filter = strings.ToLower(strings.TrimSpace(term))
	r.applyOrdoFilterLocked()
	r.renderOrdosLocked()
}

// VisibleOrdonnances returns the records currently passing the filter.
func (r *Renderer) VisibleOrdonnances() []models.Ordonnance {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Ordonnance
	for _, it := range r.ordos.items {
		if it.visible {
			out = append(out, it.rec)
		}
	}
	return out
}

func (r *Renderer) applyOrdoFilterLocked() {
	for i := range r.ordos.items {
		it := &r.ordos.items[i]
		if r.ordos.filter == "" {
			it.visible = true
			continue
		}
		hay := strings.ToLower(it.rec.DisplayTitle() + " " + it.rec.Doctor + " " + strings.Join(it.rec.Tags, " "))
		it.visible = strings.Contains(hay, r.ordos.filter)
	}
}

func (r *Renderer) renderOrdosLocked() {
	if r.w == nil {
		return
	}

	if len(r.ordos.items) == 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, emptyStyle.Render("Aucune ordonnance pour le moment."))
		fmt.Fprintln(r.w)
		return
	}

	rows := [][]string{}
	for _, it := range r.ordos.items {
		if !it.visible {
			continue
		}
		sub := it.rec.Doctor
		if sub == "" {
			sub = FormatLongDateFR(it.rec.Date.Time)
		}
		rows = append(rows, []string{
			sanitize(it.rec.DisplayTitle()),
			sanitize(sub),
			sanitize(strings.Join(it.rec.Tags, ", ")),
			it.rec.DisplayImage(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("36"))).
		Headers("Ordonnance", "Médecin / Date", "Tags", "Image").
		Rows(rows...)

	fmt.Fprintln(r.w, t)
	fmt.Fprintln(r.w)
}

// Package render turns record lists into terminal output and owns the
// in-page display state: sort order, search filter, and the relative-date
// labels that age while the screen stays open.
package render

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/dontpanic-sante/dpcli/internal/client/models"
	"github.com/dontpanic-sante/dpcli/internal/client/nav"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).PaddingLeft(2)
	ctaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true).PaddingLeft(2)
)

const emptyStateWidth = 60

type conversationItem struct {
	rec       models.Conversation
	dateLabel string
	visible   bool
}

// Renderer displays the conversation list. It keeps the last list it was
// given so the filter and the periodic date refresh can re-render without
// touching the network or the cache. A nil writer makes every render a
// defensive no-op.
type Renderer struct {
	mu     sync.Mutex
	w      io.Writer
	now    func() time.Time
	items  []conversationItem
	filter string
	ordos  ordonnanceView
}

func NewRenderer(w io.Writer, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{w: w, now: now}
}

// SetConversations replaces the rendered list. Records are sorted by last
// activity descending on every call; the order is never persisted. The
// current search filter is re-applied to the new items.
func (r *Renderer) SetConversations(list []models.Conversation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := make([]models.Conversation, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastActivity.After(sorted[j].LastActivity.Time)
	})

	now := r.now()
	r.items = make([]conversationItem, len(sorted))
	for i, c := range sorted {
		r.items[i] = conversationItem{rec: c, dateLabel: FormatRelativeDate(c.LastActivity.Time, now)}
	}
	r.applyFilterLocked()
	r.renderLocked()
}

// Filter shows only the items whose lowercased title or displayed date
// contains the term. An empty term shows everything. Pure display state:
// the underlying data is neither removed nor reordered.
func (r *Renderer) Filter(term string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.filter = strings.ToLower(strings.TrimSpace(term))
	r.applyFilterLocked()
	r.renderLocked()
}

func (r *Renderer) applyFilterLocked() {
	for i := range r.items {
		it := &r.items[i]
		if r.filter == "" {
			it.visible = true
			continue
		}
		title := strings.ToLower(it.rec.DisplayTitle())
		date := strings.ToLower(it.dateLabel)
		it.visible = strings.Contains(title, r.filter) || strings.Contains(date, r.filter)
	}
}

// RefreshDates recomputes the relative-date labels against now, without
// refetching or re-sorting, so "Aujourd'hui" becomes "Hier" while the
// screen sits open.
func (r *Renderer) RefreshDates(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		r.items[i].dateLabel = FormatRelativeDate(r.items[i].rec.LastActivity.Time, now)
	}
	r.applyFilterLocked()
	r.renderLocked()
}

// StartDateRefresher refreshes the date labels on the given interval until
// the context is cancelled.
func (r *Renderer) StartDateRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.RefreshDates(r.now())
		case <-ctx.Done():
			return
		}
	}
}

// Conversations returns the records in display order.
func (r *Renderer) Conversations() []models.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Conversation, len(r.items))
	for i, it := range r.items {
		out[i] = it.rec
	}
	return out
}

// Visible returns the records currently passing the filter, in display order.
func (r *Renderer) Visible() []models.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Conversation
	for _, it := range r.items {
		if it.visible {
			out = append(out, it.rec)
		}
	}
	return out
}

// Lookup finds a rendered record by its string identifier.
func (r *Renderer) Lookup(id string) (models.Conversation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.items {
		if it.rec.ID.Equals(id) {
			return it.rec, true
		}
	}
	return models.Conversation{}, false
}

func (r *Renderer) renderLocked() {
	if r.w == nil {
		return
	}

	if len(r.items) == 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, emptyStyle.Render(wordwrap.String("Aucune conversation", emptyStateWidth)))
		fmt.Fprintln(r.w, ctaStyle.Render(wordwrap.String("Commence une nouvelle conversation avec Sorrel ! (commande: new)", emptyStateWidth)))
		fmt.Fprintln(r.w)
		return
	}

	fmt.Fprintln(r.w)
	for _, it := range r.items {
		if !it.visible {
			continue
		}
		fmt.Fprintf(r.w, "%s  %s  %s\n",
			titleStyle.Render(sanitize(it.rec.DisplayTitle())),
			dateStyle.Render(it.dateLabel),
			countStyle.Render(fmt.Sprintf("%d messages", it.rec.NbMessages)),
		)
		fmt.Fprintf(r.w, "    %s\n", dateStyle.Render(nav.ConversationURL(it.rec.ID.String())))
	}
	fmt.Fprintln(r.w)
}

// sanitize strips control characters from user-provided titles so a crafted
// record cannot inject terminal escape sequences.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

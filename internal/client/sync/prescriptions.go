package sync

import (
	"context"
	"errors"
	"sort"

	"github.com/dontpanic-sante/dpcli/internal/client/api"
	"github.com/dontpanic-sante/dpcli/internal/client/models"
	"github.com/dontpanic-sante/dpcli/internal/client/nav"
	"github.com/dontpanic-sante/dpcli/internal/logging"
)

// SortDir orders the prescription grid by date.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// OrdonnanceView is the slice of the renderer the service needs.
type OrdonnanceView interface {
	SetOrdonnances([]models.Ordonnance)
}

// Prescriptions manages the remote-only prescription list. The fetched
// records are held in an explicit in-memory cache with a defined lifecycle:
// filled on Refresh, reused by SortBy, dropped on Clear (logout).
type Prescriptions struct {
	client api.Client
	view   OrdonnanceView
	nav    nav.Navigator
	log    logging.Logger

	cached []models.Ordonnance
	dir    SortDir
}

func NewPrescriptions(client api.Client, view OrdonnanceView, navigator nav.Navigator, log logging.Logger) *Prescriptions {
	return &Prescriptions{
		client: client,
		view:   view,
		nav:    navigator,
		dir:    SortDesc,
		log:    log.With("component", "ordonnances"),
	}
}

// Refresh fetches the prescription list and renders it. An expired session
// routes to the login page; any other failure renders the empty state and
// is only logged.
func (s *Prescriptions) Refresh(ctx context.Context) {
	list, err := s.client.ListOrdonnances(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.nav.Goto(nav.LoginPath)
			return
		}
		s.log.Warn(ctx, "ordonnances indisponibles", "err", err)
		list = nil
	}

	s.cached = list
	s.view.SetOrdonnances(s.sorted())
}

// SortBy changes the sort direction and re-renders from the in-memory
// cache, without another network call.
func (s *Prescriptions) SortBy(dir SortDir) {
	if dir != SortAsc {
		dir = SortDesc
	}
	s.dir = dir
	s.view.SetOrdonnances(s.sorted())
}

// Scan uploads a prescription scan and routes into the created record's
// detail view. Returns the created id.
func (s *Prescriptions) Scan(ctx context.Context, scan api.OrdonnanceScan) (string, error) {
	id, err := s.client.ScanOrdonnance(ctx, scan)
	if err != nil {
		return "", err
	}
	s.nav.Goto(nav.OrdonnanceURL(id))
	return id, nil
}

// Clear drops the in-memory cache, called on logout.
func (s *Prescriptions) Clear() {
	s.cached = nil
}

func (s *Prescriptions) sorted() []models.Ordonnance {
	out := make([]models.Ordonnance, len(s.cached))
	copy(out, s.cached)
	sort.SliceStable(out, func(i, j int) bool {
		if s.dir == SortAsc {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dontpanic-sante/dpcli/internal/client/api"
	"github.com/dontpanic-sante/dpcli/internal/client/models"
	"github.com/dontpanic-sante/dpcli/internal/client/nav"
)

func TestPrescriptionsRefresh_DefaultSortIsNewestFirst(t *testing.T) {
	d1 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	client := &fakeClient{ordonnances: []models.Ordonnance{
		{ID: "old", Date: models.NewTime(d1)},
		{ID: "new", Date: models.NewTime(d2)},
	}}
	view := &fakeView{}

	s := NewPrescriptions(client, view, nav.NewRecorder(nav.HomePath), testLogger())
	s.Refresh(context.Background())

	require.Len(t, view.ordonnances, 2)
	assert.Equal(t, models.ID("new"), view.ordonnances[0].ID)
}

func TestPrescriptionsRefresh_UnauthorizedRoutesToLogin(t *testing.T) {
	client := &fakeClient{ordoErr: api.ErrUnauthorized}
	view := &fakeView{}
	rec := nav.NewRecorder(nav.HomePath)

	NewPrescriptions(client, view, rec, testLogger()).Refresh(context.Background())

	assert.Equal(t, nav.LoginPath, rec.Current())
	assert.Zero(t, view.setCalls, "no render on expired session")
}

func TestPrescriptionsRefresh_OtherErrorRendersEmptyState(t *testing.T) {
	client := &fakeClient{ordoErr: api.ErrUnavailable}
	view := &fakeView{}
	rec := nav.NewRecorder(nav.HomePath)

	NewPrescriptions(client, view, rec, testLogger()).Refresh(context.Background())

	assert.Equal(t, 1, view.setCalls)
	assert.Empty(t, view.ordonnances)
	assert.Equal(t, nav.HomePath, rec.Current())
}

func TestPrescriptionsSortBy_ReusesCacheWithoutRefetch(t *testing.T) {
	client := &fakeClient{ordonnances: []models.Ordonnance{
		{ID: "a", Date: models.NewTime(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "b", Date: models.NewTime(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))},
	}}
	view := &fakeView{}

	s := NewPrescriptions(client, view, nav.NewRecorder(nav.HomePath), testLogger())
	s.Refresh(context.Background())
	require.Equal(t, 1, client.ordoCalls)

	s.SortBy(SortAsc)
	assert.Equal(t, 1, client.ordoCalls, "sort must not hit the network")
	require.Len(t, view.ordonnances, 2)
	assert.Equal(t, models.ID("a"), view.ordonnances[0].ID)

	s.SortBy(SortDesc)
	assert.Equal(t, models.ID("b"), view.ordonnances[0].ID)
}

func TestPrescriptionsSortBy_UnknownDirectionFallsBackToDesc(t *testing.T) {
	client := &fakeClient{ordonnances: []models.Ordonnance{
		{ID: "a", Date: models.NewTime(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "b", Date: models.NewTime(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))},
	}}
	view := &fakeView{}

	s := NewPrescriptions(client, view, nav.NewRecorder(nav.HomePath), testLogger())
	s.Refresh(context.Background())
	s.SortBy(SortDir("sideways"))

	assert.Equal(t, models.ID("b"), view.ordonnances[0].ID)
}

func TestPrescriptionsScan_NavigatesToCreatedRecord(t *testing.T) {
	client := &fakeClient{scanID: "99"}
	view := &fakeView{}
	rec := nav.NewRecorder(nav.HomePath)

	s := NewPrescriptions(client, view, rec, testLogger())
	id, err := s.Scan(context.Background(), api.OrdonnanceScan{OCRText: "Doliprane 1g"})

	require.NoError(t, err)
	assert.Equal(t, "99", id)
	assert.Equal(t, nav.OrdonnanceURL("99"), rec.Current())
}

func TestPrescriptionsScan_ErrorDoesNotNavigate(t *testing.T) {
	client := &fakeClient{scanErr: api.ErrValidation}
	rec := nav.NewRecorder(nav.HomePath)

	s := NewPrescriptions(client, &fakeView{}, rec, testLogger())
	_, err := s.Scan(context.Background(), api.OrdonnanceScan{})

	assert.ErrorIs(t, err, api.ErrValidation)
	assert.Equal(t, []string{nav.HomePath}, rec.History())
}

func TestPrescriptionsClear_DropsCache(t *testing.T) {
	client := &fakeClient{ordonnances: []models.Ordonnance{{ID: "a"}}}
	view := &fakeView{}

	s := NewPrescriptions(client, view, nav.NewRecorder(nav.HomePath), testLogger())
	s.Refresh(context.Background())
	require.Len(t, view.ordonnances, 1)

	s.Clear()
	s.SortBy(SortDesc)
	assert.Empty(t, view.ordonnances)
}

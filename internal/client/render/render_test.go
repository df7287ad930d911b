package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dontpanic-sante/dpcli/internal/client/cache"
	"github.com/dontpanic-sante/dpcli/internal/client/models"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRenderer(&buf, func() time.Time { return testNow }), &buf
}

func TestSetConversations_SortsByActivityDescending(t *testing.T) {
	r, _ := newTestRenderer()

	r.SetConversations([]models.Conversation{
		{ID: "old", LastActivity: models.NewTime(testNow.Add(-72 * time.Hour))},
		{ID: "new", LastActivity: models.NewTime(testNow.Add(-time.Hour))},
		{ID: "mid", LastActivity: models.NewTime(testNow.Add(-24 * time.Hour))},
	})

	got := r.Conversations()
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].LastActivity.After(got[i-1].LastActivity.Time),
			"displayed order must be non-increasing by activity")
	}
	assert.Equal(t, models.ID("new"), got[0].ID)
}

func TestFilter_MatchesTitleOrDate(t *testing.T) {
	r, _ := newTestRenderer()
	r.SetConversations(cache.SeedConversations(testNow))

	r.Filter("Titre 1")
	visible := r.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Titre 1", visible[0].Titre)

	// the displayed date string is searchable too
	r.Filter("hier")
	require.Len(t, r.Visible(), 1)
	assert.Equal(t, "Titre 1", r.Visible()[0].Titre)

	// clearing restores everything without touching the data
	r.Filter("")
	assert.Len(t, r.Visible(), 3)
	assert.Len(t, r.Conversations(), 3)
}

func TestFilter_TrimsAndLowercases(t *testing.T) {
	r, _ := newTestRenderer()
	r.SetConversations(cache.SeedConversations(testNow))

	r.Filter("  TITRE 2  ")
	require.Len(t, r.Visible(), 1)
	assert.Equal(t, "Titre 2", r.Visible()[0].Titre)
}

func TestRefreshDates_UpdatesLabelsWithoutResorting(t *testing.T) {
	r, buf := newTestRenderer()
	r.SetConversations([]models.Conversation{
		{ID: "a", Titre: "A", LastActivity: models.NewTime(testNow.Add(-2 * time.Hour))},
		{ID: "b", Titre: "B", LastActivity: models.NewTime(testNow.Add(-30 * time.Hour))},
	})
	assert.Contains(t, buf.String(), "Aujourd'hui")

	buf.Reset()
	r.RefreshDates(testNow.Add(26 * time.Hour))

	out := buf.String()
	assert.Contains(t, out, "Hier")
	assert.NotContains(t, out, "Aujourd'hui")

	got := r.Conversations()
	assert.Equal(t, models.ID("a"), got[0].ID) // order untouched
}

func TestRender_EmptyState(t *testing.T) {
	r, buf := newTestRenderer()
	r.SetConversations(nil)

	out := buf.String()
	assert.Contains(t, out, "Aucune conversation")
	assert.Contains(t, out, "nouvelle conversation")
}

func TestRender_ItemLineContainsRouteAndCount(t *testing.T) {
	r, buf := newTestRenderer()
	r.SetConversations([]models.Conversation{
		{ID: "41", Titre: "Mal de tête", LastActivity: models.NewTime(testNow), NbMessages: 4},
	})

	out := buf.String()
	assert.Contains(t, out, "Mal de tête")
	assert.Contains(t, out, "4 messages")
	assert.Contains(t, out, "/chatbot/chatbot?conversation_id=41")
}

func TestRender_UntitledFallsBackToDefault(t *testing.T) {
	r, buf := newTestRenderer()
	r.SetConversations([]models.Conversation{{ID: "1", LastActivity: models.NewTime(testNow)}})
	assert.Contains(t, buf.String(), "Conversation")
}

func TestSanitize_StripsControlCharacters(t *testing.T) {
	assert.Equal(t, "titre[31m", sanitize("titre\x1b[31m\x00"))
	assert.Equal(t, "ok", sanitize("ok"))
}

func TestNilWriter_IsNoop(t *testing.T) {
	r := NewRenderer(nil, func() time.Time { return testNow })

	// must not panic
	r.SetConversations(cache.SeedConversations(testNow))
	r.Filter("x")
	r.RefreshDates(testNow)
	r.SetOrdonnances([]models.Ordonnance{{ID: "1"}})
}

func TestLookup(t *testing.T) {
	r, _ := newTestRenderer()
	r.SetConversations([]models.Conversation{{ID: "7", Titre: "T", Local: true}})

	got, ok := r.Lookup("7")
	require.True(t, ok)
	assert.True(t, got.Local)

	_, ok = r.Lookup("8")
	assert.False(t, ok)
}

func TestSetOrdonnances_RendersGridAndFilters(t *testing.T) {
	r, buf := newTestRenderer()

	r.SetOrdonnances([]models.Ordonnance{
		{ID: "1", Title: "Ordonnance dentiste", Doctor: "Dr Martin", Tags: []string{"dent"}},
		{ID: "2", Date: models.NewTime(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))},
	})

	out := buf.String()
	assert.Contains(t, out, "Ordonnance dentiste")
	assert.Contains(t, out, "Dr Martin")
	assert.Contains(t, out, "14 mars 2026")
	assert.Contains(t, out, models.DefaultOrdonnanceImage)

	r.FilterOrdonnances("dent")
	require.Len(t, r.VisibleOrdonnances(), 1)

	r.FilterOrdonnances("")
	assert.Len(t, r.VisibleOrdonnances(), 2)
}

func TestSetOrdonnances_EmptyState(t *testing.T) {
	r, buf := newTestRenderer()
	r.SetOrdonnances(nil)
	assert.Contains(t, buf.String(), "Aucune ordonnance pour le moment.")
}

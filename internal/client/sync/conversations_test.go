package sync

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dontpanic-sante/dpcli/internal/client/api"
	"github.com/dontpanic-sante/dpcli/internal/client/cache"
	"github.com/dontpanic-sante/dpcli/internal/client/models"
	"github.com/dontpanic-sante/dpcli/internal/logging"

	_ "modernc.org/sqlite"
)

type fakeClient struct {
	api.Client

	conversations []models.Conversation
	listErr       error
	listCalls     int

	deleteErr   error
	deleteCalls int
	deletedIDs  []string

	ordonnances []models.Ordonnance
	ordoErr     error
	ordoCalls   int

	scanID  string
	scanErr error
}

func (f *fakeClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.conversations, nil
}

func (f *fakeClient) DeleteConversation(ctx context.Context, id string) error {
	f.deleteCalls++
	f.deletedIDs = append(f.deletedIDs, id)
	return f.deleteErr
}

func (f *fakeClient) ListOrdonnances(ctx context.Context) ([]models.Ordonnance, error) {
	f.ordoCalls++
	if f.ordoErr != nil {
		return nil, f.ordoErr
	}
	return f.ordonnances, nil
}

func (f *fakeClient) ScanOrdonnance(ctx context.Context, scan api.OrdonnanceScan) (string, error) {
	return f.scanID, f.scanErr
}

type fakeView struct {
	conversations []models.Conversation
	ordonnances   []models.Ordonnance
	setCalls      int
}

func (v *fakeView) SetConversations(list []models.Conversation) {
	v.setCalls++
	v.conversations = list
}

func (v *fakeView) SetOrdonnances(list []models.Ordonnance) {
	v.setCalls++
	v.ordonnances = list
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func newStore(t *testing.T) *cache.ConversationStore {
	t.Helper()
	db, err := cache.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return cache.NewConversationStore(db, testLogger())
}

func confirmAlways(string) bool { return true }
func confirmNever(string) bool  { return false }

func TestLoadAndDisplay_ServerAuthoritative(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	// stale cache content must be overwritten
	store.Save(ctx, []models.Conversation{{ID: "stale"}})

	remote := []models.Conversation{{ID: "1", Titre: "Serveur"}}
	client := &fakeClient{conversations: remote}
	view := &fakeView{}

	s := NewConversations(client, store, view, confirmAlways, testLogger())
	s.LoadAndDisplay(ctx)

	require.Len(t, view.conversations, 1)
	assert.Equal(t, models.ID("1"), view.conversations[0].ID)

	cached := store.Load(ctx)
	require.Len(t, cached, 1)
	assert.Equal(t, models.ID("1"), cached[0].ID)
}

func TestLoadAndDisplay_EmptyServerListOverwritesCache(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	store.Save(ctx, []models.Conversation{{ID: "stale"}})

	client := &fakeClient{conversations: []models.Conversation{}}
	view := &fakeView{}

	NewConversations(client, store, view, confirmAlways, testLogger()).LoadAndDisplay(ctx)

	assert.Empty(t, view.conversations)
	assert.Empty(t, store.Load(ctx))
}

func TestLoadAndDisplay_FallsBackToCacheUnmodified(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	cached := []models.Conversation{
		{ID: "a", Titre: "Local A", NbMessages: 2},
		{ID: "b", Titre: "Local B", NbMessages: 7},
	}
	store.Save(ctx, cached)

	client := &fakeClient{listErr: api.ErrUnavailable}
	view := &fakeView{}

	NewConversations(client, store, view, confirmAlways, testLogger()).LoadAndDisplay(ctx)

	require.Len(t, view.conversations, 2)
	assert.Equal(t, "Local A", view.conversations[0].Titre)
	assert.Equal(t, "Local B", view.conversations[1].Titre)

	// no seed defaults were invoked
	assert.Len(t, store.Load(ctx), 2)
}

func TestLoadAndDisplay_SeedsWhenEverythingEmpty(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	client := &fakeClient{listErr: api.ErrUnavailable}
	view := &fakeView{}

	NewConversations(client, store, view, confirmAlways, testLogger()).LoadAndDisplay(ctx)

	require.Len(t, view.conversations, 3)
	for _, c := range view.conversations {
		assert.True(t, c.Local)
	}
	assert.Len(t, store.Load(ctx), 3)
}

func TestDelete_UnconfirmedIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	store.Save(ctx, []models.Conversation{{ID: "1"}})

	client := &fakeClient{}
	view := &fakeView{}

	NewConversations(client, store, view, confirmNever, testLogger()).Delete(ctx, "1", false)

	assert.Zero(t, client.deleteCalls)
	assert.Zero(t, client.listCalls)
	assert.Zero(t, view.setCalls)
	assert.Len(t, store.Load(ctx), 1)
}

func TestDelete_LocalRecordSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	store.Save(ctx, []models.Conversation{
		{ID: "loc", Local: true},
		{ID: "other", Local: true},
	})

	// fetch still fails so the displayed list comes from the cache
	client := &fakeClient{listErr: api.ErrUnavailable}
	view := &fakeView{}

	NewConversations(client, store, view, confirmAlways, testLogger()).Delete(ctx, "loc", true)

	assert.Zero(t, client.deleteCalls, "no remote delete for local records")
	require.Len(t, view.conversations, 1)
	assert.Equal(t, models.ID("other"), view.conversations[0].ID)
}

func TestDelete_RemoteSuccessResyncsFromServer(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	store.Save(ctx, []models.Conversation{{ID: "1"}, {ID: "2"}})

	client := &fakeClient{conversations: []models.Conversation{{ID: "2"}}}
	view := &fakeView{}

	NewConversations(client, store, view, confirmAlways, testLogger()).Delete(ctx, "1", false)

	assert.Equal(t, []string{"1"}, client.deletedIDs)
	assert.Equal(t, 1, client.listCalls, "delete settles before resync")
	require.Len(t, view.conversations, 1)
	assert.Equal(t, models.ID("2"), view.conversations[0].ID)
}

func TestDelete_RemoteFailureFallsBackToLocalRemoval(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	store.Save(ctx, []models.Conversation{{ID: "1"}, {ID: "2"}})

	client := &fakeClient{deleteErr: api.ErrUnavailable, listErr: api.ErrUnavailable}
	view := &fakeView{}

	NewConversations(client, store, view, confirmAlways, testLogger()).Delete(ctx, "1", false)

	assert.Equal(t, 1, client.deleteCalls)
	require.Len(t, view.conversations, 1)
	assert.Equal(t, models.ID("2"), view.conversations[0].ID)
	assert.Len(t, store.Load(ctx), 1)
}

func TestDelete_StringComparesNumericIds(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	// ids decoded from server JSON numbers keep their string form
	store.Save(ctx, []models.Conversation{{ID: "42"}, {ID: "43"}})

	client := &fakeClient{deleteErr: api.ErrUnavailable, listErr: api.ErrUnavailable}
	view := &fakeView{}

	NewConversations(client, store, view, confirmAlways, testLogger()).Delete(ctx, "42", false)

	require.Len(t, view.conversations, 1)
	assert.Equal(t, models.ID("43"), view.conversations[0].ID)
}

func TestLoadAndDisplay_SeededListIsStableAcrossCalls(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	client := &fakeClient{listErr: api.ErrUnavailable}
	view := &fakeView{}
	s := NewConversations(client, store, view, confirmAlways, testLogger())

	s.LoadAndDisplay(ctx)
	first := view.conversations

	time.Sleep(2 * time.Millisecond)
	s.LoadAndDisplay(ctx)
	second := view.conversations

	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

// Package sync orchestrates the fetch-then-fallback-then-seed flow between
// the remote API, the local cache, and the renderer.
package sync

import (
	"context"
	"time"

	"github.com/dontpanic-sante/dpcli/internal/client/api"
	"github.com/dontpanic-sante/dpcli/internal/client/cache"
	"github.com/dontpanic-sante/dpcli/internal/client/models"
	"github.com/dontpanic-sante/dpcli/internal/logging"
)

// ConversationView is the slice of the renderer the synchronizer needs.
type ConversationView interface {
	SetConversations([]models.Conversation)
}

// ConfirmFunc asks the user a yes/no question before a destructive action.
type ConfirmFunc func(prompt string) bool

// Conversations decides, per call, which data source is authoritative: the
// server when it answers with a list (even an empty one), the cache when it
// does not, and the seed defaults when both are empty.
type Conversations struct {
	client  api.Client
	store   *cache.ConversationStore
	view    ConversationView
	confirm ConfirmFunc
	now     func() time.Time
	log     logging.Logger
}

func NewConversations(client api.Client, store *cache.ConversationStore, view ConversationView, confirm ConfirmFunc, log logging.Logger) *Conversations {
	return &Conversations{
		client:  client,
		store:   store,
		view:    view,
		confirm: confirm,
		now:     time.Now,
		log:     log.With("component", "conversations"),
	}
}

// LoadAndDisplay resolves the conversation list and hands it to the view.
//
// A successful fetch makes the server authoritative: the result overwrites
// the cache wholesale. A failed fetch falls back entirely to the cache, and
// an empty cache gets the first-run seed records. Remote failures are
// logged, never surfaced.
func (s *Conversations) LoadAndDisplay(ctx context.Context) {
	list, err := s.client.ListConversations(ctx)
	if err != nil {
		s.log.Warn(ctx, "API indisponible, fallback local", "err", err)
		list = s.store.Load(ctx)
		if len(list) == 0 {
			list = s.store.EnsureDefaults(ctx, s.now())
		}
	} else {
		s.store.Save(ctx, list)
	}

	s.view.SetConversations(list)
}

// Delete removes one conversation after user confirmation.
//
// Server records go through the remote delete first; on success the list is
// re-synchronized from the server and nothing is touched locally. When the
// remote call fails, or for records that only exist locally, the record is
// removed from the cache instead. A failed remote delete can therefore be
// undone by the next successful sync; that window is accepted.
func (s *Conversations) Delete(ctx context.Context, id string, isLocal bool) {
	if !s.confirm("Êtes-vous sûr de vouloir supprimer cette conversation ?") {
		return
	}

	if !isLocal {
		err := s.client.DeleteConversation(ctx, id)
		if err == nil {
			s.LoadAndDisplay(ctx)
			return
		}
		s.log.Warn(ctx, "suppression API échouée, fallback local", "id", id, "err", err)
	}

	s.store.RemoveByID(ctx, id)
	s.LoadAndDisplay(ctx)
}

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/dontpanic-sante/dpcli/internal/client/models"
	"github.com/dontpanic-sante/dpcli/internal/dbx"
	"github.com/dontpanic-sante/dpcli/internal/logging"
)

// conversationsKey is the single cache entry holding the whole
// JSON-serialized conversation list.
const conversationsKey = "dp_conversations"

// ConversationStore persists the conversation list wholesale. Reads never
// fail from the caller's point of view: a missing or corrupt entry yields an
// empty list. Writes are best-effort: a persistence failure is logged and
// swallowed so it cannot interrupt the UI flow.
type ConversationStore struct {
	db  *sql.DB
	log logging.Logger
}

func NewConversationStore(db *sql.DB, log logging.Logger) *ConversationStore {
	return &ConversationStore{db: db, log: log.With("component", "cache")}
}

// Load returns the cached conversation list, or an empty list when the
// entry is missing or unreadable.
func (s *ConversationStore) Load(ctx context.Context) []models.Conversation {
	raw, err := NewSQLiteKV(s.db).Get(ctx, conversationsKey)
	if err != nil {
		s.log.Warn(ctx, "cache read failed", "err", err)
		return []models.Conversation{}
	}
	if len(raw) == 0 {
		return []models.Conversation{}
	}

	var list []models.Conversation
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn(ctx, "cache entry corrupt, ignoring", "err", err)
		return []models.Conversation{}
	}
	if list == nil {
		list = []models.Conversation{}
	}
	return list
}

// Save overwrites the cached list wholesale.
func (s *ConversationStore) Save(ctx context.Context, list []models.Conversation) {
	if list == nil {
		list = []models.Conversation{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		s.log.Warn(ctx, "cache marshal failed", "err", err)
		return
	}
	if err := NewSQLiteKV(s.db).Set(ctx, conversationsKey, raw); err != nil {
		s.log.Warn(ctx, "cache write failed", "err", err)
	}
}

// EnsureDefaults seeds three local example conversations when the cache is
// empty, so a first-run user does not land on a blank screen. When records
// already exist it is a no-op returning them unchanged. The check and the
// write run in one transaction so a concurrent call cannot double-seed.
func (s *ConversationStore) EnsureDefaults(ctx context.Context, now time.Time) []models.Conversation {
	var list []models.Conversation

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := NewSQLiteKV(tx)

		raw, err := kv.Get(ctx, conversationsKey)
		if err != nil {
			return err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
				return nil
			}
		}

		list = SeedConversations(now)
		seeded, err := json.Marshal(list)
		if err != nil {
			return err
		}
		return kv.Set(ctx, conversationsKey, seeded)
	})
	if err != nil {
		s.log.Warn(ctx, "cache seeding failed", "err", err)
		return SeedConversations(now)
	}
	return list
}

// RemoveByID drops the record whose id matches, comparing string forms to
// tolerate numeric/string identifier mismatches, and saves the remainder.
func (s *ConversationStore) RemoveByID(ctx context.Context, id string) {
	list := s.Load(ctx)
	kept := make([]models.Conversation, 0, len(list))
	for _, c := range list {
		if !c.ID.Equals(id) {
			kept = append(kept, c)
		}
	}
	s.Save(ctx, kept)
}

// SeedConversations builds the three first-run example records: ids derived
// from the current timestamp, strictly decreasing activity dates, all
// flagged local-only.
func SeedConversations(now time.Time) []models.Conversation {
	ms := now.UnixMilli()
	return []models.Conversation{
		{
			ID:           models.ID(strconv.FormatInt(ms-30000, 10)),
			Titre:        "Titre 1",
			LastActivity: models.NewTime(now.Add(-24 * time.Hour)),
			NbMessages:   2,
			Local:        true,
		},
		{
			ID:           models.ID(strconv.FormatInt(ms-20000, 10)),
			Titre:        "Titre 2",
			LastActivity: models.NewTime(now.Add(-3 * 24 * time.Hour)),
			NbMessages:   5,
			Local:        true,
		},
		{
			ID:           models.ID(strconv.FormatInt(ms-10000, 10)),
			Titre:        "Titre 3",
			LastActivity: models.NewTime(now.Add(-10 * 24 * time.Hour)),
			NbMessages:   1,
			Local:        true,
		},
	}
}

// Package auth guards every screen behind the server-side session check and
// nudges users with an incomplete profile toward the profile page.
package auth

import (
	"sync"

	"github.com/dontpanic-sante/dpcli/internal/client/models"
)

// Session holds the authenticated user for the lifetime of the process. The
// server session itself lives in the HTTP client's cookie jar; this is only
// the display-side copy.
type Session struct {
	mu   sync.Mutex
	user *models.User
}

func NewSession() *Session {
	return &Session{}
}

// SetUser records the authenticated user.
func (s *Session) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

// User returns the current user and whether one is set.
func (s *Session) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Clear forgets the user, called on logout.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Package session holds the single authenticated operator identity for the
// running process. The value is owned by main and handed to the services that
// need it; there is no package-level state.
package session

import (
	"sync"

	"github.com/SR-Exam/scheduler-service/internal/models"
)

// Session guards at most one operator identity. The lock is held only for
// the copy or the assignment, never across storage or network calls.
type Session struct {
	mu   sync.RWMutex
	user *models.User
}

func New() *Session {
	return &Session{}
}

// Current returns a snapshot of the operator identity. The second return is
// false when nobody is logged in.
func (s *Session) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Install replaces the session identity with the given user.
func (s *Session) Install(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// Active reports whether an operator is logged in.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Clear drops the session identity. There is no logout in the application
// flow; this exists for tests and process teardown paths.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

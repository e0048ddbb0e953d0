// Package session holds the client's identity and conversation session id
// for the lifetime of one process.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/jask/wedplan/internal/api"
	"github.com/jask/wedplan/internal/domain"
)

// Provisioner creates the backend user record.
type Provisioner interface {
	ProvisionUser(ctx context.Context, req api.ProvisionRequest) (domain.User, error)
}

// Store is process-wide session state. The zero value is not usable; use
// NewStore.
type Store struct {
	mu        sync.RWMutex
	user      *domain.User
	sessionID string
	log       *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{log: logger.With("component", "session")}
}

// User returns the current user, if any.
func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// SetUser records the user. Only the first call has an effect.
func (s *Store) SetUser(u domain.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		return false
	}
	s.user = &u
	return true
}

// SessionID returns the adopted conversation session id or "".
func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// AdoptSessionID sets the session id once. Later calls, and calls with an
// empty id, are no-ops. It reports whether id was adopted.
func (s *Store) AdoptSessionID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID != "" {
		if s.sessionID != id {
			s.log.Warn("ignoring session id change", slog.String("held", s.sessionID), slog.String("offered", id))
		}
		return false
	}
	s.sessionID = id
	s.log.Info("session id adopted", slog.String("session_id", id))
	return true
}

// Provision creates the user through p and stores it. On failure the store
// stays without a user and the error is returned for logging; dependent
// operations become no-ops.
func (s *Store) Provision(ctx context.Context, p Provisioner, req api.ProvisionRequest) (domain.User, error) {
	if u, ok := s.User(); ok {
		return u, nil
	}
	u, err := p.ProvisionUser(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "provision user failed", slog.String("error", err.Error()))
		return domain.User{}, err
	}
	s.SetUser(u)
	got, _ := s.User()
	return got, nil
}

// package session holds the signed-in identity for the running process.
package session

import (
	"fmt"
	"sync"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/repositories"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
)

// User is the identity a session is built from. A user is only considered
// signed in when all three fields are present.
type User struct {
	ID    string
	Name  string
	Email string
}

// complete reports whether the identity has every required field.
func (u User) complete() bool {
	return u.ID != "" && u.Name != "" && u.Email != ""
}

// Repository is the persistence surface the store needs. Implemented by
// [repositories.SessionRepository].
type Repository interface {
	Get(key string) (string, error)
	SetAll(values map[string]string) error
	Clear() error
}

// Store owns the in-memory session state. The auth gateway is the only
// writer; everything else reads.
type Store struct {
	mu   sync.RWMutex
	user User
}

// NewStore creates an empty, signed-out Store.
func NewStore() *Store {
	return &Store{}
}

// Restore loads a previously persisted identity from repo. An identity
// missing any field leaves the store signed out, so a torn write can never
// surface as a partial login.
func (s *Store) Restore(repo Repository) error {
	name, err := repo.Get(repositories.KeyName)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	email, err := repo.Get(repositories.KeyEmail)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	id, err := repo.Get(repositories.KeyUserID)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	user := User{ID: id, Name: name, Email: email}

	s.mu.Lock()
	defer s.mu.Unlock()
	if user.complete() {
		s.user = user
	} else {
		s.user = User{}
	}
	return nil
}

// SetAuthenticated records user as the signed-in identity and persists it.
// Incomplete identities are rejected before any state changes.
func (s *Store) SetAuthenticated(repo Repository, user User) error {
	if !user.complete() {
		return fmt.Errorf("%w: incomplete identity", shared.ErrAuthFailed)
	}

	if err := repo.SetAll(map[string]string{
		repositories.KeyName:   user.Name,
		repositories.KeyEmail:  user.Email,
		repositories.KeyUserID: user.ID,
	}); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Clear signs the session out and removes the persisted identity.
func (s *Store) Clear(repo Repository) error {
	s.mu.Lock()
	s.user = User{}
	s.mu.Unlock()

	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}

// Current returns the signed-in user and whether a session is active.
func (s *Store) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.user.complete()
}

// IsLoggedIn reports whether a complete identity is present.
func (s *Store) IsLoggedIn() bool {
	_, ok := s.Current()
	return ok
}

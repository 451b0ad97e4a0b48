package session

import (
	"log"
	"sync"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
)

// Store holds the process-wide authenticated session: the current user
// and bearer token. Every mutation writes through to durable storage
// immediately so a restart observes the same session. The store never
// makes network calls; the only writers are the login/signup success
// handlers and the logout action.
type Store struct {
	mu    sync.RWMutex
	user  model.User
	token string
	db    *DB // nil means memory-only (tests)
}

// New creates a session store backed by db. Any previously persisted
// session is loaded, so a page reload after restart stays logged in.
// A nil db keeps the session in memory only.
func New(db *DB) (*Store, error) {
	s := &Store{db: db}

	if db != nil {
		user, token, err := db.Load()
		if err != nil {
			return nil, err
		}
		s.user = user
		s.token = token
		if token != "" {
			log.Printf("[Session] Restored persisted session for %s", user.Email)
		}
	}

	return s, nil
}

// Set stores the user and token and marks the session authenticated.
func (s *Store) Set(user model.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.token = token

	if s.db != nil {
		return s.db.Save(user, token)
	}
	return nil
}

// Clear removes the session and its persisted copy.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = model.User{}
	s.token = ""

	if s.db != nil {
		return s.db.Delete()
	}
	return nil
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user and whether one is logged in.
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

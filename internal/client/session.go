package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// User is the account view returned by the API.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	IsVerified     bool   `json:"isVerified"`
}

// SessionState is what a session persists between runs.
type SessionState struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// SessionStore persists session state.
type SessionStore interface {
	Load() (*SessionState, error)
	Save(state *SessionState) error
	Clear() error
}

// Session owns the signed-in state of one client. It is restored from its
// store on creation, replaced on signin or signup and torn down on logout.
type Session struct {
	mu    sync.RWMutex
	store SessionStore
	state SessionState
}

// NewSession restores a session from store. A missing store entry yields a
// signed-out session.
func NewSession(store SessionStore) (*Session, error) {
	s := &Session{store: store}
	if store == nil {
		return s, nil
	}
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if state != nil {
		s.state = *state
	}
	return s, nil
}

// Token returns the current bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns the signed-in user, nil when signed out.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// SignedIn reports whether the session holds a token.
func (s *Session) SignedIn() bool {
	return s.Token() != ""
}

// Update replaces the session state and persists it.
func (s *Session) Update(token string, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionState{Token: token, User: user}
	if s.store == nil {
		return nil
	}
	return s.store.Save(&s.state)
}

// Close signs the session out and clears its store.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionState{}
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

// FileStore keeps session state in a JSON file readable only by its owner.
type FileStore struct {
	Path string
}

// Load reads the state file. A missing file is not an error.
func (f FileStore) Load() (*SessionState, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return &state, nil
}

// Save writes the state file.
func (f FileStore) Save(state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

// Clear removes the state file.
func (f FileStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Package storage persists client-side session state between runs.
package storage

import (
	"encoding/json"
	"os"
	"sync"
)

// Session is the locally persisted login state.
type Session struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

const defaultSessionFile = "session.json"

// SessionStore reads and writes the session file.
type SessionStore struct {
	path string

	mu      sync.Mutex
	session Session
}

// NewSessionStore returns a store backed by path, or the default
// session.json when path is empty.
func NewSessionStore(path string) *SessionStore {
	if path == "" {
		path = defaultSessionFile
	}
	return &SessionStore{path: path}
}

// Load reads the session file. A missing file yields an empty session.
func (s *SessionStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.session = Session{}
			return nil
		}
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(&s.session)
}

// Save writes the session to disk and keeps it in memory.
func (s *SessionStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(s.session)
}

// Current returns the last loaded or saved session.
func (s *SessionStore) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Clear removes the session file and forgets the in-memory session.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{}

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

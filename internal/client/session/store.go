// Package session holds the locally persisted identity of the dashboard
// user. The store is a cache over what the server confirmed at login; it is
// never a source of truth.
package session

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"ideahub/internal/model"
)

// State is everything that survives a dashboard restart: the cached identity
// plus the bearer tokens issued at login.
type State struct {
	model.Session
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Store reads and writes State to a JSON file. Reads never fail: a missing
// or corrupt file yields a zero identity with the default role, and callers
// treat an empty email as "no authenticated identity".
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// NewStore loads the session file at path, tolerating its absence.
func NewStore(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &s.state); err != nil {
			log.Printf("session: ignoring corrupt state file %s: %v", path, err)
			s.state = State{}
		}
	}
	return s
}

// Current returns the cached session. The role always carries a value so
// permission checks never see an empty string.
func (s *Store) Current() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.state.Session
	if sess.Role == "" {
		sess.Role = model.RoleUser
	}
	return sess
}

// Token returns the cached access token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken
}

// RefreshToken returns the cached refresh token, or "" when logged out.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RefreshToken
}

// SetIdentity replaces the whole cached state after a successful login.
func (s *Store) SetIdentity(sess model.Session, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Session: sess, AccessToken: accessToken, RefreshToken: refreshToken}
	s.persist()
}

// UpdateLocal overwrites cached display fields after a confirmed server-side
// self-update. Empty arguments leave the corresponding field untouched.
func (s *Store) UpdateLocal(name, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.state.Name = name
	}
	if role != "" {
		s.state.Role = role
	}
	s.persist()
}

// SetAccessToken swaps in a fresh access token after a refresh.
func (s *Store) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = token
	s.persist()
}

// Clear drops the cached identity at logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	s.persist()
}

// persist is best effort; a write failure must not take the dashboard down.
// Callers hold s.mu.
func (s *Store) persist() {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		log.Printf("session: marshal state: %v", err)
		return
	}
	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0o700)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		log.Printf("session: write state file %s: %v", s.path, err)
	}
}

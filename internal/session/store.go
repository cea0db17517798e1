// Package session persists the admin's bearer token and profile between runs.
//
// The store is a single-writer, multi-reader resource: every protected request
// reads the token, while writes only happen on login, logout, and the 401
// interceptor. Clear is atomic so a half-written file can never leave a stale
// token behind.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// Session is the persisted state: the bearer token and the cached admin profile.
type Session struct {
	Token string        `json:"token"`
	User  *domain.Admin `json:"user,omitempty"`
}

// Store reads and writes the session file.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  Session
}

// NewStore creates a Store backed by the given file path and loads any
// existing session. A missing or unreadable file is treated as logged-out.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session file path is empty")
	}
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.cur); err != nil {
		// Corrupt session file: start logged-out rather than failing every run.
		s.cur = Session{}
	}
	return s, nil
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// User returns the cached admin profile, or nil when logged out.
func (s *Store) User() *domain.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur.User == nil {
		return nil
	}
	u := *s.cur.User
	return &u
}

// LoggedIn reports whether a token is present.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// Set stores a new session and persists it.
func (s *Store) Set(token string, user *domain.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{Token: token, User: user}
	return s.persist()
}

// Clear removes the session from memory and disk. Safe to call when already
// logged out.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// ExpiresAt reads the expiry claim from the stored token without verifying
// the signature (the client has no signing secret). Returns the zero time
// when no token is stored or the token carries no expiry.
func (s *Store) ExpiresAt() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// persist writes the session to disk via a temp file and rename, creating the
// parent directory on first use. Caller must hold the write lock.
func (s *Store) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

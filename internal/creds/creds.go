// Package creds handles durable persistence of the two session secrets.
// They are stored in ~/.config/lumina/credentials.toml with owner-only
// permissions and survive process restarts.
package creds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultCredsPath = "~/.config/lumina/credentials.toml"

// credsFile is the on-disk shape of the credential pair.
type credsFile struct {
	AccessToken  string `toml:"access_token"`
	RefreshToken string `toml:"refresh_token,omitempty"`
}

// Store persists the access and refresh credentials. After the first read
// the pair is cached in memory so the request interceptor can read it
// synchronously without touching the disk per request.
type Store struct {
	mu      sync.Mutex
	path    string
	loaded  bool
	access  string
	refresh string
}

// DefaultPath returns the default credentials file path.
func DefaultPath() string {
	return defaultCredsPath
}

// New creates a Store backed by the given path; empty uses the default.
func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = defaultCredsPath
	}
	return &Store{path: path}
}

// Load reads the credential pair from disk. A missing file is not an
// error; it simply means logged out.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve creds path: %w", err)
	}

	s.loaded = true
	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read credentials: %w", err)
	}

	var file credsFile
	if err := toml.Unmarshal(bytes, &file); err != nil {
		return fmt.Errorf("parse credentials: %w", err)
	}
	s.access = file.AccessToken
	s.refresh = file.RefreshToken
	return nil
}

// AccessToken returns the access credential, best effort. Intended for use
// inside the request interceptor; read failures yield an empty string.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		_ = s.loadLocked()
	}
	return s.access
}

// RefreshToken returns the refresh credential, best effort.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		_ = s.loadLocked()
	}
	return s.refresh
}

// HasAccess reports whether an access credential is present.
func (s *Store) HasAccess() bool {
	return s.AccessToken() != ""
}

// Save persists a new credential pair. An empty refresh value keeps the
// existing refresh credential; the service does not reissue one on every
// exchange.
func (s *Store) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		_ = s.loadLocked()
	}
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	return s.writeLocked()
}

// Clear removes both credentials from memory and disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.access = ""
	s.refresh = ""

	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve creds path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

func (s *Store) writeLocked() error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve creds path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("create creds dir: %w", err)
	}
	bytes, err := toml.Marshal(credsFile{AccessToken: s.access, RefreshToken: s.refresh})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

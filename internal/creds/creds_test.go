package creds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.toml")
	return New(path), path
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s, path := tempStore(t)

	if s.HasAccess() {
		t.Fatal("fresh store should have no access credential")
	}
	if err := s.Save("A", "R"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// A second store over the same path sees the persisted pair.
	reloaded := New(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if reloaded.AccessToken() != "A" || reloaded.RefreshToken() != "R" {
		t.Fatalf("reloaded pair = %q/%q", reloaded.AccessToken(), reloaded.RefreshToken())
	}
	if !reloaded.HasAccess() {
		t.Fatal("HasAccess should be true after reload")
	}
}

func TestStore_SaveWithoutRefreshKeepsExisting(t *testing.T) {
	s, path := tempStore(t)

	if err := s.Save("A1", "R1"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.Save("A2", ""); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if s.AccessToken() != "A2" {
		t.Fatalf("access = %q, want A2", s.AccessToken())
	}
	if s.RefreshToken() != "R1" {
		t.Fatalf("refresh = %q, want preserved R1", s.RefreshToken())
	}

	// The preservation must hold on disk too, not just in memory.
	reloaded := New(path)
	if reloaded.RefreshToken() != "R1" {
		t.Fatalf("persisted refresh = %q, want R1", reloaded.RefreshToken())
	}
}

func TestStore_ClearRemovesBoth(t *testing.T) {
	s, path := tempStore(t)

	if err := s.Save("A", "R"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if s.HasAccess() || s.RefreshToken() != "" {
		t.Fatal("Clear should drop both credentials")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("credentials file should be removed, stat err = %v", err)
	}

	// Clearing an already-clear store is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestStore_MissingFileMeansLoggedOut(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.Load(); err != nil {
		t.Fatalf("Load of missing file returned error: %v", err)
	}
	if s.HasAccess() {
		t.Fatal("missing file should mean logged out")
	}
}

func TestStore_FilePermissionsAreOwnerOnly(t *testing.T) {
	s, path := tempStore(t)
	if err := s.Save("A", "R"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "access_token") {
		t.Fatalf("file should hold the token keys, got %q", raw)
	}
}

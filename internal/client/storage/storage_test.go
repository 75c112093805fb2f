package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FileNotExist(t *testing.T) {
	ls := &LocalStorage{Path: filepath.Join(t.TempDir(), "session.json")}
	if err := ls.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ls.UserID() != 0 {
		t.Errorf("expected empty session, got user %d", ls.UserID())
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	ls := &LocalStorage{Path: path}
	ls.Set("alice", 7)
	if err := ls.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}

	loaded := &LocalStorage{Path: path}
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Session != (Session{Username: "alice", UserID: 7}) {
		t.Errorf("unexpected session: %+v", loaded.Session)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatal(err)
	}

	ls := &LocalStorage{Path: path}
	if err := ls.Load(); err == nil {
		t.Error("expected decode error")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ls := &LocalStorage{Path: path}
	ls.Set("bob", 3)
	if err := ls.Save(); err != nil {
		t.Fatal(err)
	}

	if err := ls.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file removed, got %v", err)
	}
	if ls.UserID() != 0 {
		t.Error("expected session reset")
	}
	// Clearing twice is fine.
	if err := ls.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

package keyval

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := s.Set("customerName", "Ravi"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok, err := s.Get("customerName")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if got != "Ravi" {
		t.Fatalf("expected Ravi, got %q", got)
	}

	if err := s.Set("customerName", "Sita"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _, _ = s.Get("customerName")
	if got != "Sita" {
		t.Fatalf("expected overwrite to win, got %q", got)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	_, ok, err := s.Get("billItems")
	if err != nil {
		t.Fatalf("expected missing key to be a clean miss, got %v", err)
	}
	if ok {
		t.Fatalf("expected missing key to report absent")
	}
}

func TestFileStoreDelete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := s.Set("billItems", "[]"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Delete("billItems"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := s.Get("billItems"); ok {
		t.Fatalf("expected key to be gone after delete")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete("billItems"); err != nil {
		t.Fatalf("expected repeat delete to be a no-op, got %v", err)
	}
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := s.Set("../escape", "x"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if filepath.Dir(filepath.Join(dir, entry.Name())) != dir {
			t.Fatalf("key escaped the data dir: %s", entry.Name())
		}
	}
	got, ok, _ := s.Get("../escape")
	if !ok || got != "x" {
		t.Fatalf("expected sanitized key to round-trip, got %q ok=%v", got, ok)
	}
}

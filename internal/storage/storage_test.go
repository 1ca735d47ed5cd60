package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreGetSetRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "chessplay-core-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbDir := filepath.Join(tmpDir, "db")
	s, err := OpenAt(dbDir)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get("tb", "missing"); err != nil || ok {
		t.Fatalf("expected cache miss for unset key, got ok=%v err=%v", ok, err)
	}

	if err := s.Set("tb", "abc123", []byte("wdl:2")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok, err := s.Get("tb", "abc123")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(val) != "wdl:2" {
		t.Errorf("expected 'wdl:2', got %q", val)
	}
}

func TestStoreNamespaceIsolation(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "chessplay-core-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := OpenAt(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer s.Close()

	s.Set("tb", "k", []byte("tb-value"))
	s.Set("book", "k", []byte("book-value"))

	tbVal, _, _ := s.Get("tb", "k")
	bookVal, _, _ := s.Get("book", "k")
	if string(tbVal) != "tb-value" || string(bookVal) != "book-value" {
		t.Errorf("namespace collision: tb=%q book=%q", tbVal, bookVal)
	}

	if err := s.DropNamespace("tb"); err != nil {
		t.Fatalf("DropNamespace failed: %v", err)
	}
	if _, ok, _ := s.Get("tb", "k"); ok {
		t.Errorf("expected tb/k to be gone after DropNamespace")
	}
	if _, ok, _ := s.Get("book", "k"); !ok {
		t.Errorf("expected book/k to survive DropNamespace(\"tb\")")
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	t.Logf("Data directory: %s", dataDir)
}

package issued

import (
	"path/filepath"
	"testing"
	"time"
)

func initTestStore(t *testing.T) {
	t.Helper()
	if err := Init(filepath.Join(t.TempDir(), "issued.db")); err != nil {
		t.Fatalf("Failed to initialize issued store: %v", err)
	}
	t.Cleanup(func() { Close() })
}

func TestStoreAndGet(t *testing.T) {
	initTestStore(t)

	url := "http://thumbor.example/unsafe/300x0/cat.jpg"
	hash, err := StoreIssued(url, "cat.jpg", "tenant-1")
	if err != nil {
		t.Fatalf("Failed to store issued URL: %v", err)
	}
	if hash != HashURL(url) {
		t.Errorf("Expected hash %s, got %s", HashURL(url), hash)
	}

	record, err := Get(hash)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if record == nil {
		t.Fatal("Expected record, got nil")
	}
	if record.URL != url || record.Source != "cat.jpg" || record.Subject != "tenant-1" {
		t.Errorf("Unexpected record: %+v", record)
	}
}

func TestGetMissing(t *testing.T) {
	initTestStore(t)

	record, err := Get("does-not-exist")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if record != nil {
		t.Errorf("Expected nil record, got %+v", record)
	}
}

func TestHashURLIsStable(t *testing.T) {
	if HashURL("a") != HashURL("a") {
		t.Error("Expected the same URL to hash the same")
	}
	if HashURL("a") == HashURL("b") {
		t.Error("Expected different URLs to hash differently")
	}
	if len(HashURL("a")) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(HashURL("a")))
	}
}

func TestListAndCleanup(t *testing.T) {
	initTestStore(t)

	if _, err := StoreIssued("http://x/unsafe/new.jpg", "new.jpg", ""); err != nil {
		t.Fatalf("Failed to store: %v", err)
	}
	old := Record{
		Hash:      HashURL("http://x/unsafe/old.jpg"),
		URL:       "http://x/unsafe/old.jpg",
		Source:    "old.jpg",
		Timestamp: time.Now().Add(-48 * time.Hour),
	}
	if err := db.PutJSON(old.Hash, old); err != nil {
		t.Fatalf("Failed to store old record: %v", err)
	}

	records, err := List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	removed, err := CleanupOldRecords(24 * time.Hour)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 record removed, got %d", removed)
	}

	if r, _ := Get(old.Hash); r != nil {
		t.Error("Expected old record to be cleaned up")
	}
	if r, _ := Get(HashURL("http://x/unsafe/new.jpg")); r == nil {
		t.Error("Expected new record to survive cleanup")
	}
}

func TestCheckHealth(t *testing.T) {
	if err := CheckHealth(); err == nil {
		t.Error("Expected health check to fail before Init")
	}

	initTestStore(t)
	if err := CheckHealth(); err != nil {
		t.Errorf("Expected healthy store, got %v", err)
	}
}

package credentials

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) {
	t.Helper()
	if err := OpenDB(filepath.Join(t.TempDir(), "credentials.db")); err != nil {
		t.Fatalf("Failed to open credentials DB: %v", err)
	}
	t.Cleanup(func() { CloseDB() })
}

func TestRegisterAndGet(t *testing.T) {
	openTestDB(t)

	key, err := Register(map[string]string{"bucket": "images", "region": "eu-west-1"})
	if err != nil {
		t.Fatalf("Failed to register credentials: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("Expected 32 char key, got %q", key)
	}

	creds, err := GetCredentials(key)
	if err != nil {
		t.Fatalf("Failed to get credentials: %v", err)
	}
	if creds["bucket"] != "images" || creds["region"] != "eu-west-1" {
		t.Errorf("Unexpected credentials: %v", creds)
	}
}

func TestGetMissingCredentials(t *testing.T) {
	openTestDB(t)

	_, err := GetCredentials("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCredentials(t *testing.T) {
	openTestDB(t)

	if err := StoreCredentials("k", map[string]string{"host": "sftp.example"}); err != nil {
		t.Fatalf("Failed to store credentials: %v", err)
	}
	if err := DeleteCredentials("k"); err != nil {
		t.Fatalf("Failed to delete credentials: %v", err)
	}
	if _, err := GetCredentials("k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected credentials to be gone, got %v", err)
	}
}

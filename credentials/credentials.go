package credentials

import (
	"errors"
	"fmt"

	"pixurl/logger"
	"pixurl/store"
	"pixurl/utils"
)

// ErrNotFound is returned when no credentials are stored under a key
var ErrNotFound = errors.New("credentials not found")

var db *store.DB

// OpenDB opens the credentials DB at the specified path
func OpenDB(dbPath string) error {
	var err error
	db, err = store.Open(dbPath)
	if err != nil {
		logger.Errorf("Failed to open credentials DB: %v", err)
		return err
	}
	return nil
}

// CloseDB closes the DB
func CloseDB() error {
	err := db.Close()
	db = nil
	return err
}

// GetCredentials returns the credentials stored under key
func GetCredentials(key string) (map[string]string, error) {
	creds := make(map[string]string)
	found, err := db.GetJSON(key, &creds)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return creds, nil
}

// StoreCredentials stores the credentials map under the given key
func StoreCredentials(key string, creds map[string]string) error {
	return db.PutJSON(key, creds)
}

// Register stores creds under a fresh random key and returns the key
func Register(creds map[string]string) (string, error) {
	key, err := utils.GenerateRandomHex(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate storage key: %w", err)
	}
	if err := StoreCredentials(key, creds); err != nil {
		return "", err
	}
	return key, nil
}

// DeleteCredentials deletes the credentials for the given key
func DeleteCredentials(key string) error {
	return db.Delete(key)
}

// CheckHealth performs a basic health check on the credentials database
func CheckHealth() error {
	return db.CheckHealth()
}

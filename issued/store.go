package issued

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"pixurl/store"
)

// Record is an entry in the issued URL log
type Record struct {
	Hash      string    `json:"hash"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Subject   string    `json:"subject,omitempty"` // token subject, when the request was authenticated
	Timestamp time.Time `json:"timestamp"`
}

var db *store.DB

// Init initializes the issued URL store
func Init(dbPath string) error {
	var err error
	db, err = store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open issued store: %w", err)
	}
	return nil
}

// Close closes the issued URL store
func Close() error {
	err := db.Close()
	db = nil
	return err
}

// HashURL returns the key an issued URL is stored under
func HashURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// StoreIssued stores an issued URL and returns its hash. Issuing the same
// URL again refreshes the timestamp.
func StoreIssued(url, source, subject string) (string, error) {
	hash := HashURL(url)
	record := Record{
		Hash:      hash,
		URL:       url,
		Source:    source,
		Subject:   subject,
		Timestamp: time.Now(),
	}
	if err := db.PutJSON(hash, record); err != nil {
		return "", fmt.Errorf("failed to store issued record: %w", err)
	}
	return hash, nil
}

// Get retrieves an issued record by hash. A missing record is (nil, nil).
func Get(hash string) (*Record, error) {
	var record Record
	found, err := db.GetJSON(hash, &record)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &record, nil
}

// List returns all issued records
func List() ([]Record, error) {
	var records []Record
	err := db.Each(func(_ string, value []byte) error {
		var record Record
		if err := json.Unmarshal(value, &record); err != nil {
			return nil // skip invalid records
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CleanupOldRecords removes records older than maxAge and returns how many were removed
func CleanupOldRecords(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	return db.DeleteWhere(func(_ string, value []byte) bool {
		var record Record
		if err := json.Unmarshal(value, &record); err != nil {
			return false
		}
		return record.Timestamp.Before(cutoff)
	})
}

// CheckHealth performs a basic health check on the issued database
func CheckHealth() error {
	return db.CheckHealth()
}

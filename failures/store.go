package failures

import (
	"encoding/json"
	"fmt"
	"time"

	"pixurl/store"
)

// FailureRecord represents a failed publish job
type FailureRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error"`
	JobData   string    `json:"job_data"` // JSON of the publish request
}

var db *store.DB

// Init initializes the failure store
func Init(dbPath string) error {
	var err error
	db, err = store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open failure store: %w", err)
	}
	return nil
}

// Close closes the failure store
func Close() error {
	err := db.Close()
	db = nil
	return err
}

// StoreFailure stores a failure for the job id
func StoreFailure(id string, err error, jobData interface{}) error {
	jobJSON, jsonErr := json.Marshal(jobData)
	if jsonErr != nil {
		jobJSON = []byte(fmt.Sprintf("failed to marshal job data: %v", jsonErr))
	}

	record := FailureRecord{
		ID:        id,
		Timestamp: time.Now(),
		Error:     err.Error(),
		JobData:   string(jobJSON),
	}
	if err := db.PutJSON(id, record); err != nil {
		return fmt.Errorf("failed to store failure record: %w", err)
	}
	return nil
}

// GetFailure retrieves a failure record by job id. No failure is (nil, nil).
func GetFailure(id string) (*FailureRecord, error) {
	var record FailureRecord
	found, err := db.GetJSON(id, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to get failure: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &record, nil
}

// DeleteFailure removes a failure record
func DeleteFailure(id string) error {
	return db.Delete(id)
}

// ListFailures returns all failure records
func ListFailures() ([]FailureRecord, error) {
	var failures []FailureRecord
	err := db.Each(func(_ string, value []byte) error {
		var record FailureRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return nil // skip invalid records
		}
		failures = append(failures, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return failures, nil
}

// CheckHealth performs a basic health check on the failure database
func CheckHealth() error {
	return db.CheckHealth()
}

// CleanupOldRecords removes failures older than maxAge and returns how many were removed
func CleanupOldRecords(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	return db.DeleteWhere(func(_ string, value []byte) bool {
		var record FailureRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return false
		}
		return record.Timestamp.Before(cutoff)
	})
}

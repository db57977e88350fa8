package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// ErrClosed is returned by operations on a nil or closed DB
var ErrClosed = errors.New("store not initialized")

// DB is a small wrapper around a Pebble instance storing JSON records
type DB struct {
	db       *pebble.DB
	DataFile string
}

// Open opens (or creates) a pebble DB at the given path
func Open(dataFile string) (*DB, error) {
	db, err := pebble.Open(dataFile, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", dataFile, err)
	}
	return &DB{db: db, DataFile: dataFile}, nil
}

// Close closes the underlying DB. Closing a nil DB is a no-op.
func (s *DB) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *DB) ready() error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	return nil
}

// PutJSON marshals value and stores it under key
func (s *DB) PutJSON(key string, value interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", key, err)
	}
	return s.db.Set([]byte(key), data, pebble.Sync)
}

// GetJSON loads the record under key into out. found is false when the key is absent.
func (s *DB) GetJSON(key string, out interface{}) (found bool, err error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	data, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	defer closer.Close()

	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("failed to unmarshal record %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the key from the DB
func (s *DB) Delete(key string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.db.Delete([]byte(key), pebble.Sync)
}

// Each calls fn for every key in order. The value slice is only valid during
// the call. Iteration stops at the first error returned by fn.
func (s *DB) Each(fn func(key string, value []byte) error) error {
	if err := s.ready(); err != nil {
		return err
	}
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(string(iter.Key()), iter.Value()); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("iteration error: %w", err)
	}
	return nil
}

// DeleteWhere removes every record for which match returns true and reports how many were removed
func (s *DB) DeleteWhere(match func(key string, value []byte) bool) (int, error) {
	var keys []string
	err := s.Each(func(key string, value []byte) error {
		if match(key, value) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for i, key := range keys {
		if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
			return i, fmt.Errorf("failed to delete record %s: %w", key, err)
		}
	}
	return len(keys), nil
}

// CheckHealth verifies the database answers a point lookup
func (s *DB) CheckHealth() error {
	if err := s.ready(); err != nil {
		return err
	}
	_, closer, err := s.db.Get([]byte("__health_check__"))
	if err != nil && !errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if closer != nil {
		closer.Close()
	}
	return nil
}

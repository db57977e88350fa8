// Package presets stores named transform options so callers can ask for
// "thumb" instead of repeating width, quality and format on every request.
package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"pixurl/images"
	"pixurl/store"
)

var (
	ErrNotFound    = errors.New("preset not found")
	ErrInvalidName = errors.New("invalid preset name")
)

// Preset is a named set of transform options
type Preset struct {
	Name    string                  `json:"name"`
	Options images.TransformOptions `json:"options"`
}

var validName = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

var db *store.DB

// Init opens the preset store
func Init(dbPath string) error {
	var err error
	db, err = store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open preset store: %w", err)
	}
	return nil
}

// Close closes the preset store
func Close() error {
	err := db.Close()
	db = nil
	return err
}

// Save stores p, replacing any preset with the same name
func Save(p Preset) error {
	if !validName.MatchString(p.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, p.Name)
	}
	return db.PutJSON(p.Name, p)
}

// Get returns the preset called name
func Get(name string) (*Preset, error) {
	var p Preset
	found, err := db.GetJSON(name, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &p, nil
}

// Delete removes the preset called name
func Delete(name string) error {
	return db.Delete(name)
}

// List returns all presets sorted by name
func List() ([]Preset, error) {
	var out []Preset
	err := db.Each(func(_ string, value []byte) error {
		var p Preset
		if err := json.Unmarshal(value, &p); err != nil {
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Resolve returns the options for name with overrides merged on top. An empty
// name returns overrides unchanged.
func Resolve(name string, overrides images.TransformOptions) (images.TransformOptions, error) {
	if name == "" {
		return overrides, nil
	}
	p, err := Get(name)
	if err != nil {
		return images.TransformOptions{}, err
	}
	return p.Options.Merge(overrides), nil
}

// CheckHealth performs a basic health check on the preset database
func CheckHealth() error {
	return db.CheckHealth()
}

package models

import "pixurl/images"

// PublishTarget says where a manifest is written
type PublishTarget struct {
	Type string `json:"type"` // "directServe", "s3", "gcs" or "sftp"

	// StorageKey points at a registered credentials record. Credentials may
	// be given inline instead.
	StorageKey  string            `json:"storageKey,omitempty"`
	Credentials map[string]string `json:"credentials,omitempty"`
}

// PublishRequest asks for a manifest of URLs for Source to be built and written to Target
type PublishRequest struct {
	Source  string                  `json:"source"`
	Preset  string                  `json:"preset,omitempty"`
	Options images.TransformOptions `json:"options"`
	Target  PublishTarget           `json:"target"`

	// Name overrides the object name; defaults to a hash of the source
	Name string `json:"name,omitempty"`
}

package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"pixurl/images"
)

const ContentType = "application/json"

// Manifest lists the URLs for one source image so a frontend can load them
// without holding the security key
type Manifest struct {
	Source      string                  `json:"source"`
	Src         string                  `json:"src"`
	SrcSet      string                  `json:"srcset"`
	Responsive  images.ResponsiveURLs   `json:"responsive"`
	Options     images.TransformOptions `json:"options"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

// Build computes every URL variant of source with client
func Build(client *images.Client, source string, opts images.TransformOptions) Manifest {
	return Manifest{
		Source:      source,
		Src:         client.OptimizedURL(source, opts),
		SrcSet:      client.SrcSet(source, opts),
		Responsive:  client.ResponsiveURLs(source, opts),
		Options:     opts,
		GeneratedAt: time.Now().UTC(),
	}
}

// Encode writes m as indented JSON
func (m Manifest) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return nil
}

// Bytes returns the encoded manifest
func (m Manifest) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a manifest written by Encode
func Decode(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return m, nil
}

// ObjectName returns the object a manifest is stored as. A non-empty name is
// cleaned and used as is; otherwise the name is derived from source.
func ObjectName(name, source string) string {
	if name != "" {
		name = strings.TrimPrefix(path.Clean("/"+name), "/")
		if !strings.HasSuffix(name, ".json") {
			name += ".json"
		}
		return path.Join("manifests", name)
	}
	sum := sha256.Sum256([]byte(source))
	return path.Join("manifests", hex.EncodeToString(sum[:8])+".json")
}

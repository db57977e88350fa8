package writerbackends

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Object is a single file to publish
type Object struct {
	Name        string // relative name, e.g. "manifests/ab12.json"
	ContentType string
	Body        io.Reader
}

// Writer publishes obj using the backend specific accessInfo
type Writer func(ctx context.Context, accessInfo map[string]string, obj Object) error

var (
	mu      sync.RWMutex
	writers = map[string]Writer{
		"directServe": UploadToDirectServe,
		"s3":          UploadToS3WithCreds,
		"gcs":         UploadToGCSWithJSON,
		"sftp":        UploadToSFTPWithCreds,
	}
)

// Register installs w under backendType, replacing any existing writer
func Register(backendType string, w Writer) {
	mu.Lock()
	defer mu.Unlock()
	writers[backendType] = w
}

// Types lists the registered backend types
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(writers))
	for name := range writers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Supported reports whether backendType has a writer
func Supported(backendType string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := writers[backendType]
	return ok
}

// WriteObject dispatches obj to the writer for backendType
func WriteObject(ctx context.Context, accessInfo map[string]string, obj Object, backendType string) error {
	mu.RLock()
	w, ok := writers[backendType]
	mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown backend type: %s", backendType)
	}
	if err := w(ctx, accessInfo, obj); err != nil {
		return fmt.Errorf("failed to upload to %s: %w", backendType, err)
	}
	return nil
}

// joinKey prefixes name with an optional object key prefix
func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if prefix[len(prefix)-1] == '/' {
		return prefix + name
	}
	return prefix + "/" + name
}

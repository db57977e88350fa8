package writerbackends

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pixurl/logger"
)

// UploadToDirectServe writes obj under baseDir/folder, where the HTTP server
// serves it directly. accessInfo keys: baseDir (required), folder (optional).
func UploadToDirectServe(ctx context.Context, accessInfo map[string]string, obj Object) error {
	baseDir := accessInfo["baseDir"]
	if baseDir == "" {
		return fmt.Errorf("missing required accessInfo key: baseDir")
	}

	fullPath := filepath.Join(baseDir, accessInfo["folder"], filepath.FromSlash(obj.Name))

	// keep writes inside the serving folder
	rel, err := filepath.Rel(baseDir, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("object path %q escapes the serve directory", obj.Name)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, obj.Body); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", fullPath, err)
	}

	logger.Infof("Successfully saved '%s' to '%s'", obj.Name, fullPath)
	return nil
}

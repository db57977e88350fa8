package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	Reset()
	for _, key := range []string{"PIXURL_DATA_DIR", "PIXURL_SERVE_DIR", "PIXURL_LISTEN_ADDR", "PIXURL_JWT_SECRET"} {
		t.Setenv(key, "")
	}

	if dir := GetDataDir(); dir != "./data" {
		t.Errorf("Expected default data dir ./data, got %s", dir)
	}

	if dir := GetDirectServeBaseDir(); dir != "./serve" {
		t.Errorf("Expected default serve dir ./serve, got %s", dir)
	}

	if addr := GetListenAddr(); addr != ":8080" {
		t.Errorf("Expected default listen addr :8080, got %s", addr)
	}

	if GetJWTSecret() != nil {
		t.Error("Expected nil JWT secret by default")
	}
}

func TestConfigDataDirEnv(t *testing.T) {
	customDir := "/tmp/pixurl-test-data"
	t.Setenv("PIXURL_DATA_DIR", customDir)

	paths := map[string]string{
		"presets.db":     GetPresetsDBPath(),
		"issued.db":      GetIssuedDBPath(),
		"failures.db":    GetFailuresDBPath(),
		"credentials.db": GetCredentialsDBPath(),
	}

	for name, got := range paths {
		want := filepath.Join(customDir, name)
		if got != want {
			t.Errorf("Expected %s path %s, got %s", name, want, got)
		}
	}
}

func TestThumborOptionsFromEnv(t *testing.T) {
	t.Setenv("THUMBOR_SERVER_URL", "http://thumbor.example")
	t.Setenv("THUMBOR_SECURITY_KEY", "MY_SECRET")
	t.Setenv("THUMBOR_CLOAKED", "")

	opts := ThumborOptions()

	if opts.ServerURL != "http://thumbor.example" {
		t.Errorf("Expected server URL from env, got %s", opts.ServerURL)
	}
	if opts.SecurityKey != "MY_SECRET" {
		t.Errorf("Expected security key from env, got %s", opts.SecurityKey)
	}
	if opts.RequiresSecurityKey == nil || !*opts.RequiresSecurityKey {
		t.Error("Expected RequiresSecurityKey to follow key presence")
	}
	if opts.Cloaked {
		t.Error("Expected cloaked to default to false")
	}
}

func TestServerURLFallback(t *testing.T) {
	t.Setenv("THUMBOR_SERVER_URL", "")
	t.Setenv("NEXT_PUBLIC_THUMBOR_SERVER_URL", "http://public.example")

	if got := GetServerURL(); got != "http://public.example" {
		t.Errorf("Expected fallback server URL, got %s", got)
	}

	t.Setenv("THUMBOR_SERVER_URL", "http://primary.example")
	if got := GetServerURL(); got != "http://primary.example" {
		t.Errorf("Expected primary server URL, got %s", got)
	}
}

func TestNoKeyMeansNoSigning(t *testing.T) {
	t.Setenv("THUMBOR_SECURITY_KEY", "")

	if RequiresSecurityKey() {
		t.Error("Expected signing to be disabled without a key")
	}
}

func TestLoadFile(t *testing.T) {
	defer Reset()
	t.Setenv("THUMBOR_SERVER_URL", "")
	t.Setenv("NEXT_PUBLIC_THUMBOR_SERVER_URL", "")
	t.Setenv("THUMBOR_CLOAKED", "")
	t.Setenv("PIXURL_LISTEN_ADDR", "")

	path := filepath.Join(t.TempDir(), "pixurl.yaml")
	content := "server_url: http://from-file.example\ncloaked: true\nlisten_addr: \":9090\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if err := LoadFile(path); err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if got := GetServerURL(); got != "http://from-file.example" {
		t.Errorf("Expected server URL from file, got %s", got)
	}
	if !IsCloaked() {
		t.Error("Expected cloaked from file")
	}
	if got := GetListenAddr(); got != ":9090" {
		t.Errorf("Expected listen addr from file, got %s", got)
	}

	// env beats file
	t.Setenv("THUMBOR_SERVER_URL", "http://from-env.example")
	if got := GetServerURL(); got != "http://from-env.example" {
		t.Errorf("Expected env to override file, got %s", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	defer Reset()

	if err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadFileEmptyPath(t *testing.T) {
	t.Setenv("PIXURL_CONFIG", "")

	if err := LoadFile(""); err != nil {
		t.Errorf("Expected no error without config file, got %v", err)
	}
}

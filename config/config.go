package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"pixurl/thumbor"

	"github.com/spf13/viper"
)

var (
	v  *viper.Viper
	mu sync.RWMutex
)

func init() {
	Reset()
}

// newViper builds the settings registry with environment bindings and defaults.
// Environment variables are read at lookup time, so changes after startup are seen
// by every getter.
func newViper() *viper.Viper {
	vi := viper.New()

	vi.BindEnv("server_url", "THUMBOR_SERVER_URL", "NEXT_PUBLIC_THUMBOR_SERVER_URL")
	vi.BindEnv("security_key", "THUMBOR_SECURITY_KEY")
	vi.BindEnv("cloaked", "THUMBOR_CLOAKED")
	vi.BindEnv("data_dir", "PIXURL_DATA_DIR")
	vi.BindEnv("serve_dir", "PIXURL_SERVE_DIR")
	vi.BindEnv("listen_addr", "PIXURL_LISTEN_ADDR")
	vi.BindEnv("jwt_secret", "PIXURL_JWT_SECRET")
	vi.BindEnv("log_level", "PIXURL_LOG_LEVEL")
	vi.BindEnv("config_file", "PIXURL_CONFIG")

	vi.SetDefault("cloaked", false)
	vi.SetDefault("data_dir", "./data")
	vi.SetDefault("serve_dir", "./serve")
	vi.SetDefault("listen_addr", ":8080")
	vi.SetDefault("log_level", "debug")
	return vi
}

// Reset discards any loaded config file and returns to environment + defaults
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	v = newViper()
}

// LoadFile merges a YAML/JSON/TOML config file into the settings.
// Environment variables still take precedence over file values.
// An empty path falls back to PIXURL_CONFIG; if that is unset too, nothing is loaded.
func LoadFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = v.GetString("config_file")
	}
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func getString(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	return v.GetString(key)
}

// GetServerURL returns the Thumbor server base URL.
// THUMBOR_SERVER_URL wins over NEXT_PUBLIC_THUMBOR_SERVER_URL.
func GetServerURL() string {
	return getString("server_url")
}

// GetSecurityKey returns the Thumbor signing secret, empty when URLs are unsigned
func GetSecurityKey() string {
	return getString("security_key")
}

// RequiresSecurityKey is true whenever a security key is configured
func RequiresSecurityKey() bool {
	return GetSecurityKey() != ""
}

// IsCloaked reports whether URLs are emitted without any auth segment
func IsCloaked() bool {
	mu.RLock()
	defer mu.RUnlock()
	return v.GetBool("cloaked")
}

// ThumborOptions assembles builder options from the environment
func ThumborOptions() thumbor.Options {
	return thumbor.Options{
		ServerURL:           GetServerURL(),
		SecurityKey:         GetSecurityKey(),
		RequiresSecurityKey: thumbor.Bool(RequiresSecurityKey()),
		Cloaked:             IsCloaked(),
	}
}

// GetDataDir returns the directory holding the pebble databases
func GetDataDir() string {
	return getString("data_dir")
}

// GetPresetsDBPath returns {data_dir}/presets.db
func GetPresetsDBPath() string {
	return filepath.Join(GetDataDir(), "presets.db")
}

// GetIssuedDBPath returns {data_dir}/issued.db, the audit log of issued URLs
func GetIssuedDBPath() string {
	return filepath.Join(GetDataDir(), "issued.db")
}

// GetFailuresDBPath returns {data_dir}/failures.db
func GetFailuresDBPath() string {
	return filepath.Join(GetDataDir(), "failures.db")
}

// GetCredentialsDBPath returns {data_dir}/credentials.db
func GetCredentialsDBPath() string {
	return filepath.Join(GetDataDir(), "credentials.db")
}

// GetDirectServeBaseDir returns the base directory for manifests published
// with the directServe backend. Only server administrators can change it.
func GetDirectServeBaseDir() string {
	return getString("serve_dir")
}

func GetListenAddr() string {
	return getString("listen_addr")
}

// GetJWTSecret returns the HS256 secret for bearer tokens.
// An empty secret disables authentication on the URL endpoints.
func GetJWTSecret() []byte {
	s := getString("jwt_secret")
	if s == "" {
		return nil
	}
	return []byte(s)
}

func GetLogLevel() string {
	return getString("log_level")
}

package images

import (
	"sync"

	"pixurl/config"
	"pixurl/thumbor"
)

var (
	defaultMu      sync.Mutex
	defaultOpts    *thumbor.Options
	defaultBuilder *thumbor.Builder
	defaultClient  *Client
)

// currentOptions returns the cached options, reading the environment on
// first use. Callers hold defaultMu.
func currentOptions() thumbor.Options {
	if defaultOpts == nil {
		opts := config.ThumborOptions()
		defaultOpts = &opts
	}
	return *defaultOpts
}

// DefaultBuilder returns the process-wide builder configured from the
// environment (THUMBOR_SERVER_URL, THUMBOR_SECURITY_KEY). It is created on
// first use and rebuilt whenever overrides is non-nil; non-zero override fields
// replace the current values. Overrides also apply to Default and the
// package-level helpers.
//
// The returned builder is shared: chained calls on it from several goroutines
// race with each other. Prefer a Client, or one builder per build sequence.
func DefaultBuilder(overrides *thumbor.Options) *thumbor.Builder {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if overrides != nil {
		merged := mergeOptions(currentOptions(), overrides)
		defaultOpts = &merged
		defaultBuilder = nil
		defaultClient = nil
	}
	if defaultBuilder == nil {
		defaultBuilder = thumbor.New(currentOptions())
	}
	return defaultBuilder
}

// Default returns a Client sharing the options of DefaultBuilder. The client
// is cached; ResetDefault drops it so the next call rereads the environment.
func Default() *Client {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient == nil {
		defaultClient = NewClient(currentOptions())
	}
	return defaultClient
}

// ResetDefault clears the cached options, builder and client
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOpts = nil
	defaultBuilder = nil
	defaultClient = nil
}

func mergeOptions(base thumbor.Options, overrides *thumbor.Options) thumbor.Options {
	if overrides == nil {
		return base
	}
	if overrides.ServerURL != "" {
		base.ServerURL = overrides.ServerURL
	}
	if overrides.SecurityKey != "" {
		base.SecurityKey = overrides.SecurityKey
		// a new key re-derives the signing requirement unless stated explicitly
		base.RequiresSecurityKey = nil
	}
	if overrides.RequiresSecurityKey != nil {
		base.RequiresSecurityKey = overrides.RequiresSecurityKey
	}
	if overrides.Cloaked {
		base.Cloaked = true
	}
	return base
}

// OptimizedURL is Default().OptimizedURL
func OptimizedURL(src string, opts TransformOptions) string {
	return Default().OptimizedURL(src, opts)
}

// GetResponsiveURLs is Default().ResponsiveURLs
func GetResponsiveURLs(src string, opts TransformOptions) ResponsiveURLs {
	return Default().ResponsiveURLs(src, opts)
}

// SrcSet is Default().SrcSet
func SrcSet(src string, opts TransformOptions) string {
	return Default().SrcSet(src, opts)
}

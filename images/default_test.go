package images

import (
	"testing"

	"pixurl/thumbor"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBuilderFromEnv(t *testing.T) {
	t.Setenv("THUMBOR_SERVER_URL", "http://env.example")
	t.Setenv("THUMBOR_SECURITY_KEY", "")
	t.Setenv("THUMBOR_CLOAKED", "")
	ResetDefault()
	defer ResetDefault()

	b := DefaultBuilder(nil)

	assert.Same(t, b, DefaultBuilder(nil), "builder should be cached")
	assert.Equal(t, "http://env.example/unsafe/img.png", b.SetImagePath("img.png").BuildURL())
}

func TestDefaultBuilderRebuiltWithOverrides(t *testing.T) {
	t.Setenv("THUMBOR_SERVER_URL", "http://env.example")
	t.Setenv("THUMBOR_SECURITY_KEY", "")
	t.Setenv("THUMBOR_CLOAKED", "")
	ResetDefault()
	defer ResetDefault()

	first := DefaultBuilder(nil)
	second := DefaultBuilder(&thumbor.Options{SecurityKey: "MY_SECRET"})

	assert.NotSame(t, first, second)
	assert.Equal(t, "http://env.example", second.Options().ServerURL)
	assert.Equal(t,
		"http://env.example/4i1rzExReucyOCcw1XTRSZofyr0=/300x200/my.domain.com/some/img.png",
		second.SetImageURL("my.domain.com/some/img.png").Resize(thumbor.Int(300), thumbor.Int(200)).BuildURL())

	// the rebuilt instance is now the cached one
	assert.Same(t, second, DefaultBuilder(nil))
}

func TestDefaultBuilderOverrideDisablesSigning(t *testing.T) {
	t.Setenv("THUMBOR_SERVER_URL", "http://env.example")
	t.Setenv("THUMBOR_SECURITY_KEY", "MY_SECRET")
	t.Setenv("THUMBOR_CLOAKED", "")
	ResetDefault()
	defer ResetDefault()

	b := DefaultBuilder(&thumbor.Options{RequiresSecurityKey: thumbor.Bool(false)})

	assert.Equal(t, "http://env.example/unsafe/img.png", b.SetImagePath("img.png").BuildURL())
}

func TestPackageHelpersUseDefaultClient(t *testing.T) {
	t.Setenv("THUMBOR_SERVER_URL", "http://env.example")
	t.Setenv("THUMBOR_SECURITY_KEY", "")
	t.Setenv("THUMBOR_CLOAKED", "")
	ResetDefault()
	defer ResetDefault()

	assert.Equal(t, "", OptimizedURL("", TransformOptions{}))
	assert.Equal(t, "http://env.example/unsafe/10x0/a.png", OptimizedURL("a.png", TransformOptions{Width: thumbor.Int(10)}))
	assert.Equal(t, "http://env.example/unsafe/300x0/a.png", GetResponsiveURLs("a.png", TransformOptions{Width: thumbor.Int(900)}).Small)
	assert.Contains(t, SrcSet("a.png", TransformOptions{}), "http://env.example/unsafe/1920x0/a.png 1920w")
}

func TestOverridesReachPackageHelpers(t *testing.T) {
	t.Setenv("THUMBOR_SERVER_URL", "http://env.example")
	t.Setenv("THUMBOR_SECURITY_KEY", "")
	t.Setenv("THUMBOR_CLOAKED", "")
	ResetDefault()
	defer ResetDefault()

	// a client cached before the override must not survive it
	assert.Equal(t, "http://env.example/unsafe/100x0/a.png", OptimizedURL("a.png", TransformOptions{Width: thumbor.Int(100)}))

	DefaultBuilder(&thumbor.Options{ServerURL: "http://override.example"})

	assert.Equal(t, "http://override.example/unsafe/100x0/a.png", OptimizedURL("a.png", TransformOptions{Width: thumbor.Int(100)}))
	assert.Equal(t, "http://override.example", Default().Options().ServerURL)
	assert.Contains(t, SrcSet("a.png", TransformOptions{}), "http://override.example/unsafe/320x0/a.png 320w")

	// later overrides merge into the previous ones
	DefaultBuilder(&thumbor.Options{SecurityKey: "MY_SECRET"})
	assert.Equal(t,
		"http://override.example/4i1rzExReucyOCcw1XTRSZofyr0=/300x200/my.domain.com/some/img.png",
		OptimizedURL("my.domain.com/some/img.png", TransformOptions{Width: thumbor.Int(300), Height: thumbor.Int(200)}))

	ResetDefault()
	assert.Equal(t, "http://env.example/unsafe/a.png", OptimizedURL("a.png", TransformOptions{}))
}

func TestMergeOptions(t *testing.T) {
	base := thumbor.Options{ServerURL: "http://a", SecurityKey: "k1", RequiresSecurityKey: thumbor.Bool(true)}

	assert.Equal(t, base, mergeOptions(base, nil))

	merged := mergeOptions(base, &thumbor.Options{ServerURL: "http://b", Cloaked: true})
	assert.Equal(t, "http://b", merged.ServerURL)
	assert.Equal(t, "k1", merged.SecurityKey)
	assert.True(t, merged.Cloaked)
}

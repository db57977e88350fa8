package render

import (
	"strings"
	"testing"

	"pixurl/images"
	"pixurl/thumbor"

	"github.com/stretchr/testify/assert"
)

const testServer = "http://thumbor.example"

func testClient() *images.Client {
	return images.NewClient(thumbor.Options{ServerURL: testServer})
}

func TestImg_Basic(t *testing.T) {
	out := Img(testClient(), ImgProps{
		Src:      "https://cdn.example.com/cat.jpg",
		Options:  images.TransformOptions{Quality: 80},
		Width:    300,
		Alt:      "A cat",
		NoSrcSet: true,
	})

	assert.Equal(t,
		`<img src="http://thumbor.example/unsafe/300x0/filters:quality(80)/https://cdn.example.com/cat.jpg" alt="A cat" width="300" loading="lazy">`,
		string(out))
}

func TestImg_SrcSetByDefault(t *testing.T) {
	out := string(Img(testClient(), ImgProps{Src: "a.png"}))

	assert.True(t, strings.HasPrefix(out, `<img src="http://thumbor.example/unsafe/a.png" srcset="http://thumbor.example/unsafe/320x0/a.png 320w, `))
	assert.Contains(t, out, `1920x0/a.png 1920w" sizes="100vw"`)
	assert.Contains(t, out, `loading="lazy"`)
}

func TestImg_CustomSizesAndLoading(t *testing.T) {
	out := string(Img(testClient(), ImgProps{
		Src:     "a.png",
		Sizes:   "(max-width: 600px) 100vw, 50vw",
		Loading: "eager",
	}))

	assert.Contains(t, out, `sizes="(max-width: 600px) 100vw, 50vw"`)
	assert.Contains(t, out, `loading="eager"`)
}

func TestImg_EmptySource(t *testing.T) {
	out := string(Img(testClient(), ImgProps{Alt: "none"}))

	assert.Equal(t, `<img src="" alt="none" loading="lazy">`, out)
}

func TestImg_NoSrcSet(t *testing.T) {
	out := string(Img(testClient(), ImgProps{Src: "a.png", NoSrcSet: true}))

	assert.Equal(t, `<img src="http://thumbor.example/unsafe/a.png" alt="" loading="lazy">`, out)
}

func TestImg_EscapesAndFiltersAttributes(t *testing.T) {
	out := string(Img(testClient(), ImgProps{
		Src: "a.png",
		Alt: `"quoted" <b>`,
		Attrs: map[string]string{
			"class":       "hero",
			"data-id":     "7",
			"onerror":     "alert(1)",
			"bad name":    "x",
			"src":         "override.png",
			"aria-hidden": "true",
		},
	}))

	assert.Contains(t, out, `alt="&#34;quoted&#34; &lt;b&gt;"`)
	assert.Contains(t, out, ` aria-hidden="true" class="hero" data-id="7">`)
	assert.NotContains(t, out, "onerror")
	assert.NotContains(t, out, "override.png")
	assert.NotContains(t, out, "bad name")
}

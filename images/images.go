package images

import (
	"math"
	"strconv"
	"strings"

	"pixurl/thumbor"
)

// SrcSetWidths are the breakpoints used by SrcSet, in ascending order
var SrcSetWidths = []int{320, 640, 960, 1280, 1920}

// TransformOptions is the flat option record accepted by the URL helpers.
// Zero values mean "not requested"; Width and Height are pointers because an
// explicit 0 still produces a size segment.
type TransformOptions struct {
	Width            *int   `json:"width,omitempty"`
	Height           *int   `json:"height,omitempty"`
	SmartCrop        bool   `json:"smartCrop,omitempty"`
	Quality          int    `json:"quality,omitempty"`
	Format           string `json:"format,omitempty"`
	Blur             int    `json:"blur,omitempty"`
	Grayscale        bool   `json:"grayscale,omitempty"`
	Trim             bool   `json:"trim,omitempty"`
	FlipHorizontally bool   `json:"flipHorizontally,omitempty"`
	FlipVertically   bool   `json:"flipVertically,omitempty"`
}

// Merge returns o with every non-zero field of override applied on top.
// Boolean fields are combined with OR: an override can switch a flag on but
// never off, so a false in override leaves o's value in place.
func (o TransformOptions) Merge(override TransformOptions) TransformOptions {
	if override.Width != nil {
		o.Width = override.Width
	}
	if override.Height != nil {
		o.Height = override.Height
	}
	if override.Quality != 0 {
		o.Quality = override.Quality
	}
	if override.Format != "" {
		o.Format = override.Format
	}
	if override.Blur != 0 {
		o.Blur = override.Blur
	}
	o.SmartCrop = o.SmartCrop || override.SmartCrop
	o.Grayscale = o.Grayscale || override.Grayscale
	o.Trim = o.Trim || override.Trim
	o.FlipHorizontally = o.FlipHorizontally || override.FlipHorizontally
	o.FlipVertically = o.FlipVertically || override.FlipVertically
	return o
}

// ResponsiveURLs holds the three device-size variants of one image
type ResponsiveURLs struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// Client produces URLs from a fixed configuration. Every call uses its own
// Builder, so a Client is safe for concurrent use.
type Client struct {
	opts thumbor.Options
}

func NewClient(opts thumbor.Options) *Client {
	return &Client{opts: opts}
}

// Options returns the builder configuration of the client
func (c *Client) Options() thumbor.Options {
	return c.opts
}

// OptimizedURL builds a single URL for src. An empty src yields an empty string.
func (c *Client) OptimizedURL(src string, opts TransformOptions) string {
	if src == "" {
		return ""
	}
	return apply(thumbor.New(c.opts).SetImageURL(src), opts).BuildURL()
}

// apply runs the mutators requested by opts in a fixed order
func apply(b *thumbor.Builder, opts TransformOptions) *thumbor.Builder {
	if opts.Width != nil || opts.Height != nil {
		b.Resize(opts.Width, opts.Height)
	}
	if opts.SmartCrop {
		b.SmartCrop(true)
	}
	if opts.Quality != 0 {
		b.Quality(opts.Quality)
	}
	if opts.Format != "" {
		b.Format(opts.Format)
	}
	if opts.Blur != 0 {
		b.Blur(opts.Blur)
	}
	if opts.Grayscale {
		b.Grayscale()
	}
	if opts.Trim {
		b.Trim()
	}
	if opts.FlipHorizontally {
		b.FlipHorizontally()
	}
	if opts.FlipVertically {
		b.FlipVertically()
	}
	return b
}

// ResponsiveURLs returns small, medium and large variants. Small and medium use
// a third and two thirds of the requested width, or 320 and 768 when no width is set.
func (c *Client) ResponsiveURLs(src string, opts TransformOptions) ResponsiveURLs {
	small, medium := opts, opts
	if w := intValue(opts.Width); w != 0 {
		small.Width = thumbor.Int(floorDiv(float64(w), 3))
		medium.Width = thumbor.Int(floorDiv(float64(w), 1.5))
	} else {
		small.Width = thumbor.Int(320)
		medium.Width = thumbor.Int(768)
	}

	return ResponsiveURLs{
		Small:  c.OptimizedURL(src, small),
		Medium: c.OptimizedURL(src, medium),
		Large:  c.OptimizedURL(src, opts),
	}
}

// SrcSet returns an HTML srcset value covering SrcSetWidths. When a height is
// requested it is scaled to keep the aspect ratio of opts.Width x opts.Height.
// An empty src yields an empty string, not entries with blank URLs.
func (c *Client) SrcSet(src string, opts TransformOptions) string {
	if src == "" {
		return ""
	}
	entries := make([]string, 0, len(SrcSetWidths))
	for _, width := range SrcSetWidths {
		variant := opts
		variant.Width = thumbor.Int(width)
		variant.Height = nil
		if h := intValue(opts.Height); h != 0 {
			base := intValue(opts.Width)
			if base == 0 {
				base = width
			}
			variant.Height = thumbor.Int(floorDiv(float64(h)*float64(width), float64(base)))
		}
		entries = append(entries, c.OptimizedURL(src, variant)+" "+strconv.Itoa(width)+"w")
	}
	return strings.Join(entries, ", ")
}

func intValue(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func floorDiv(a, b float64) int {
	return int(math.Floor(a / b))
}

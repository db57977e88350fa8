package thumbor

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder accumulates image operations and serializes them into a Thumbor URL.
//
// A Builder is not safe for concurrent use: every mutator and BuildURL share
// one in-place operation set. Use one Builder per build sequence, or guard it
// externally. After BuildURL the operation set is reset, so a new image path
// must be set before the next build.
type Builder struct {
	opts Options
	ops  operations
}

// New creates a Builder for the given server configuration.
// The server URL is not validated.
func New(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Options returns the configuration the builder was created with
func (b *Builder) Options() Options {
	return b.opts
}

// SetImagePath sets a server-local image path, stripping one leading slash
func (b *Builder) SetImagePath(path string) *Builder {
	b.ops.imagePath = strings.TrimPrefix(path, "/")
	return b
}

// SetImageURL sets the image reference verbatim, typically a full external URL
func (b *Builder) SetImageURL(url string) *Builder {
	b.ops.imagePath = url
	return b
}

// Resize sets the target dimensions. A nil dimension is left for the server to
// compute. Resize clears any fit-in mode set earlier.
func (b *Builder) Resize(width, height *int) *Builder {
	b.ops.width = width
	b.ops.height = height
	b.ops.fitIn = ""
	return b
}

// SmartCrop toggles smart cropping
func (b *Builder) SmartCrop(enable bool) *Builder {
	b.ops.smart = enable
	return b
}

// Trim removes surrounding space from the image
func (b *Builder) Trim() *Builder {
	b.ops.trim = true
	return b
}

// FitIn scales the image to fit within width x height. An empty fit selects FitInDefault.
func (b *Builder) FitIn(width, height int, fit FitInType) *Builder {
	if fit == "" {
		fit = FitInDefault
	}
	b.ops.width = &width
	b.ops.height = &height
	b.ops.fitIn = fit
	return b
}

func (b *Builder) FlipHorizontally() *Builder {
	b.ops.flipHorizontally = true
	return b
}

func (b *Builder) FlipVertically() *Builder {
	b.ops.flipVertically = true
	return b
}

func (b *Builder) HorizontalAlign(align HorizontalPosition) *Builder {
	b.ops.halign = align
	return b
}

func (b *Builder) VerticalAlign(align VerticalPosition) *Builder {
	b.ops.valign = align
	return b
}

// Filter appends a pre-formatted filter call such as "blur(3)".
// Filters are emitted in the order they were added.
func (b *Builder) Filter(call string) *Builder {
	b.ops.filters = append(b.ops.filters, call)
	return b
}

// Crop sets the manual crop window
func (b *Builder) Crop(window Window) *Builder {
	b.ops.crop = &window
	return b
}

// Format converts the output image, e.g. "webp"
func (b *Builder) Format(format string) *Builder {
	return b.Filter("format(" + format + ")")
}

// Quality sets the output quality (1-100)
func (b *Builder) Quality(quality int) *Builder {
	return b.Filter("quality(" + strconv.Itoa(quality) + ")")
}

// Brightness adjusts brightness (-100 to 100)
func (b *Builder) Brightness(amount int) *Builder {
	return b.Filter("brightness(" + strconv.Itoa(amount) + ")")
}

// Contrast adjusts contrast (-100 to 100)
func (b *Builder) Contrast(amount int) *Builder {
	return b.Filter("contrast(" + strconv.Itoa(amount) + ")")
}

func (b *Builder) Grayscale() *Builder {
	return b.Filter("grayscale()")
}

func (b *Builder) Blur(radius int) *Builder {
	return b.Filter("blur(" + strconv.Itoa(radius) + ")")
}

// Fill sets the color used to pad fit-in results, e.g. "white" or "blur"
func (b *Builder) Fill(color string) *Builder {
	return b.Filter("fill(" + color + ")")
}

func (b *Builder) NoUpscale() *Builder {
	return b.Filter("no_upscale()")
}

func (b *Builder) StripICC() *Builder {
	return b.Filter("strip_icc()")
}

// Rotate rotates the image by a multiple of 90 degrees
func (b *Builder) Rotate(degrees int) *Builder {
	return b.Filter("rotate(" + strconv.Itoa(degrees) + ")")
}

// MaxBytes caps the encoded size of the result
func (b *Builder) MaxBytes(n int) *Builder {
	return b.Filter("max_bytes(" + strconv.Itoa(n) + ")")
}

// urlParts returns the operation segments in protocol order
func (b *Builder) urlParts() []string {
	ops := &b.ops
	var parts []string

	if ops.trim {
		parts = append(parts, "trim")
	}

	if ops.crop != nil {
		c := ops.crop
		parts = append(parts, fmt.Sprintf("%dx%d:%dx%d", c.Left, c.Top, c.Right, c.Bottom))
	}

	if ops.fitIn != "" {
		parts = append(parts, string(ops.fitIn))
	}

	if ops.width != nil || ops.height != nil || ops.flipHorizontally || ops.flipVertically {
		var size strings.Builder
		if ops.flipHorizontally {
			size.WriteByte('-')
		}
		size.WriteString(strconv.Itoa(valueOrZero(ops.width)))
		size.WriteByte('x')
		if ops.flipVertically {
			size.WriteByte('-')
		}
		size.WriteString(strconv.Itoa(valueOrZero(ops.height)))
		parts = append(parts, size.String())
	}

	if ops.halign != "" {
		parts = append(parts, string(ops.halign))
	}

	if ops.valign != "" {
		parts = append(parts, string(ops.valign))
	}

	if ops.smart {
		parts = append(parts, "smart")
	}

	if len(ops.filters) > 0 {
		parts = append(parts, "filters:"+strings.Join(ops.filters, ":"))
	}

	return parts
}

// OperationPath returns the slash-joined operation segments accumulated so far
func (b *Builder) OperationPath() string {
	return strings.Join(b.urlParts(), "/")
}

// BuildURL serializes the accumulated operations into the final URL and resets
// the builder. Signing, unsafe and cloaked modes are selected from Options.
func (b *Builder) BuildURL() string {
	operationPath := b.OperationPath()
	data := b.ops.imagePath
	if operationPath != "" {
		data = operationPath + "/" + data
	}

	url := b.opts.ServerURL + "/unsafe/" + data

	if b.opts.SecurityKey != "" && b.opts.requiresKey() {
		url = b.opts.ServerURL + "/" + Sign(b.opts.SecurityKey, data) + "/" + data
	}

	// cloaked URLs are authenticated by whatever sits in front of the server
	if b.opts.Cloaked {
		url = b.opts.ServerURL + "/" + data
	}

	b.ops = operations{}
	return url
}

func valueOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

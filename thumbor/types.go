package thumbor

// FitInType selects how an image is scaled into the requested bounds
type FitInType string

const (
	FitInDefault  FitInType = "fit-in"
	FitInFull     FitInType = "full-fit-in"
	FitInAdaptive FitInType = "adaptative-fit-in"
)

// HorizontalPosition is the horizontal crop alignment
type HorizontalPosition string

const (
	AlignLeft   HorizontalPosition = "left"
	AlignCenter HorizontalPosition = "center"
	AlignRight  HorizontalPosition = "right"
)

// VerticalPosition is the vertical crop alignment
type VerticalPosition string

const (
	AlignTop    VerticalPosition = "top"
	AlignMiddle VerticalPosition = "middle"
	AlignBottom VerticalPosition = "bottom"
)

// Window is a crop rectangle in absolute pixel coordinates.
// Coordinates are not checked; an inverted window is serialized as given.
type Window struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Options configures a Builder
type Options struct {
	ServerURL   string // base URL, no trailing slash expected
	SecurityKey string // shared secret used for signing; empty disables signing

	// RequiresSecurityKey controls whether URLs are signed when a key is present.
	// Nil means "sign whenever SecurityKey is set".
	RequiresSecurityKey *bool

	// Cloaked drops the auth segment entirely, overriding both signed and unsafe modes
	Cloaked bool
}

// requiresKey resolves RequiresSecurityKey against the configured key
func (o Options) requiresKey() bool {
	if o.RequiresSecurityKey != nil {
		return *o.RequiresSecurityKey
	}
	return o.SecurityKey != ""
}

// Int returns a pointer to n, for the optional dimensions of Resize
func Int(n int) *int {
	return &n
}

// Bool returns a pointer to b
func Bool(b bool) *bool {
	return &b
}

// operations is the per-build accumulator. It is owned by a single Builder
// and replaced with an empty value after every BuildURL.
type operations struct {
	imagePath        string
	width, height    *int
	smart            bool
	trim             bool
	fitIn            FitInType
	flipHorizontally bool
	flipVertically   bool
	halign           HorizontalPosition
	valign           VerticalPosition
	crop             *Window
	filters          []string
}

package render

import (
	"html"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"pixurl/images"
)

// ImgProps describes an <img> element backed by Thumbor URLs
type ImgProps struct {
	Src     string
	Options images.TransformOptions

	// Width and Height are emitted as attributes and, when set, override
	// the dimensions in Options for the src URL
	Width  int
	Height int

	Alt     string
	Sizes   string // default "100vw"
	Loading string // default "lazy"

	// NoSrcSet leaves out srcset and sizes, which are emitted by default
	NoSrcSet bool

	// Attrs are extra attributes, emitted in name order. Names that are not
	// plain attribute names, and event handlers, are dropped.
	Attrs map[string]string
}

// Img renders an <img> tag for props, building URLs with client.
//
// Attribute values are entity-escaped only. URLs are not re-encoded, since
// Thumbor signatures cover the exact path bytes.
func Img(client *images.Client, props ImgProps) template.HTML {
	opts := props.Options
	if props.Width > 0 {
		opts.Width = &props.Width
	}
	if props.Height > 0 {
		opts.Height = &props.Height
	}

	var sb strings.Builder
	sb.WriteString("<img")
	writeAttr(&sb, "src", client.OptimizedURL(props.Src, opts))

	if !props.NoSrcSet && props.Src != "" {
		// srcset keeps the caller's options, not the attribute dimensions
		writeAttr(&sb, "srcset", client.SrcSet(props.Src, props.Options))
		writeAttr(&sb, "sizes", defaultString(props.Sizes, "100vw"))
	}

	writeAttr(&sb, "alt", props.Alt)
	if props.Width > 0 {
		writeAttr(&sb, "width", strconv.Itoa(props.Width))
	}
	if props.Height > 0 {
		writeAttr(&sb, "height", strconv.Itoa(props.Height))
	}
	writeAttr(&sb, "loading", defaultString(props.Loading, "lazy"))

	names := make([]string, 0, len(props.Attrs))
	for name := range props.Attrs {
		if validAttrName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		writeAttr(&sb, name, props.Attrs[name])
	}

	sb.WriteString(">")
	return template.HTML(sb.String())
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteByte('"')
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// reserved holds attributes Img always writes itself
var reserved = map[string]bool{
	"src": true, "srcset": true, "sizes": true, "alt": true,
	"width": true, "height": true, "loading": true,
}

// validAttrName accepts plain names such as "class" or "data-id"
func validAttrName(name string) bool {
	lower := strings.ToLower(name)
	if name == "" || reserved[lower] || strings.HasPrefix(lower, "on") {
		return false
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

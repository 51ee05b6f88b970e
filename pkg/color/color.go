// Package color normalizes fill values to the six lowercase hex digits stored
// in fill palettes.
//
// Named colors resolve through a caller-supplied table first, then the SVG
// named color set. Three-digit shorthand expands to six digits. A missing fill
// is black. "none" and "transparent" become the [None] entry, which
// reconstructs as an unfilled shape.
package color

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

const (
	// Black is the fill used when an element has no fill attribute.
	Black = "000000"
	// None is the palette entry of an explicitly unfilled shape.
	None = "none"
)

// Normalizer turns fill attribute values into palette entries.
type Normalizer struct {
	named map[string]string
}

// New returns a Normalizer that consults extra before the standard color
// names. Keys are matched case-insensitively; values may be any form
// Normalize accepts.
func New(extra map[string]string) *Normalizer {
	named := make(map[string]string, len(extra))
	for k, v := range extra {
		named[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Normalizer{named: named}
}

var std = New(nil)

// Normalize is Normalizer.Normalize without extra names.
func Normalize(v string) (string, error) { return std.Normalize(v) }

// Fill normalizes the fill attribute of attrs, defaulting to black.
func (n *Normalizer) Fill(attrs map[string]string) (string, error) {
	v, ok := attrs["fill"]
	if !ok {
		return Black, nil
	}
	return n.Normalize(v)
}

// Normalize returns v as six lowercase hex digits without '#', or [None].
// Paint servers and other non-color values are UNSUPPORTED_PRIMITIVE.
func (n *Normalizer) Normalize(v string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(v))
	if alias, ok := n.named[s]; ok {
		s = strings.ToLower(strings.TrimSpace(alias))
	}

	if s == None || s == "transparent" {
		return None, nil
	}

	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil || len(s) != 7 {
			return "", errs.New(errs.ErrCodeUnsupportedPrimitive, "fill %q is not a hex color", v)
		}
		return c.Hex()[1:], nil
	}

	if rgba, ok := colornames.Map[s]; ok {
		return FromColor(rgba), nil
	}
	return "", errs.New(errs.ErrCodeUnsupportedPrimitive, "unsupported fill %q", v)
}

// Attr formats a palette entry as a fill attribute value.
func Attr(entry string) string {
	if entry == None {
		return None
	}
	return "#" + entry
}

// FromColor formats an opaque color as a palette entry. Alpha is ignored.
func FromColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	cf := colorful.Color{R: float64(r>>8) / 255, G: float64(g>>8) / 255, B: float64(b>>8) / 255}
	return cf.Hex()[1:]
}

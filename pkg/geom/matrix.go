package geom

import (
	"strings"

	"github.com/tdewolff/parse/v2/strconv"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

// Matrix is the affine transform matrix(a b c d e f):
//
//	| A C E |
//	| B D F |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Matrix{A: 1, D: 1}

func (m Matrix) ScaleX() float64     { return m.A }
func (m Matrix) ScaleY() float64     { return m.D }
func (m Matrix) TranslateX() float64 { return m.E }
func (m Matrix) TranslateY() float64 { return m.F }

// CenterCorner returns the top-left corner of a w×h box whose transform is
// read as a scale about the box center: translation + ((M − I)/2)·(w, h).
// For a flip such as matrix(-1 0 0 -1 e f) this is the box's on-canvas
// corner.
func (m Matrix) CenterCorner(w, h float64) Point {
	return complex(
		m.TranslateX()+((m.ScaleX()-1)*w+m.C*h)/2,
		m.TranslateY()+(m.B*w+(m.ScaleY()-1)*h)/2,
	)
}

// ParseMatrix parses a transform attribute of the form matrix(a b c d e f).
// Commas and whitespace both separate values.
func ParseMatrix(s string) (Matrix, error) {
	s = strings.TrimSpace(s)
	inner, ok := strings.CutPrefix(s, "matrix(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return Matrix{}, errs.New(errs.ErrCodeUnsupportedPrimitive, "unsupported transform %q (only matrix(...) is handled)", s)
	}
	v, err := ParseNumbers(strings.TrimSuffix(inner, ")"))
	if err != nil {
		return Matrix{}, err
	}
	if len(v) != 6 {
		return Matrix{}, errs.New(errs.ErrCodeUnsupportedPrimitive, "transform %q: want 6 values, got %d", s, len(v))
	}
	return Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}, nil
}

// ParseNumbers parses a comma and/or whitespace separated list of numbers,
// as used by viewBox and points attributes.
func ParseNumbers(s string) ([]float64, error) {
	b := []byte(s)
	var out []float64
	i := skipCommaWhitespace(b)
	for i < len(b) {
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, errs.New(errs.ErrCodeParse, "bad number list %q at position %d", s, i+1)
		}
		out = append(out, v)
		i += n
		i += skipCommaWhitespace(b[i:])
	}
	return out, nil
}

// ParseViewBox parses a viewBox attribute.
func ParseViewBox(s string) (ViewBox, error) {
	v, err := ParseNumbers(s)
	if err != nil {
		return ViewBox{}, err
	}
	if len(v) != 4 {
		return ViewBox{}, errs.New(errs.ErrCodeParse, "viewBox %q: want 4 values, got %d", s, len(v))
	}
	if v[2] <= 0 || v[3] <= 0 {
		return ViewBox{}, errs.New(errs.ErrCodeParse, "viewBox %q: width and height must be positive", s)
	}
	return ViewBox{MinX: v[0], MinY: v[1], Width: v[2], Height: v[3]}, nil
}

package geom

import (
	"math"
	"strconv"
)

// Point is a position in the plane: real part x, imaginary part y.
type Point = complex128

// Pt builds a Point from its coordinates.
func Pt(x, y float64) Point { return complex(x, y) }

// Segment is one drawable piece of a path.
type Segment interface {
	// Start returns the first point of the segment.
	Start() Point
	// End returns the last point of the segment.
	End() Point
	// Quantize snaps the segment onto g.
	Quantize(g Grid) Segment
	// Degenerate reports whether the segment draws nothing.
	Degenerate() bool

	command() string
}

// Line is a straight segment.
type Line struct {
	P0, P1 Point
}

// Cubic is a cubic Bézier segment.
type Cubic struct {
	P0, C1, C2, P1 Point
}

// Quadratic is a quadratic Bézier segment.
type Quadratic struct {
	P0, C1, P1 Point
}

// Arc is an elliptical arc. Center is kept alongside the endpoint form so
// quantization can snap it on its own.
type Arc struct {
	P0, P1   Point
	Center   Point
	Radius   Point // rx + i·ry
	Rotation float64
	Large    bool
	Sweep    bool
}

func (s Line) Start() Point      { return s.P0 }
func (s Line) End() Point        { return s.P1 }
func (s Cubic) Start() Point     { return s.P0 }
func (s Cubic) End() Point       { return s.P1 }
func (s Quadratic) Start() Point { return s.P0 }
func (s Quadratic) End() Point   { return s.P1 }
func (s Arc) Start() Point       { return s.P0 }
func (s Arc) End() Point         { return s.P1 }

func (s Line) Quantize(g Grid) Segment {
	return Line{g.Snap(s.P0), g.Snap(s.P1)}
}

func (s Cubic) Quantize(g Grid) Segment {
	return Cubic{g.Snap(s.P0), g.Snap(s.C1), g.Snap(s.C2), g.Snap(s.P1)}
}

func (s Quadratic) Quantize(g Grid) Segment {
	return Quadratic{g.Snap(s.P0), g.Snap(s.C1), g.Snap(s.P1)}
}

func (s Arc) Quantize(g Grid) Segment {
	return Arc{
		P0:       g.Snap(s.P0),
		P1:       g.Snap(s.P1),
		Center:   g.Snap(s.Center),
		Radius:   g.SnapRadius(s.Radius),
		Rotation: s.Rotation,
		Large:    s.Large,
		Sweep:    s.Sweep,
	}
}

func (s Line) Degenerate() bool { return s.P0 == s.P1 }

func (s Cubic) Degenerate() bool {
	return s.P0 == s.P1 && s.C1 == s.P0 && s.C2 == s.P0
}

func (s Quadratic) Degenerate() bool {
	return s.P0 == s.P1 && s.C1 == s.P0
}

// An arc whose endpoints coincide is omitted by SVG renderers.
func (s Arc) Degenerate() bool { return s.P0 == s.P1 }

func (s Line) command() string { return "L " + pair(s.P1) }

func (s Cubic) command() string {
	return "C " + pair(s.C1) + " " + pair(s.C2) + " " + pair(s.P1)
}

func (s Quadratic) command() string {
	return "Q " + pair(s.C1) + " " + pair(s.P1)
}

func (s Arc) command() string {
	return "A " + pair(s.Radius) + " " + number(s.Rotation) + " " +
		flag(s.Large) + "," + flag(s.Sweep) + " " + pair(s.P1)
}

func pair(p Point) string {
	return number(real(p)) + "," + number(imag(p))
}

func number(v float64) string {
	if v == 0 {
		return "0" // also folds -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// NewArc converts the endpoint form used by path data into an Arc with its
// center resolved. Radii too small to span the chord are scaled up as SVG
// renderers do. ok is false when either radius is zero, in which case the
// arc renders as a straight line.
func NewArc(p0 Point, radius Point, rotation float64, large, sweep bool, p1 Point) (a Arc, ok bool) {
	rx, ry := math.Abs(real(radius)), math.Abs(imag(radius))
	if rx == 0 || ry == 0 {
		return Arc{}, false
	}
	a = Arc{P0: p0, P1: p1, Rotation: rotation, Large: large, Sweep: sweep}
	if p0 == p1 {
		a.Center, a.Radius = p0, complex(rx, ry)
		return a, true
	}

	phi := rotation * math.Pi / 180
	cos, sin := math.Cos(phi), math.Sin(phi)

	dx2 := (real(p0) - real(p1)) / 2
	dy2 := (imag(p0) - imag(p1)) / 2
	x1 := cos*dx2 + sin*dy2
	y1 := -sin*dx2 + cos*dy2

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den > 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	a.Center = complex(
		cos*cx1-sin*cy1+(real(p0)+real(p1))/2,
		sin*cx1+cos*cy1+(imag(p0)+imag(p1))/2,
	)
	a.Radius = complex(rx, ry)
	return a, true
}

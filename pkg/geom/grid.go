package geom

import "math"

// Grid maps source coordinates onto the integer lattice [0, Size] on both
// axes. Extent is the source length that spans the whole grid.
type Grid struct {
	Origin Point
	Extent float64
	Size   float64
}

// NewGrid returns a grid scaling the view box vb onto [0, size]. The view
// box height is the reference extent.
func NewGrid(vb ViewBox, size float64) Grid {
	return Grid{Origin: complex(vb.MinX, vb.MinY), Extent: vb.Height, Size: size}
}

// Scale rescales p without rounding.
func (g Grid) Scale(p Point) Point {
	s := g.Size / g.Extent
	d := p - g.Origin
	return complex(real(d)*s, imag(d)*s)
}

// Snap scales p, rounds each axis half to even and clips it to the grid.
func (g Grid) Snap(p Point) Point {
	q := g.Scale(p)
	return complex(g.clip(math.RoundToEven(real(q))), g.clip(math.RoundToEven(imag(q))))
}

// SnapRadius scales a radius pair, floors and clips it. Radii are lengths,
// so the origin does not apply.
func (g Grid) SnapRadius(r Point) Point {
	s := g.Size / g.Extent
	return complex(g.clip(math.Floor(real(r)*s)), g.clip(math.Floor(imag(r)*s)))
}

func (g Grid) clip(v float64) float64 {
	return math.Max(0, math.Min(g.Size, v))
}

// ViewBox is the user coordinate system of a document.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

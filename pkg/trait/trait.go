// Package trait models the drawable content of trait assets.
//
// A [Primitive] is one of [Path], [Rect] or [Cell]; the set is closed. Every
// primitive carries its source attributes, snaps itself onto a grid with
// Quantize, and reports the Key that deduplicates its geometry in the
// geometry palette.
package trait

import (
	"fmt"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/geom"
)

// ErrDegenerate is returned by Quantize when nothing drawable survives.
var ErrDegenerate = errs.New(errs.ErrCodeDegenerateGeometry, "primitive collapsed to nothing")

// Primitive is a drawable unit in paint order.
type Primitive interface {
	// Attributes returns the source attributes (fill, stroke, transform...).
	Attributes() map[string]string
	// Quantize snaps the geometry onto g. It returns ErrDegenerate when the
	// result draws nothing.
	Quantize(g geom.Grid) (Primitive, error)
	// Key is the canonical text of the geometry.
	Key() string

	primitive()
}

// Path is a vector primitive.
type Path struct {
	Segments geom.Path
	Attrs    map[string]string
}

// Rect is an axis-aligned rectangle in integer grid units.
type Rect struct {
	X, Y, Width, Height int
	Attrs               map[string]string
}

// Cell is one pixel of a raster grid. Index is its row-major position.
type Cell struct {
	Index int
	Color string // normalized hex
}

func (Path) primitive() {}
func (Rect) primitive() {}
func (Cell) primitive() {}

func (p Path) Attributes() map[string]string { return p.Attrs }
func (r Rect) Attributes() map[string]string { return r.Attrs }
func (c Cell) Attributes() map[string]string { return map[string]string{"fill": "#" + c.Color} }

func (p Path) Quantize(g geom.Grid) (Primitive, error) {
	q := p.Segments.Quantize(g)
	if len(q) == 0 {
		return nil, ErrDegenerate
	}
	return Path{Segments: q, Attrs: p.Attrs}, nil
}

// Quantize leaves rectangles alone: they are already stored in grid units.
// Empty rectangles are degenerate.
func (r Rect) Quantize(geom.Grid) (Primitive, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, ErrDegenerate
	}
	return r, nil
}

// Quantize leaves cells alone: a raster is sampled on its grid already.
func (c Cell) Quantize(geom.Grid) (Primitive, error) { return c, nil }

// Key is the canonicalized path data.
func (p Path) Key() string { return geom.Canonicalize(p.Segments.D()) }

func (r Rect) Key() string { return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height) }

func (c Cell) Key() string { return c.Color }

// Stroked reports whether the primitive has a stroke attribute. Any value,
// including an empty one, counts.
func Stroked(p Primitive) bool {
	_, ok := p.Attributes()["stroke"]
	return ok
}

// Asset is one source file and its primitives in paint order.
type Asset struct {
	ID         string // slash-separated path relative to the traits root
	Primitives []Primitive
}

// Quantize snaps every primitive onto g. Degenerate primitives are dropped
// and counted; any other error is returned.
func (a Asset) Quantize(g geom.Grid) (Asset, int, error) {
	out := Asset{ID: a.ID, Primitives: make([]Primitive, 0, len(a.Primitives))}
	dropped := 0
	for i, p := range a.Primitives {
		q, err := p.Quantize(g)
		if errs.Recoverable(err) {
			dropped++
			continue
		}
		if err != nil {
			return Asset{}, 0, fmt.Errorf("%s: primitive %d: %w", a.ID, i, err)
		}
		out.Primitives = append(out.Primitives, q)
	}
	return out, dropped, nil
}

package trait

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/geom"
	"github.com/matzehuels/traitcodec/pkg/svg"
)

// FromDocument builds a vector asset from a parsed document. Only identity
// transforms are accepted on drawable elements.
func FromDocument(id string, doc *svg.Document) (Asset, error) {
	a := Asset{ID: id, Primitives: make([]Primitive, 0, len(doc.Elements))}
	for i, e := range doc.Elements {
		if t, ok := e.Attrs["transform"]; ok {
			m, err := geom.ParseMatrix(t)
			if err != nil {
				return Asset{}, fmt.Errorf("%s: <%s> %d: %w", id, e.Kind, i, err)
			}
			if m != geom.Identity {
				return Asset{}, errs.New(errs.ErrCodeUnsupportedPrimitive,
					"%s: <%s> %d: transform %q on a vector element", id, e.Kind, i, t)
			}
		}
		segs, err := geom.ParsePath(e.D)
		if err != nil {
			return Asset{}, fmt.Errorf("%s: <%s> %d: %w", id, e.Kind, i, err)
		}
		a.Primitives = append(a.Primitives, Path{Segments: segs, Attrs: e.Attrs})
	}
	return a, nil
}

// RectsFromNode builds a rect asset from the direct <rect> children of root.
// A matrix transform is read as a scale about the rectangle's center, so the
// stored corner is where the rectangle lands on the canvas.
func RectsFromNode(id string, root *svg.Node) (Asset, error) {
	rects := root.ChildrenNamed("rect")
	a := Asset{ID: id, Primitives: make([]Primitive, 0, len(rects))}
	for i, n := range rects {
		r, err := rectFromNode(n)
		if err != nil {
			return Asset{}, fmt.Errorf("%s: rect %d: %w", id, i, err)
		}
		a.Primitives = append(a.Primitives, r)
	}
	return a, nil
}

func rectFromNode(n *svg.Node) (Rect, error) {
	var v [4]float64
	for i, name := range []string{"x", "y", "width", "height"} {
		f, err := svg.Length(n, name)
		if err != nil {
			return Rect{}, err
		}
		v[i] = f
	}
	corner := geom.Pt(v[0], v[1])
	if t, ok := n.Attr("transform"); ok {
		m, err := geom.ParseMatrix(t)
		if err != nil {
			return Rect{}, err
		}
		corner = m.CenterCorner(v[2], v[3])
	}
	return Rect{
		X:      round(real(corner)),
		Y:      round(imag(corner)),
		Width:  round(v[2]),
		Height: round(v[3]),
		Attrs:  n.Attrs,
	}, nil
}

func round(v float64) int { return int(math.RoundToEven(v)) }

package svg

import (
	"fmt"
	"io"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/geom"
)

// Options selects which shape families are converted to paths. A family
// whose flag is off is skipped.
type Options struct {
	Circles   bool `toml:"circles"`
	Ellipses  bool `toml:"ellipses"`
	Lines     bool `toml:"lines"`
	Polylines bool `toml:"polylines"`
	Polygons  bool `toml:"polygons"`
	Rects     bool `toml:"rects"`
}

// DefaultOptions converts every shape family.
func DefaultOptions() Options {
	return Options{
		Circles:   true,
		Ellipses:  true,
		Lines:     true,
		Polylines: true,
		Polygons:  true,
		Rects:     true,
	}
}

// Element is one drawable element in paint order.
type Element struct {
	Kind  string            // source element name
	D     string            // path data
	Attrs map[string]string // attributes as written in the source
}

// Document is a parsed vector asset.
type Document struct {
	Root     *Node
	ViewBox  geom.ViewBox
	Elements []Element
}

// Parse decodes and flattens a vector asset. Documents without a viewBox use
// def.
func Parse(r io.Reader, opts Options, def geom.ViewBox) (*Document, error) {
	root, err := Decode(r)
	if err != nil {
		return nil, err
	}
	vb, err := ViewBox(root, def)
	if err != nil {
		return nil, err
	}
	elems, err := Flatten(root, opts)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, ViewBox: vb, Elements: elems}, nil
}

// Flatten returns the drawable descendants of n in document order. Group
// children take the group's position; group attributes are not inherited,
// so a group transform other than the identity is UNSUPPORTED_PRIMITIVE.
func Flatten(n *Node, opts Options) ([]Element, error) {
	var out []Element
	for _, c := range n.Children {
		if c.Name == "g" {
			if t, ok := c.Attr("transform"); ok {
				m, err := geom.ParseMatrix(t)
				if err != nil {
					return nil, fmt.Errorf("<g>: %w", err)
				}
				if m != geom.Identity {
					return nil, errs.New(errs.ErrCodeUnsupportedPrimitive, "<g>: transform %q is not applied to children", t)
				}
			}
			sub, err := Flatten(c, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}
		d, ok, err := toPathData(c, opts)
		if err != nil {
			return nil, fmt.Errorf("<%s>: %w", c.Name, err)
		}
		if ok {
			out = append(out, Element{Kind: c.Name, D: d, Attrs: c.Attrs})
		}
	}
	return out, nil
}

// toPathData converts one element. ok is false for elements that are
// skipped.
func toPathData(n *Node, opts Options) (d string, ok bool, err error) {
	switch n.Name {
	case "path":
		d, ok = n.Attr("d")
		return d, ok && d != "", nil
	case "circle":
		if !opts.Circles {
			return "", false, nil
		}
		return circle(n)
	case "ellipse":
		if !opts.Ellipses {
			return "", false, nil
		}
		return ellipse(n)
	case "line":
		if !opts.Lines {
			return "", false, nil
		}
		return line(n)
	case "polyline":
		if !opts.Polylines {
			return "", false, nil
		}
		return poly(n, false)
	case "polygon":
		if !opts.Polygons {
			return "", false, nil
		}
		return poly(n, true)
	case "rect":
		if !opts.Rects {
			return "", false, nil
		}
		return rect(n)
	}
	return "", false, nil
}

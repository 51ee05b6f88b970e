// Package svg reads vector trait assets.
//
// [Decode] builds a small element tree from SVG markup. [Flatten] walks it in
// document order, dissolving groups, and returns every drawable element as
// path data plus its raw attributes. Shapes other than <path> are converted
// to equivalent path data unless the matching [Options] flag is off.
//
// Elements the codec does not draw (defs, style, text, ...) and shapes with
// nothing to draw are skipped without error. Malformed markup fails the whole
// document with a PARSE_ERROR.
package svg

import (
	"encoding/xml"
	"io"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/geom"
)

// Node is one element of a decoded document.
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node
}

// Attr returns the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// ChildrenNamed returns the direct children with the given element name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Decode reads markup into a node tree rooted at the <svg> element.
// Namespaces are dropped from element and attribute names.
func Decode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeParse, err, "malformed markup")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errs.New(errs.ErrCodeParse, "malformed markup: more than one root element")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, errs.New(errs.ErrCodeParse, "malformed markup: no root element")
	}
	if root.Name != "svg" {
		return nil, errs.New(errs.ErrCodeParse, "root element is <%s>, want <svg>", root.Name)
	}
	return root, nil
}

// ViewBox returns the root's viewBox, or def when the attribute is absent.
func ViewBox(root *Node, def geom.ViewBox) (geom.ViewBox, error) {
	v, ok := root.Attr("viewBox")
	if !ok {
		return def, nil
	}
	return geom.ParseViewBox(v)
}

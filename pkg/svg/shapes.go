package svg

import (
	"fmt"
	"strconv"
	"strings"

	tdstrconv "github.com/tdewolff/parse/v2/strconv"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/geom"
)

// Length reads a numeric attribute. A missing attribute is 0; a trailing
// "px" unit is accepted.
func Length(n *Node, name string) (float64, error) {
	s, ok := n.Attr(name)
	if !ok {
		return 0, nil
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, m := tdstrconv.ParseFloat([]byte(s))
	if m == 0 || m != len(s) {
		return 0, errs.New(errs.ErrCodeParse, "attribute %s=%q is not a number", name, s)
	}
	return v, nil
}

func lengths(n *Node, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := Length(n, name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func circle(n *Node) (string, bool, error) {
	v, err := lengths(n, "cx", "cy", "r")
	if err != nil {
		return "", false, err
	}
	if v[2] <= 0 {
		return "", false, nil
	}
	return ellipsePath(v[0], v[1], v[2], v[2]), true, nil
}

func ellipse(n *Node) (string, bool, error) {
	v, err := lengths(n, "cx", "cy", "rx", "ry")
	if err != nil {
		return "", false, err
	}
	if v[2] <= 0 || v[3] <= 0 {
		return "", false, nil
	}
	return ellipsePath(v[0], v[1], v[2], v[3]), true, nil
}

// ellipsePath draws the ellipse as two half arcs starting at its leftmost
// point.
func ellipsePath(cx, cy, rx, ry float64) string {
	r := num(rx) + "," + num(ry)
	return fmt.Sprintf("M %s,%s a %s 0 1,0 %s,0 a %s 0 1,0 %s,0 z",
		num(cx-rx), num(cy), r, num(2*rx), r, num(-2*rx))
}

func line(n *Node) (string, bool, error) {
	v, err := lengths(n, "x1", "y1", "x2", "y2")
	if err != nil {
		return "", false, err
	}
	return fmt.Sprintf("M %s,%s L %s,%s", num(v[0]), num(v[1]), num(v[2]), num(v[3])), true, nil
}

func poly(n *Node, closed bool) (string, bool, error) {
	s, _ := n.Attr("points")
	v, err := geom.ParseNumbers(s)
	if err != nil {
		return "", false, err
	}
	if len(v)%2 != 0 {
		return "", false, errs.New(errs.ErrCodeParse, "points %q: odd number of coordinates", s)
	}
	if len(v) < 4 {
		return "", false, nil
	}
	var b strings.Builder
	for i := 0; i < len(v); i += 2 {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(num(v[i]) + "," + num(v[i+1]))
	}
	if closed {
		b.WriteString(" z")
	}
	return b.String(), true, nil
}

// rect follows the SVG rules for rounded corners: a missing radius takes the
// other one, and radii are capped at half the side.
func rect(n *Node) (string, bool, error) {
	v, err := lengths(n, "x", "y", "width", "height")
	if err != nil {
		return "", false, err
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	if w <= 0 || h <= 0 {
		return "", false, nil
	}

	rx, err := Length(n, "rx")
	if err != nil {
		return "", false, err
	}
	ry, err := Length(n, "ry")
	if err != nil {
		return "", false, err
	}
	_, hasRx := n.Attr("rx")
	_, hasRy := n.Attr("ry")
	switch {
	case hasRx && !hasRy:
		ry = rx
	case hasRy && !hasRx:
		rx = ry
	}
	rx = min(max(rx, 0), w/2)
	ry = min(max(ry, 0), h/2)

	if rx == 0 || ry == 0 {
		return fmt.Sprintf("M %s,%s L %s,%s L %s,%s L %s,%s z",
			num(x), num(y), num(x+w), num(y), num(x+w), num(y+h), num(x), num(y+h)), true, nil
	}

	r := num(rx) + "," + num(ry)
	return fmt.Sprintf("M %s,%s L %s,%s A %s 0 0,1 %s,%s L %s,%s A %s 0 0,1 %s,%s L %s,%s A %s 0 0,1 %s,%s L %s,%s A %s 0 0,1 %s,%s z",
		num(x+rx), num(y),
		num(x+w-rx), num(y), r, num(x+w), num(y+ry),
		num(x+w), num(y+h-ry), r, num(x+w-rx), num(y+h),
		num(x+rx), num(y+h), r, num(x), num(y+h-ry),
		num(x), num(y+ry), r, num(x+rx), num(y),
	), true, nil
}

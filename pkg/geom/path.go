package geom

import "strings"

// Path is an ordered list of segments. Subpaths are implied wherever a
// segment does not start at the previous segment's end.
type Path []Segment

// D serializes the path as path data. An empty path yields "".
func (p Path) D() string {
	parts := make([]string, 0, len(p)+1)
	var pos Point
	for i, s := range p {
		if i == 0 || s.Start() != pos {
			parts = append(parts, "M "+pair(s.Start()))
		}
		parts = append(parts, s.command())
		pos = s.End()
	}
	return strings.Join(parts, " ")
}

// Quantize snaps every segment onto g and drops those that collapse to a
// point. The result is empty when nothing drawable survives.
func (p Path) Quantize(g Grid) Path {
	out := make(Path, 0, len(p))
	for _, s := range p {
		q := s.Quantize(g)
		if q.Degenerate() {
			continue
		}
		out = append(out, q)
	}
	return out
}

// String returns the path data.
func (p Path) String() string { return p.D() }

package geom

import (
	"github.com/tdewolff/parse/v2/strconv"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

// argCounts is the number of arguments each path command consumes.
var argCounts = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// ParsePath parses SVG path data into segments. Close commands become a line
// back to the subpath start unless the pen is already there. Arcs with a zero
// radius become lines; arcs whose endpoints coincide are omitted.
func ParsePath(d string) (Path, error) {
	b := []byte(d)
	i := skipCommaWhitespace(b)
	if i == len(b) {
		return Path{}, nil
	}
	if isNumberStart(b[i]) {
		return nil, errs.New(errs.ErrCodeParse, "bad path: path should start with a command")
	}

	var (
		p        Path
		f        [7]float64
		pos      Point // current pen position
		start    Point // start of the current subpath
		ctrl     Point // last cubic control point, for S
		quad     Point // last quadratic control point, for T
		prevCmd  = byte('z')
		hasStart bool
	)

	for {
		i += skipCommaWhitespace(b[i:])
		if i >= len(b) {
			break
		}

		cmd := prevCmd
		if cmd == 'z' || cmd == 'Z' || !isNumberStart(b[i]) {
			cmd = b[i]
			i++
			i += skipCommaWhitespace(b[i:])
		}

		upper := cmd
		if 'a' <= cmd && cmd <= 'z' {
			upper -= 'a' - 'A'
		}
		n, known := argCounts[upper]
		if !known {
			return nil, errs.New(errs.ErrCodeParse, "bad path: unknown command '%c' at position %d", cmd, i)
		}
		if !hasStart && upper != 'M' {
			return nil, errs.New(errs.ErrCodeParse, "bad path: '%c' before any move-to", cmd)
		}

		for j := 0; j < n; j++ {
			if upper == 'A' && (j == 3 || j == 4) {
				if i < len(b) && (b[i] == '0' || b[i] == '1') {
					f[j] = float64(b[i] - '0')
					i++
				} else {
					return nil, errs.New(errs.ErrCodeParse, "bad path: arc flags should be 0 or 1 in command '%c' at position %d", cmd, i+1)
				}
			} else {
				num, m := strconv.ParseFloat(b[i:])
				if m == 0 {
					return nil, errs.New(errs.ErrCodeParse, "bad path: %d numbers should follow command '%c' at position %d", n, cmd, i+1)
				}
				f[j] = num
				i += m
			}
			i += skipCommaWhitespace(b[i:])
		}

		rel := cmd != upper
		abs := func(x, y float64) Point {
			if rel {
				return pos + complex(x, y)
			}
			return complex(x, y)
		}

		next := pos
		switch upper {
		case 'M':
			next = abs(f[0], f[1])
			start, hasStart = next, true
			// subsequent pairs are implicit line-tos
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			if hasStart && pos != start {
				p = append(p, Line{pos, start})
			}
			next = start
		case 'L':
			next = abs(f[0], f[1])
			p = append(p, Line{pos, next})
		case 'H':
			x := f[0]
			if rel {
				x += real(pos)
			}
			next = complex(x, imag(pos))
			p = append(p, Line{pos, next})
		case 'V':
			y := f[0]
			if rel {
				y += imag(pos)
			}
			next = complex(real(pos), y)
			p = append(p, Line{pos, next})
		case 'C':
			c1, c2 := abs(f[0], f[1]), abs(f[2], f[3])
			next = abs(f[4], f[5])
			p = append(p, Cubic{pos, c1, c2, next})
			ctrl = c2
		case 'S':
			c1 := pos
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				c1 = 2*pos - ctrl
			}
			c2 := abs(f[0], f[1])
			next = abs(f[2], f[3])
			p = append(p, Cubic{pos, c1, c2, next})
			ctrl = c2
		case 'Q':
			c := abs(f[0], f[1])
			next = abs(f[2], f[3])
			p = append(p, Quadratic{pos, c, next})
			quad = c
		case 'T':
			c := pos
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				c = 2*pos - quad
			}
			next = abs(f[0], f[1])
			p = append(p, Quadratic{pos, c, next})
			quad = c
		case 'A':
			next = abs(f[5], f[6])
			if next == pos {
				break
			}
			arc, ok := NewArc(pos, complex(f[0], f[1]), f[2], f[3] == 1, f[4] == 1, next)
			if ok {
				p = append(p, arc)
			} else {
				p = append(p, Line{pos, next})
			}
		}

		prevCmd = cmd
		pos = next
	}
	return p, nil
}

// MustParsePath is like ParsePath but panics on error. For tests and
// literals only.
func MustParsePath(d string) Path {
	p, err := ParsePath(d)
	if err != nil {
		panic(err)
	}
	return p
}

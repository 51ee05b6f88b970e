package geom

import (
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// command is one path-data command with its raw text and argument tokens.
type command struct {
	letter byte
	raw    string
	args   []string
	nums   []float64
}

// Canonicalize rewrites single line-to commands as H/V shorthand wherever
// the running endpoint shares the x or y coordinate of the line's end. The
// first command is left alone. Input that cannot be tokenized is returned
// unchanged.
func Canonicalize(d string) string {
	cmds, ok := splitCommands(d)
	if !ok {
		return d
	}

	out := make([]string, 0, len(cmds))
	var pos, start Point
	for i, c := range cmds {
		prev := pos
		pos, start = advance(c, pos, start)

		text := c.raw
		if i > 0 && len(c.args) == 2 {
			switch c.letter {
			case 'L':
				if c.nums[0] == real(prev) {
					text = "V " + c.args[1]
				} else if c.nums[1] == imag(prev) {
					text = "H " + c.args[0]
				}
			case 'l':
				if c.nums[0] == 0 {
					text = "v " + c.args[1]
				} else if c.nums[1] == 0 {
					text = "h " + c.args[0]
				}
			}
		}
		out = append(out, text)
	}
	return strings.Join(out, " ")
}

// advance moves the pen through every argument group of c.
func advance(c command, pos, start Point) (Point, Point) {
	upper := toUpper(c.letter)
	rel := c.letter != upper
	n := argCounts[upper]
	if n == 0 {
		return start, start
	}
	for g := 0; g+n <= len(c.nums); g += n {
		a := c.nums[g : g+n]
		end := func(x, y float64) Point {
			if rel {
				return pos + complex(x, y)
			}
			return complex(x, y)
		}
		switch upper {
		case 'M':
			pos = end(a[0], a[1])
			if g == 0 {
				start = pos
			}
		case 'H':
			x := a[0]
			if rel {
				x += real(pos)
			}
			pos = complex(x, imag(pos))
		case 'V':
			y := a[0]
			if rel {
				y += imag(pos)
			}
			pos = complex(real(pos), y)
		default:
			pos = end(a[n-2], a[n-1])
		}
	}
	return pos, start
}

func splitCommands(d string) ([]command, bool) {
	b := []byte(d)
	var cmds []command
	i := skipCommaWhitespace(b)
	for i < len(b) {
		from := i
		c := command{letter: b[i]}
		upper := toUpper(c.letter)
		n, known := argCounts[upper]
		if !known {
			return nil, false
		}
		i++
		for {
			i += skipCommaWhitespace(b[i:])
			if i >= len(b) || !isNumberStart(b[i]) {
				break
			}
			if n == 0 {
				return nil, false
			}
			for j := 0; j < n; j++ {
				i += skipCommaWhitespace(b[i:])
				if upper == 'A' && (j == 3 || j == 4) {
					if i >= len(b) || (b[i] != '0' && b[i] != '1') {
						return nil, false
					}
					c.args = append(c.args, string(b[i]))
					c.nums = append(c.nums, float64(b[i]-'0'))
					i++
					continue
				}
				v, m := strconv.ParseFloat(b[i:])
				if m == 0 {
					return nil, false
				}
				c.args = append(c.args, string(b[i:i+m]))
				c.nums = append(c.nums, v)
				i += m
			}
		}
		if n > 0 && len(c.args) == 0 {
			return nil, false
		}
		c.raw = strings.TrimRight(string(b[from:i]), " ,\t\r\n")
		cmds = append(cmds, c)
	}
	return cmds, true
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

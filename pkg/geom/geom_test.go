package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want Path
	}{
		{"empty", "  ", Path{}},
		{"line", "M 10,20 L 30,40", Path{Line{Pt(10, 20), Pt(30, 40)}}},
		{"compact", "M10 20L30 40", Path{Line{Pt(10, 20), Pt(30, 40)}}},
		{"implicit lineto", "M 0,0 5,0 5,5", Path{
			Line{Pt(0, 0), Pt(5, 0)},
			Line{Pt(5, 0), Pt(5, 5)},
		}},
		{"relative with close", "m 1,1 h 10 v 10 z", Path{
			Line{Pt(1, 1), Pt(11, 1)},
			Line{Pt(11, 1), Pt(11, 11)},
			Line{Pt(11, 11), Pt(1, 1)},
		}},
		{"close at start adds nothing", "M 0,0 L 5,0 L 0,0 Z", Path{
			Line{Pt(0, 0), Pt(5, 0)},
			Line{Pt(5, 0), Pt(0, 0)},
		}},
		{"cubic and smooth", "M 0,0 C 0,1 1,1 1,0 S 2,-1 2,0", Path{
			Cubic{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)},
			Cubic{Pt(1, 0), Pt(1, -1), Pt(2, -1), Pt(2, 0)},
		}},
		{"quadratic and smooth", "M 0,0 Q 1,1 2,0 T 4,0", Path{
			Quadratic{Pt(0, 0), Pt(1, 1), Pt(2, 0)},
			Quadratic{Pt(2, 0), Pt(3, -1), Pt(4, 0)},
		}},
		{"zero radius arc is a line", "M 0,0 A 0,5 0 0,1 10,0", Path{
			Line{Pt(0, 0), Pt(10, 0)},
		}},
		{"arc to current point is dropped", "M 3,3 A 5,5 0 0,1 3,3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.d)
			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.d, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePath(%q) mismatch (-want +got):\n%s", tt.d, diff)
			}
		})
	}
}

func TestParsePathArc(t *testing.T) {
	p, err := ParsePath("M0 0A5 5 0 0 1 10 0")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 1 {
		t.Fatalf("segments = %d, want 1", len(p))
	}
	a, ok := p[0].(Arc)
	if !ok {
		t.Fatalf("segment is %T, want Arc", p[0])
	}
	if a.Center != Pt(5, 0) || a.Radius != Pt(5, 5) || !a.Sweep || a.Large {
		t.Errorf("arc = %+v", a)
	}
	if got, want := p.D(), "M 0,0 A 5,5 0 0,1 10,0"; got != want {
		t.Errorf("D() = %q, want %q", got, want)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, d := range []string{
		"10 10",
		"L 1,1",
		"M 0,0 X 1",
		"M 0,0 L 1",
		"M 0,0 A 5,5 0 2,1 3,3",
	} {
		t.Run(d, func(t *testing.T) {
			_, err := ParsePath(d)
			if err == nil {
				t.Fatalf("ParsePath(%q) expected error", d)
			}
			if !errs.Is(err, errs.ErrCodeParse) {
				t.Errorf("error code = %s, want %s", errs.GetCode(err), errs.ErrCodeParse)
			}
		})
	}
}

func TestPathD(t *testing.T) {
	p := Path{
		Line{Pt(0, 0), Pt(10, 0)},
		Quadratic{Pt(10, 0), Pt(12.5, 3), Pt(15, 0)},
		Line{Pt(20, 20), Pt(30, 20)},
	}
	want := "M 0,0 L 10,0 Q 12.5,3 15,0 M 20,20 L 30,20"
	if got := p.D(); got != want {
		t.Errorf("D() = %q, want %q", got, want)
	}
	if got := (Path{}).D(); got != "" {
		t.Errorf("empty D() = %q, want empty", got)
	}
}

func TestPathRoundTrip(t *testing.T) {
	for _, d := range []string{
		"M 0,0 L 10,0 L 10,10 L 0,0",
		"M 1,2 C 3,4 5,6 7,8 Q 9,10 11,12",
		"M 0,0 A 5,5 0 0,1 10,0",
		"M 0,0 L 1,1 M 5,5 L 6,6",
	} {
		p := MustParsePath(d)
		if got := p.D(); got != d {
			t.Errorf("round trip %q = %q", d, got)
		}
	}
}

func TestGridSnap(t *testing.T) {
	g := Grid{Extent: 10, Size: 10}
	tests := []struct {
		in, want Point
	}{
		{Pt(2.5, 3.5), Pt(2, 4)}, // half to even
		{Pt(11, -1), Pt(10, 0)},  // clipped
		{Pt(4.4, 4.6), Pt(4, 5)},
	}
	for _, tt := range tests {
		if got := g.Snap(tt.in); got != tt.want {
			t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got, want := g.SnapRadius(Pt(2.7, 12)), Pt(2, 10); got != want {
		t.Errorf("SnapRadius = %v, want %v", got, want)
	}
}

func TestGridOrigin(t *testing.T) {
	g := NewGrid(ViewBox{MinX: 10, MinY: 10, Width: 20, Height: 20}, 255)
	if got := g.Snap(Pt(10, 30)); got != Pt(0, 255) {
		t.Errorf("Snap = %v, want (0,255)", got)
	}
}

func TestPathQuantize(t *testing.T) {
	g := Grid{Extent: 100, Size: 10}

	p := Path{
		Line{Pt(0, 0), Pt(1, 1)}, // collapses onto (0,0)
		Line{Pt(0, 0), Pt(50, 0)},
		Cubic{Pt(50, 0), Pt(52, 1), Pt(54, 2), Pt(70, 33)},
	}
	want := Path{
		Line{Pt(0, 0), Pt(5, 0)},
		Cubic{Pt(5, 0), Pt(5, 0), Pt(5, 0), Pt(7, 3)},
	}
	if diff := cmp.Diff(want, p.Quantize(g)); diff != "" {
		t.Errorf("Quantize mismatch (-want +got):\n%s", diff)
	}

	tiny := Path{Line{Pt(1, 1), Pt(2, 2)}, Quadratic{Pt(2, 2), Pt(3, 3), Pt(1, 1)}}
	if got := tiny.Quantize(g).D(); got != "" {
		t.Errorf("degenerate path D() = %q, want empty", got)
	}
}

func TestArcQuantizeIndependent(t *testing.T) {
	a, ok := NewArc(Pt(0, 0), Pt(5.2, 5.2), 0, false, true, Pt(10.4, 0))
	if !ok {
		t.Fatal("NewArc not ok")
	}
	q := a.Quantize(Grid{Extent: 255, Size: 255}).(Arc)
	if q.P1 != Pt(10, 0) || q.Center != Pt(5, 0) || q.Radius != Pt(5, 5) {
		t.Errorf("quantized arc = %+v", q)
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"vertical then horizontal", "M 0,0 L 0,10 L 5,10 L 7,3", "M 0,0 V 10 H 5 L 7,3"},
		{"x checked first", "M 5,5 L 5,5", "M 5,5 V 5"},
		{"relative", "m 1,1 l 0,5 l 3,0 l 1,1", "m 1,1 v 5 h 3 l 1,1"},
		{"close resets pen", "M 0,0 L 10,0 Z L 0,5", "M 0,0 H 10 Z V 5"},
		{"curves move the pen", "M 0,0 C 1,1 2,2 3,3 L 3,9", "M 0,0 C 1,1 2,2 3,3 V 9"},
		{"arc endpoint", "M 0,0 A 5,5 0 0,1 10,0 L 10,4", "M 0,0 A 5,5 0 0,1 10,0 V 4"},
		{"new subpath", "M 0,0 L 1,1 M 4,4 L 9,4", "M 0,0 L 1,1 M 4,4 H 9"},
		{"multi-pair line kept", "M 0,0 L 0,5 6,5", "M 0,0 L 0,5 6,5"},
		{"unparseable", "M 0,0 X 1", "M 0,0 X 1"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.in); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrix(t *testing.T) {
	m, err := ParseMatrix("matrix(2 0 0 2 5 5)")
	if err != nil {
		t.Fatal(err)
	}
	if m.ScaleX() != 2 || m.ScaleY() != 2 || m.TranslateX() != 5 || m.TranslateY() != 5 {
		t.Errorf("ParseMatrix = %+v", m)
	}
	if got, want := m.CenterCorner(10, 10), Pt(10, 10); got != want {
		t.Errorf("CenterCorner = %v, want %v", got, want)
	}

	flip, err := ParseMatrix("matrix(-1,0,0,-1,20,30)")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := flip.CenterCorner(4, 6), Pt(16, 24); got != want {
		t.Errorf("flip CenterCorner = %v, want %v", got, want)
	}
	if got := Identity.CenterCorner(7, 7); got != 0 {
		t.Errorf("identity CenterCorner = %v, want 0", got)
	}
	skew := Matrix{A: 1, B: 2, C: 4, D: 1}
	if got, want := skew.CenterCorner(1, 1), Pt(2, 1); got != want {
		t.Errorf("skew CenterCorner = %v, want %v", got, want)
	}

	for _, bad := range []string{"translate(1 2)", "matrix(1 0 0 1)", "matrix(1 0 0 1 a b)"} {
		if _, err := ParseMatrix(bad); err == nil {
			t.Errorf("ParseMatrix(%q) expected error", bad)
		}
	}
}

func TestParseViewBox(t *testing.T) {
	vb, err := ParseViewBox("0 0 283.5,283.5")
	if err != nil {
		t.Fatal(err)
	}
	if want := (ViewBox{Width: 283.5, Height: 283.5}); vb != want {
		t.Errorf("ParseViewBox = %+v, want %+v", vb, want)
	}
	for _, bad := range []string{"", "0 0 10", "0 0 0 10", "0 0 ten 10"} {
		if _, err := ParseViewBox(bad); err == nil {
			t.Errorf("ParseViewBox(%q) expected error", bad)
		}
	}
}

package trait

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/geom"
	"github.com/matzehuels/traitcodec/pkg/svg"
)

func parseDoc(t *testing.T, markup string) *svg.Document {
	t.Helper()
	d, err := svg.Parse(strings.NewReader(markup), svg.DefaultOptions(), geom.ViewBox{Width: 255, Height: 255})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFromDocument(t *testing.T) {
	d := parseDoc(t, `<svg><path d="M 0,0 L 10,0" fill="red"/><rect width="5" height="5" stroke="#000"/></svg>`)
	a, err := FromDocument("00/000.svg", d)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Primitives) != 2 {
		t.Fatalf("primitives = %d, want 2", len(a.Primitives))
	}
	if got := a.Primitives[0].Key(); got != "M 0,0 H 10" {
		t.Errorf("Key = %q", got)
	}
	if Stroked(a.Primitives[0]) || !Stroked(a.Primitives[1]) {
		t.Error("stroke flags wrong")
	}
}

func TestFromDocumentTransform(t *testing.T) {
	ok := parseDoc(t, `<svg><path d="M 0,0 L 1,1" transform="matrix(1 0 0 1 0 0)"/></svg>`)
	if _, err := FromDocument("a", ok); err != nil {
		t.Errorf("identity transform rejected: %v", err)
	}
	bad := parseDoc(t, `<svg><path d="M 0,0 L 1,1" transform="matrix(2 0 0 2 0 0)"/></svg>`)
	if _, err := FromDocument("a", bad); !errs.Is(err, errs.ErrCodeUnsupportedPrimitive) {
		t.Errorf("error = %v, want %s", err, errs.ErrCodeUnsupportedPrimitive)
	}
}

func TestRectsFromNode(t *testing.T) {
	root, err := svg.Decode(strings.NewReader(`<svg viewBox="0 0 45 45">
  <rect x="1" y="2" width="3" height="4" fill="black"/>
  <rect width="10" height="10" transform="matrix(2 0 0 2 5 5)" fill="#fff"/>
  <rect width="4" height="6" transform="matrix(-1 0 0 -1 20 30)"/>
  <g><rect width="1" height="1"/></g>
</svg>`))
	if err != nil {
		t.Fatal(err)
	}
	a, err := RectsFromNode("07/bg.svg", root)
	if err != nil {
		t.Fatal(err)
	}
	var got [][4]int
	for _, p := range a.Primitives {
		r := p.(Rect)
		got = append(got, [4]int{r.X, r.Y, r.Width, r.Height})
	}
	want := [][4]int{{1, 2, 3, 4}, {10, 10, 10, 10}, {16, 24, 4, 6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}
}

func TestAssetQuantizeDropsDegenerate(t *testing.T) {
	a := Asset{ID: "x", Primitives: []Primitive{
		Path{Segments: geom.MustParsePath("M 0,0 L 0.1,0.1")},
		Path{Segments: geom.MustParsePath("M 0,0 L 10,10"), Attrs: map[string]string{"fill": "red"}},
		Rect{Width: 0, Height: 3},
	}}
	q, dropped, err := a.Quantize(geom.Grid{Extent: 10, Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 2 || len(q.Primitives) != 1 {
		t.Fatalf("dropped = %d, kept = %d", dropped, len(q.Primitives))
	}
	if got := q.Primitives[0].Attributes()["fill"]; got != "red" {
		t.Errorf("attributes lost: %q", got)
	}
}

func TestErrDegenerate(t *testing.T) {
	_, err := Path{Segments: geom.Path{}}.Quantize(geom.Grid{Extent: 1, Size: 1})
	if !errors.Is(err, ErrDegenerate) || !errs.Recoverable(err) {
		t.Errorf("err = %v", err)
	}
}

func TestCell(t *testing.T) {
	c := Cell{Index: 3, Color: "ff0000"}
	if c.Key() != "ff0000" || c.Attributes()["fill"] != "#ff0000" || Stroked(c) {
		t.Errorf("cell = %+v", c)
	}
}

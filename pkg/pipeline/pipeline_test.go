package pipeline

import (
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/traitcodec/pkg/codec"
	"github.com/matzehuels/traitcodec/pkg/config"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	traitio "github.com/matzehuels/traitcodec/pkg/io"
)

var vectorCorpus = map[string]string{
	"00/001.svg": `<svg viewBox="0 0 255 255"><rect width="255" height="255" fill="white"/></svg>`,
	"01/000.svg": `<svg viewBox="0 0 255 255">
  <g><circle cx="100" cy="100" r="20" fill="#f00" stroke="#000"/></g>
  <path d="M 10,10 L 10.2,10.2"/>
</svg>`,
	"01/002.svg": `<svg viewBox="0 0 255 255"><path d="M 0,0 L 40,0 L 40,40 Z" fill="red"/></svg>`,
}

func writeCorpus(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for id, body := range files {
		p := filepath.Join(root, filepath.FromSlash(id))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func testConfig(t *testing.T, variant codec.Variant) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Variant = string(variant)
	cfg.TraitsDir = filepath.Join(dir, "traits")
	cfg.ComputedDir = filepath.Join(dir, "computed")
	cfg.PalettesFile = filepath.Join(dir, "palettes.json")
	return cfg
}

func quietRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestExecuteVector(t *testing.T) {
	cfg := testConfig(t, codec.VariantPath)
	writeCorpus(t, cfg.TraitsDir, vectorCorpus)

	res, err := quietRunner().Execute(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Document.Assets(); !cmp.Equal(got, []string{"00/001.svg", "01/000.svg", "01/002.svg"}) {
		t.Errorf("asset order = %v", got)
	}
	if diff := cmp.Diff([]int{0, 1}, res.Document.Layers()); diff != "" {
		t.Errorf("layers mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.Dropped != 1 || res.Stats.Assets != 3 || res.Stats.Fills != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if !res.Commit.Changed() {
		t.Error("first run should report a change")
	}

	doc, err := traitio.ImportDocument(cfg.PalettesFile)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(res.Document, doc); diff != "" {
		t.Errorf("written document differs (-run +disk):\n%s", diff)
	}
	for _, f := range res.Files {
		data, err := os.ReadFile(filepath.Join(cfg.ComputedDir, filepath.FromSlash(f.Path)))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != string(f.Data) {
			t.Errorf("%s differs on disk", f.Path)
		}
	}
}

func TestExecuteIdempotent(t *testing.T) {
	cfg := testConfig(t, codec.VariantPath)
	writeCorpus(t, cfg.TraitsDir, vectorCorpus)
	r := quietRunner()

	if _, err := r.Execute(context.Background(), cfg, Options{}); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(cfg.PalettesFile)
	if err != nil {
		t.Fatal(err)
	}

	cfg.Workers = 1
	res, err := r.Execute(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Commit.Changed() {
		t.Error("second run over the same corpus reported a change")
	}
	second, err := os.ReadFile(cfg.PalettesFile)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("documents differ:\n%s", diff)
	}
}

func TestExecuteFailureKeepsPreviousOutput(t *testing.T) {
	cfg := testConfig(t, codec.VariantPath)
	writeCorpus(t, cfg.TraitsDir, vectorCorpus)
	r := quietRunner()
	if _, err := r.Execute(context.Background(), cfg, Options{}); err != nil {
		t.Fatal(err)
	}
	before, err := traitio.FileDigest(cfg.PalettesFile)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		id   string
		body string
		code errs.Code
	}{
		{"malformed markup", "02/000.svg", `<svg><path d="M 0,0"`, errs.ErrCodeParse},
		{"naming", "misc/logo.svg", `<svg/>`, errs.ErrCodeNamingConvention},
		{"gradient fill", "02/001.svg", `<svg><path d="M 0,0 L 9,9" fill="url(#g)"/></svg>`, errs.ErrCodeUnsupportedPrimitive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(cfg.TraitsDir, filepath.FromSlash(tt.id))
			writeCorpus(t, cfg.TraitsDir, map[string]string{tt.id: tt.body})
			defer os.Remove(p)

			_, err := r.Execute(context.Background(), cfg, Options{})
			if !errs.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			after, err := traitio.FileDigest(cfg.PalettesFile)
			if err != nil {
				t.Fatal(err)
			}
			if after != before {
				t.Error("failed run modified the document")
			}
			if _, err := os.Stat(filepath.Join(cfg.ComputedDir, "01", "000.svg")); err != nil {
				t.Errorf("failed run disturbed the mirror tree: %v", err)
			}
		})
	}
}

func TestExecuteDryRun(t *testing.T) {
	cfg := testConfig(t, codec.VariantPath)
	writeCorpus(t, cfg.TraitsDir, vectorCorpus)
	res, err := quietRunner().Execute(context.Background(), cfg, Options{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 3 {
		t.Errorf("files = %d", len(res.Files))
	}
	if _, err := os.Stat(cfg.PalettesFile); !os.IsNotExist(err) {
		t.Errorf("dry run wrote the document: %v", err)
	}
}

func TestExecuteRect(t *testing.T) {
	cfg := testConfig(t, codec.VariantRect)
	writeCorpus(t, cfg.TraitsDir, map[string]string{
		"00/background.svg": `<svg><rect x="0" y="0" width="45" height="45" fill="#fff"/></svg>`,
		"01/hat.svg":        `<svg><rect x="1" y="2" width="3" height="4" fill="black"/><g><rect width="9" height="9"/></g></svg>`,
		"01/cap.svg":        `<svg><rect width="10" height="10" transform="matrix(2 0 0 2 5 5)" fill="red"/></svg>`,
	})
	res, err := quietRunner().Execute(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc, ok := res.Document.(*codec.RectDocument)
	if !ok {
		t.Fatalf("document is %T", res.Document)
	}
	want := &codec.RectDocument{
		Variant: codec.VariantRect,
		Fill:    [][]string{{"ffffff"}, {"000000", "ff0000"}},
		Trait: []codec.RectTrait{
			{Asset: "00/background.svg", Layer: 0, Item: "background", Rects: []codec.RectCode{{Width: 45, Height: 45}}},
			{Asset: "01/cap.svg", Layer: 1, Item: "cap", Rects: []codec.RectCode{{X: 10, Y: 10, Width: 10, Height: 10, Fill: 1}}},
			{Asset: "01/hat.svg", Layer: 1, Item: "hat", Rects: []codec.RectCode{{X: 1, Y: 2, Width: 3, Height: 4}}},
		},
		LayerIndexes: []int{0, 1},
		Item:         []string{"background", "cap", "hat"},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("rect document mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteRaster(t *testing.T) {
	cfg := testConfig(t, codec.VariantRaster)
	cfg.Raster.Grid = 2
	if err := os.MkdirAll(filepath.Join(cfg.TraitsDir, "00"), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i, c := range []color.NRGBA{{R: 255, A: 255}, {A: 255}, {A: 255}, {R: 255, A: 255}} {
		img.SetNRGBA(i%2, i/2, c)
	}
	if err := imaging.Save(img, filepath.Join(cfg.TraitsDir, "00", "00-000.png")); err != nil {
		t.Fatal(err)
	}

	res, err := quietRunner().Execute(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := res.Document.(*codec.RasterDocument)
	if diff := cmp.Diff([]string{"000000", "ff0000"}, doc.Fill); diff != "" {
		t.Errorf("fill mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 0, 0, 1}, doc.Trait[0].Indexes); diff != "" {
		t.Errorf("indexes mismatch (-want +got):\n%s", diff)
	}
	if len(res.Files) != 1 || res.Files[0].Path != "00/00-000.svg" {
		t.Errorf("files = %+v", res.Files)
	}
}

func TestDecode(t *testing.T) {
	cfg := testConfig(t, codec.VariantPath)
	writeCorpus(t, cfg.TraitsDir, vectorCorpus)
	r := quietRunner()
	res, err := r.Execute(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "decoded")
	if _, err := r.Decode(context.Background(), cfg, cfg.PalettesFile, out); err != nil {
		t.Fatal(err)
	}
	for _, f := range res.Files {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(f.Path)))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != string(f.Data) {
			t.Errorf("%s: decoded markup differs from the run's reconstruction", f.Path)
		}
	}
}

func TestExecuteInvalidConfig(t *testing.T) {
	cfg := testConfig(t, codec.VariantPath)
	cfg.Vector.Grid = 0
	if _, err := quietRunner().Execute(context.Background(), cfg, Options{}); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want %s", err, errs.ErrCodeInvalidConfig)
	}
}

// Package reconstruct renders encoded assets back to SVG markup.
//
// Rendering is a pure function of a [codec.Document] and an asset position:
// nothing from the source corpus is consulted. The output is the basis of the
// round-trip check, so it is byte-for-byte deterministic.
//
//   - path documents: one <path> per code on a 255 unit canvas, strokes at a
//     fixed width.
//   - rect documents: one <rect> per record on a 45 unit canvas.
//   - raster documents: one 1×1 <rect> per grid cell.
//
// Rect and raster output disable edge smoothing with shape-rendering.
package reconstruct

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/matzehuels/traitcodec/pkg/codec"
	"github.com/matzehuels/traitcodec/pkg/color"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%dpx" height="%dpx">`

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	vectorGrid  int
	vectorSize  int
	strokeWidth float64
	rectGrid    int
	rectSize    int
	cellSize    int
}

// WithVectorCanvas sets the path canvas: grid units and pixel size.
func WithVectorCanvas(grid, px int) Option {
	return func(r *renderer) { r.vectorGrid, r.vectorSize = grid, px }
}

// WithStrokeWidth sets the stroke width of path output.
func WithStrokeWidth(w float64) Option { return func(r *renderer) { r.strokeWidth = w } }

// WithRectCanvas sets the rect canvas: grid units and pixel size.
func WithRectCanvas(grid, px int) Option {
	return func(r *renderer) { r.rectGrid, r.rectSize = grid, px }
}

// WithCellSize sets the pixel size of one raster cell.
func WithCellSize(px int) Option { return func(r *renderer) { r.cellSize = px } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		vectorGrid:  255,
		vectorSize:  500,
		strokeWidth: 0.71,
		rectGrid:    45,
		rectSize:    450,
		cellSize:    10,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Asset renders the asset at position pos of doc.
func Asset(doc codec.Document, pos int, opts ...Option) ([]byte, error) {
	if pos < 0 || pos >= len(doc.Assets()) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "asset position %d out of range", pos)
	}
	r := newRenderer(opts...)
	switch d := doc.(type) {
	case *codec.VectorDocument:
		return r.vector(d, pos)
	case *codec.RectDocument:
		return r.rect(d, pos)
	case *codec.RasterDocument:
		return r.raster(d, pos)
	}
	return nil, errs.New(errs.ErrCodeInternal, "unknown document type %T", doc)
}

// File is one reconstructed asset.
type File struct {
	Path string // mirror path: the asset identifier with an .svg extension
	Data []byte
}

// All renders every asset of doc in document order.
func All(doc codec.Document, opts ...Option) ([]File, error) {
	ids := doc.Assets()
	out := make([]File, len(ids))
	for i, id := range ids {
		data, err := Asset(doc, i, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		out[i] = File{Path: MirrorPath(id), Data: data}
	}
	return out, nil
}

// MirrorPath maps an asset identifier to its reconstructed file name.
func MirrorPath(id string) string {
	return strings.TrimSuffix(id, path.Ext(id)) + ".svg"
}

func (r renderer) vector(d *codec.VectorDocument, pos int) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, svgOpen, r.vectorGrid, r.vectorGrid, r.vectorSize, r.vectorSize)
	for _, c := range d.Trait[pos].Codes {
		if c.D < 0 || c.D >= len(d.Geometry) || c.Fill < 0 || c.Fill >= len(d.Fill) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "code %+v out of range", c)
		}
		stroke := ""
		if c.Stroke == 1 {
			stroke = "#000"
		}
		fmt.Fprintf(&buf, `<path d="%s" fill="%s" stroke="%s" />`, d.Geometry[c.D], color.Attr(d.Fill[c.Fill]), stroke)
	}
	fmt.Fprintf(&buf, `<style>path{stroke-width:%s}</style></svg>`, strconv.FormatFloat(r.strokeWidth, 'f', -1, 64))
	return buf.Bytes(), nil
}

func (r renderer) rect(d *codec.RectDocument, pos int) ([]byte, error) {
	g := codec.LayerGroup(d.LayerIndexes, pos)
	if g >= len(d.Fill) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no fill palette for layer group %d", g)
	}
	pal := d.Fill[g]

	var buf bytes.Buffer
	fmt.Fprintf(&buf, svgOpen, r.rectGrid, r.rectGrid, r.rectSize, r.rectSize)
	for _, c := range d.Trait[pos].Rects {
		if c.Fill < 0 || c.Fill >= len(pal) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "rect fill %d out of range", c.Fill)
		}
		writeRect(&buf, c.X, c.Y, c.Width, c.Height, pal[c.Fill])
	}
	buf.WriteString(crispEdges + "</svg>")
	return buf.Bytes(), nil
}

func (r renderer) raster(d *codec.RasterDocument, pos int) ([]byte, error) {
	t := d.Trait[pos]
	w := d.Width
	h := (len(t.Indexes) + w - 1) / w
	if h < w {
		h = w
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, svgOpen, w, h, w*r.cellSize, h*r.cellSize)
	for i, x := range t.Indexes {
		if x < 0 || x >= len(t.Colors) || t.Colors[x] < 0 || t.Colors[x] >= len(d.Fill) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "cell %d color out of range", i)
		}
		writeRect(&buf, i%w, i/w, 1, 1, d.Fill[t.Colors[x]])
	}
	buf.WriteString(crispEdges + "</svg>")
	return buf.Bytes(), nil
}

const crispEdges = `<style>rect{shape-rendering:crispEdges}</style>`

func writeRect(buf *bytes.Buffer, x, y, w, h int, fill string) {
	fmt.Fprintf(buf, `<rect x='%d' y='%d' width='%d' height='%d' fill='%s' />`, x, y, w, h, color.Attr(fill))
}

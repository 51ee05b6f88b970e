package codec

import (
	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

// Validate checks that every code in doc resolves against its palettes and
// that layer boundaries are increasing positions. Reconstruction relies on
// this.
func Validate(doc Document) error {
	n := len(doc.Assets())
	prev := -1
	for _, i := range doc.Layers() {
		if i <= prev || i >= n {
			return errs.New(errs.ErrCodeInvalidInput, "layer index %d out of order or range", i)
		}
		prev = i
	}
	if n > 0 && (len(doc.Layers()) == 0 || doc.Layers()[0] != 0) {
		return errs.New(errs.ErrCodeInvalidInput, "layer indexes must start at 0")
	}

	switch d := doc.(type) {
	case *VectorDocument:
		for _, t := range d.Trait {
			for _, c := range t.Codes {
				if !inRange(c.D, len(d.Geometry)) || !inRange(c.Fill, len(d.Fill)) || c.Stroke < 0 || c.Stroke > 1 {
					return errs.New(errs.ErrCodeInvalidInput, "%s: code %+v out of range", t.Asset, c)
				}
			}
		}
	case *RectDocument:
		if len(d.Fill) != len(d.LayerIndexes) {
			return errs.New(errs.ErrCodeInvalidInput, "%d fill palettes for %d layers", len(d.Fill), len(d.LayerIndexes))
		}
		for i, t := range d.Trait {
			pal := d.Fill[LayerGroup(d.LayerIndexes, i)]
			for _, r := range t.Rects {
				if !inRange(r.Fill, len(pal)) {
					return errs.New(errs.ErrCodeInvalidInput, "%s: rect fill %d out of range", t.Asset, r.Fill)
				}
			}
		}
	case *RasterDocument:
		if d.Width <= 0 {
			return errs.New(errs.ErrCodeInvalidInput, "raster width must be positive")
		}
		for _, t := range d.Trait {
			for _, c := range t.Colors {
				if !inRange(c, len(d.Fill)) {
					return errs.New(errs.ErrCodeInvalidInput, "%s: color %d out of range", t.Asset, c)
				}
			}
			for _, x := range t.Indexes {
				if !inRange(x, len(t.Colors)) {
					return errs.New(errs.ErrCodeInvalidInput, "%s: index %d out of range", t.Asset, x)
				}
			}
		}
	}
	return nil
}

func inRange(i, n int) bool { return i >= 0 && i < n }

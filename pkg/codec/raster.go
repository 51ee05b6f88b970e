package codec

import (
	"slices"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/order"
	"github.com/matzehuels/traitcodec/pkg/palette"
	"github.com/matzehuels/traitcodec/pkg/trait"
)

// EncodeRaster encodes raster assets whose primitives are grid cells of a
// width-wide image. Cells must cover positions 0..n-1 with n a multiple of
// width.
func EncodeRaster(assets []trait.Asset, width int) (*RasterDocument, error) {
	if width <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "raster width must be positive, got %d", width)
	}
	entries, byID, err := sorted(assets, order.Numeric)
	if err != nil {
		return nil, err
	}

	// pass 1
	var fills palette.Builder
	cells := make([][]trait.Cell, len(entries))
	for i, e := range entries {
		cs, err := gridCells(e.ID, byID[e.ID].Primitives, width)
		if err != nil {
			return nil, err
		}
		for _, c := range cs {
			fills.Add(c.Color)
		}
		cells[i] = cs
	}
	global := fills.Build()

	// pass 2
	doc := &RasterDocument{
		Variant:      VariantRaster,
		Width:        width,
		Fill:         global.Values(),
		Trait:        make([]RasterTrait, len(entries)),
		LayerIndexes: order.LayerIndexes(entries),
	}
	for i, e := range entries {
		var b palette.Builder
		for _, c := range cells[i] {
			b.Add(c.Color)
		}
		local := b.Build()

		t := RasterTrait{
			Asset:   e.ID,
			Layer:   e.Layer,
			Item:    e.Item,
			Colors:  make([]int, local.Len()),
			Indexes: make([]int, len(cells[i])),
		}
		for j, v := range local.Values() {
			g, err := global.Lookup(v)
			if err != nil {
				return nil, err
			}
			t.Colors[j] = g
		}
		for j, c := range cells[i] {
			t.Indexes[j], _ = local.Index(c.Color)
		}
		doc.Trait[i] = t
	}
	return doc, nil
}

func gridCells(id string, prims []trait.Primitive, width int) ([]trait.Cell, error) {
	cells := make([]trait.Cell, 0, len(prims))
	for j, p := range prims {
		c, ok := p.(trait.Cell)
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidInput, "%s: primitive %d is %T, want a cell", id, j, p)
		}
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b trait.Cell) int { return a.Index - b.Index })
	for j, c := range cells {
		if c.Index != j {
			return nil, errs.New(errs.ErrCodeInvalidInput, "%s: cell %d missing or repeated", id, j)
		}
	}
	if len(cells)%width != 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s: %d cells do not fill rows of %d", id, len(cells), width)
	}
	return cells, nil
}

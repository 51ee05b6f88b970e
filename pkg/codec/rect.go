package codec

import (
	"fmt"

	"github.com/matzehuels/traitcodec/pkg/color"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/order"
	"github.com/matzehuels/traitcodec/pkg/palette"
	"github.com/matzehuels/traitcodec/pkg/trait"
)

// EncodeRect encodes rect assets. Items are ordered by label within a layer
// and each layer gets its own fill palette. colors may be nil.
func EncodeRect(assets []trait.Asset, colors *color.Normalizer) (*RectDocument, error) {
	colors = normalizer(colors)
	entries, byID, err := sorted(assets, order.Lexicographic)
	if err != nil {
		return nil, err
	}
	layerIndexes := order.LayerIndexes(entries)

	// pass 1
	builders := make([]palette.Builder, len(layerIndexes))
	fills := make([][]string, len(entries))
	for i, e := range entries {
		g := LayerGroup(layerIndexes, i)
		for j, p := range byID[e.ID].Primitives {
			if _, ok := p.(trait.Rect); !ok {
				return nil, errs.New(errs.ErrCodeInvalidInput, "%s: primitive %d is %T, want a rect", e.ID, j, p)
			}
			fill, err := colors.Fill(p.Attributes())
			if err != nil {
				return nil, fmt.Errorf("%s: rect %d: %w", e.ID, j, err)
			}
			builders[g].Add(fill)
			fills[i] = append(fills[i], fill)
		}
	}
	palettes := make([]*palette.Palette, len(builders))
	for g := range builders {
		palettes[g] = builders[g].Build()
	}

	// pass 2
	doc := &RectDocument{
		Variant:      VariantRect,
		Fill:         make([][]string, len(palettes)),
		Trait:        make([]RectTrait, len(entries)),
		LayerIndexes: layerIndexes,
		Item:         make([]string, len(entries)),
	}
	for g, p := range palettes {
		doc.Fill[g] = p.Values()
	}
	for i, e := range entries {
		pal := palettes[LayerGroup(layerIndexes, i)]
		prims := byID[e.ID].Primitives
		t := RectTrait{Asset: e.ID, Layer: e.Layer, Item: e.Label, Rects: make([]RectCode, len(prims))}
		for j, p := range prims {
			r := p.(trait.Rect)
			f, err := pal.Lookup(fills[i][j])
			if err != nil {
				return nil, err
			}
			t.Rects[j] = RectCode{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Fill: f}
		}
		doc.Trait[i] = t
		doc.Item[i] = e.Label
	}
	return doc, nil
}

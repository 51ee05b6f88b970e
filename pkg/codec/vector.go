package codec

import (
	"fmt"

	"github.com/matzehuels/traitcodec/pkg/color"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/order"
	"github.com/matzehuels/traitcodec/pkg/palette"
	"github.com/matzehuels/traitcodec/pkg/trait"
)

type vectorRow struct {
	key    string
	fill   string
	stroke int
}

// EncodeVector encodes quantized path assets. colors may be nil.
func EncodeVector(assets []trait.Asset, colors *color.Normalizer) (*VectorDocument, error) {
	colors = normalizer(colors)
	entries, byID, err := sorted(assets, order.Numeric)
	if err != nil {
		return nil, err
	}

	// pass 1
	var geometry, fills palette.Builder
	rows := make([][]vectorRow, len(entries))
	for i, e := range entries {
		a := byID[e.ID]
		rows[i] = make([]vectorRow, 0, len(a.Primitives))
		for j, p := range a.Primitives {
			if _, ok := p.(trait.Path); !ok {
				return nil, errs.New(errs.ErrCodeInvalidInput, "%s: primitive %d is %T, want a path", e.ID, j, p)
			}
			key := p.Key()
			if key == "" {
				continue
			}
			fill, err := colors.Fill(p.Attributes())
			if err != nil {
				return nil, fmt.Errorf("%s: primitive %d: %w", e.ID, j, err)
			}
			geometry.Add(key)
			fills.Add(fill)
			rows[i] = append(rows[i], vectorRow{key: key, fill: fill, stroke: boolInt(trait.Stroked(p))})
		}
	}
	geo, fill := geometry.Build(), fills.Build()

	// pass 2
	doc := &VectorDocument{
		Variant:      VariantPath,
		Geometry:     geo.Values(),
		Fill:         fill.Values(),
		Trait:        make([]VectorTrait, len(entries)),
		LayerIndexes: order.LayerIndexes(entries),
	}
	for i, e := range entries {
		t := VectorTrait{Asset: e.ID, Layer: e.Layer, Item: e.Item, Codes: make([]VectorCode, len(rows[i]))}
		for j, r := range rows[i] {
			d, err := geo.Lookup(r.key)
			if err != nil {
				return nil, err
			}
			f, err := fill.Lookup(r.fill)
			if err != nil {
				return nil, err
			}
			t.Codes[j] = VectorCode{D: d, Fill: f, Stroke: r.stroke}
		}
		doc.Trait[i] = t
	}
	return doc, nil
}

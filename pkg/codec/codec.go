// Package codec turns quantized trait assets into compact documents of
// palettes plus per-asset code lists.
//
// Every encoder is two passes over the whole corpus. The first pass collects
// the distinct geometry keys and fills into [palette.Builder] values; the
// second pass resolves each primitive against the frozen palettes. Assets are
// emitted in [order] output order, and palette codes depend only on the set
// of values observed, so shuffling the input never changes a document.
//
// Three variants exist:
//
//   - [EncodeVector]: global geometry and fill palettes, one {d, fill,
//     stroke} triple per path primitive.
//   - [EncodeRect]: rectangles stored verbatim, fills indexed through one
//     palette per layer.
//   - [EncodeRaster]: a global fill palette, per-asset color lists and a
//     row-major index array per grid cell.
//
// An asset whose primitives were all dropped as degenerate is still emitted,
// with no codes, so asset positions stay stable.
package codec

import (
	"github.com/matzehuels/traitcodec/pkg/color"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/order"
	"github.com/matzehuels/traitcodec/pkg/trait"
)

// sorted indexes assets by identifier and returns them in output order.
func sorted(assets []trait.Asset, mode order.Mode) ([]order.Entry, map[string]trait.Asset, error) {
	byID := make(map[string]trait.Asset, len(assets))
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		if _, dup := byID[a.ID]; dup {
			return nil, nil, errs.New(errs.ErrCodeInvalidInput, "asset %q appears twice", a.ID)
		}
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	entries, err := order.Sort(ids, mode)
	if err != nil {
		return nil, nil, err
	}
	return entries, byID, nil
}

func normalizer(n *color.Normalizer) *color.Normalizer {
	if n == nil {
		return color.New(nil)
	}
	return n
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

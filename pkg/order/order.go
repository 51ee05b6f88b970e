// Package order derives the layer/item position of each asset from its
// identifier and sorts a corpus into output order.
//
// The layer is the first run of digits in the identifier. The item is read
// from the file name: its leading run of digits, or the run after
// "<layer>-" when the file name repeats the layer number. File names without
// a numeric prefix fall back to the first run of digits after a '-' or '_'.
// For "01/000.svg" that is layer 1, item 0; for "03/03-012.svg" layer 3,
// item 12; for "05_hat/001_cap_2.svg" layer 5, item 1.
package order

import (
	"cmp"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

var (
	layerRe    = regexp.MustCompile(`\d+`)
	prefixRe   = regexp.MustCompile(`^(\d+)(?:[-_](\d+))?`)
	fallbackRe = regexp.MustCompile(`[-_](\d+)`)
)

// Mode selects how items are ordered within a layer.
type Mode int

const (
	// Numeric orders by item number (path and raster variants).
	Numeric Mode = iota
	// Lexicographic orders by item label (rect variant).
	Lexicographic
)

// Key is the ordering information carried by an identifier.
type Key struct {
	Layer   int
	Item    int // -1 when the identifier has no item token
	Label   string
	HasItem bool
}

// Entry is an identifier with its parsed key.
type Entry struct {
	ID string
	Key
}

// ParseIdentifier extracts the layer and item tokens from id. The label is
// the file name without extension.
func ParseIdentifier(id string) (Key, error) {
	if err := errs.ValidateIdentifier(id); err != nil {
		return Key{}, err
	}
	stem := strings.TrimSuffix(id, path.Ext(id))
	k := Key{Item: -1, Label: strings.TrimSuffix(path.Base(id), path.Ext(id))}

	loc := layerRe.FindStringIndex(stem)
	if loc == nil {
		return Key{}, errs.New(errs.ErrCodeNamingConvention, "%q has no layer number", id)
	}
	layer, err := strconv.Atoi(stem[loc[0]:loc[1]])
	if err != nil {
		return Key{}, errs.Wrap(errs.ErrCodeNamingConvention, err, "%q: layer number", id)
	}
	k.Layer = layer

	item, ok := itemToken(stem, loc, layer)
	if ok {
		n, err := strconv.Atoi(item)
		if err != nil {
			return Key{}, errs.Wrap(errs.ErrCodeNamingConvention, err, "%q: item number", id)
		}
		k.Item, k.HasItem = n, true
	}
	return k, nil
}

// itemToken returns the digits of the item in stem. layerLoc is the position
// of the layer token in stem.
func itemToken(stem string, layerLoc []int, layer int) (string, bool) {
	start := strings.LastIndex(stem, "/") + 1
	name := stem[start:]
	if layerLoc[0] >= start {
		// The file name carries the layer itself: only "<layer>-<item>" fits.
		m := prefixRe.FindStringSubmatch(stem[layerLoc[0]:])
		return m[2], m[2] != ""
	}
	if m := prefixRe.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n == layer && m[2] != "" {
			return m[2], true
		}
		return m[1], true
	}
	if m := fallbackRe.FindStringSubmatch(name); m != nil {
		return m[1], true
	}
	return "", false
}

// Sort parses every identifier and returns them in output order: ascending
// layer, then item by mode, then identifier. Numeric mode requires an item
// token on every identifier.
func Sort(ids []string, mode Mode) ([]Entry, error) {
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		k, err := ParseIdentifier(id)
		if err != nil {
			return nil, err
		}
		if mode == Numeric && !k.HasItem {
			return nil, errs.New(errs.ErrCodeNamingConvention, "%q has no item number", id)
		}
		entries = append(entries, Entry{ID: id, Key: k})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Layer, b.Layer); c != 0 {
			return c
		}
		var c int
		if mode == Lexicographic {
			c = strings.Compare(a.Label, b.Label)
		} else {
			c = cmp.Compare(a.Item, b.Item)
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return entries, nil
}

// LayerIndexes returns the position of the first entry of each layer.
// entries must be sorted.
func LayerIndexes(entries []Entry) []int {
	out := []int{}
	for i, e := range entries {
		if i == 0 || e.Layer != entries[i-1].Layer {
			out = append(out, i)
		}
	}
	return out
}

// Package palette assigns stable integer codes to distinct string values.
//
// Encoding is two passes. Pass one feeds every observed value to a [Builder];
// [Builder.Build] then freezes the distinct set into a [Palette] whose codes
// are positions in ascending lexicographic order. Codes therefore depend only
// on which values were seen, never on the order they were seen in.
package palette

import (
	"slices"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

// Builder collects distinct values. The zero value is ready to use. A Builder
// is not safe for concurrent use.
type Builder struct {
	seen map[string]struct{}
}

// Add records v.
func (b *Builder) Add(v string) {
	if b.seen == nil {
		b.seen = make(map[string]struct{})
	}
	b.seen[v] = struct{}{}
}

// Len returns the number of distinct values recorded so far.
func (b *Builder) Len() int { return len(b.seen) }

// Build returns the palette of everything recorded. The builder may keep
// being used; later additions do not affect the returned palette.
func (b *Builder) Build() *Palette {
	values := make([]string, 0, len(b.seen))
	for v := range b.seen {
		values = append(values, v)
	}
	slices.Sort(values)
	return FromSorted(values)
}

// Palette is an immutable, sorted set of distinct values.
type Palette struct {
	values []string
	index  map[string]int
}

// Of builds a palette directly from values, duplicates allowed.
func Of(values ...string) *Palette {
	var b Builder
	for _, v := range values {
		b.Add(v)
	}
	return b.Build()
}

// FromSorted wraps values that are already distinct and sorted, such as a
// palette read back from a document.
func FromSorted(values []string) *Palette {
	p := &Palette{values: values, index: make(map[string]int, len(values))}
	for i, v := range values {
		p.index[v] = i
	}
	return p
}

// Index returns the code of v.
func (p *Palette) Index(v string) (int, bool) {
	i, ok := p.index[v]
	return i, ok
}

// Lookup returns the code of v and fails with INTERNAL_ERROR when v was
// never added, which means pass one and pass two saw different corpora.
func (p *Palette) Lookup(v string) (int, error) {
	i, ok := p.index[v]
	if !ok {
		return 0, errs.New(errs.ErrCodeInternal, "value %q missing from palette", v)
	}
	return i, nil
}

// At returns the value with code i.
func (p *Palette) At(i int) (string, bool) {
	if i < 0 || i >= len(p.values) {
		return "", false
	}
	return p.values[i], true
}

// Len returns the number of values.
func (p *Palette) Len() int { return len(p.values) }

// Values returns a copy of the values in code order.
func (p *Palette) Values() []string { return slices.Clone(p.values) }

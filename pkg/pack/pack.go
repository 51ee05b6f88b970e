// Package pack serializes rect documents into the compact byte layout used
// for on-chain storage.
//
// A rect is one 32-bit word: x, y, width and height as 6-bit fields followed
// by an 8-bit fill index, most significant bits first. A trait is its rect
// words back to back. Traits of one layer form a characteristic and
// characteristics form a collection; both carry a table of big-endian 16-bit
// byte offsets so a reader can seek to element i without scanning:
//
//	characteristic: count(n+1) | offset[0..n] | trait[0] ... trait[n-1]
//	collection:     count(n)   | offset[0..n-1] | char[0] ... char[n-1]
//
// Offsets are measured from the start of the enclosing block.
package pack

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/traitcodec/pkg/codec"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

const (
	coordMax = 1<<6 - 1
	fillMax  = 1<<8 - 1
)

// Rect packs one rectangle into a 4-byte word.
func Rect(r codec.RectCode) ([4]byte, error) {
	var out [4]byte
	for _, f := range []struct {
		name string
		v    int
	}{{"x", r.X}, {"y", r.Y}, {"width", r.Width}, {"height", r.Height}} {
		if f.v < 0 || f.v > coordMax {
			return out, errs.New(errs.ErrCodeInvalidInput, "rect %s %d does not fit in 6 bits", f.name, f.v)
		}
	}
	if r.Fill < 0 || r.Fill > fillMax {
		return out, errs.New(errs.ErrCodeInvalidInput, "rect fill %d does not fit in 8 bits", r.Fill)
	}
	w := uint32(r.X)<<26 | uint32(r.Y)<<20 | uint32(r.Width)<<14 | uint32(r.Height)<<8 | uint32(r.Fill)
	binary.BigEndian.PutUint32(out[:], w)
	return out, nil
}

// Trait packs the rects of one asset.
func Trait(rects []codec.RectCode) ([]byte, error) {
	buf := make([]byte, 0, 4*len(rects))
	for i, r := range rects {
		w, err := Rect(r)
		if err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "rect %d", i)
		}
		buf = append(buf, w[:]...)
	}
	return buf, nil
}

// Characteristic frames the packed traits of one layer. The offset table
// has one more entry than there are traits; the last entry is the end of
// the block.
func Characteristic(traits [][]byte) ([]byte, error) {
	header := 2 + 2*(len(traits)+1)
	return frame(traits, len(traits)+1, header, true)
}

// Collection frames packed characteristics. Unlike [Characteristic], the
// offset table has no end entry.
func Collection(chars [][]byte) ([]byte, error) {
	header := 2 + 2*len(chars)
	return frame(chars, len(chars), header, false)
}

func frame(parts [][]byte, count, header int, withEnd bool) ([]byte, error) {
	total := header
	for _, p := range parts {
		total += len(p)
	}
	if count > math.MaxUint16 || total > math.MaxUint16 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "block of %d bytes exceeds 16-bit offsets", total)
	}

	buf := make([]byte, 0, total)
	buf = binary.BigEndian.AppendUint16(buf, uint16(count))
	off := header
	for _, p := range parts {
		buf = binary.BigEndian.AppendUint16(buf, uint16(off))
		off += len(p)
	}
	if withEnd {
		buf = binary.BigEndian.AppendUint16(buf, uint16(off))
	}
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return buf, nil
}

// Fills concatenates the 3-byte RGB value of every color of every layer
// palette, layer by layer.
func Fills(palettes [][]string) ([]byte, error) {
	var buf []byte
	for _, pal := range palettes {
		for _, hexColor := range pal {
			c, err := colorful.Hex("#" + hexColor)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "fill %q", hexColor)
			}
			r, g, b := c.RGB255()
			buf = append(buf, r, g, b)
		}
	}
	return buf, nil
}

// Storage is the packed form of a rect document, as hex strings.
type Storage struct {
	FillBytes    string `json:"fillBytes"`
	TraitBytes   string `json:"traitBytes"`
	LayerIndexes string `json:"layerIndexes"`
}

// Document packs a whole rect document. Each layer group becomes one
// characteristic. Layer boundaries are written as 16-bit words.
func Document(doc *codec.RectDocument) (*Storage, error) {
	if err := codec.Validate(doc); err != nil {
		return nil, err
	}

	var chars [][]byte
	for g, start := range doc.LayerIndexes {
		end := len(doc.Trait)
		if g+1 < len(doc.LayerIndexes) {
			end = doc.LayerIndexes[g+1]
		}
		traits := make([][]byte, 0, end-start)
		for _, t := range doc.Trait[start:end] {
			b, err := Trait(t.Rects)
			if err != nil {
				return nil, errs.Wrap(errs.GetCode(err), err, "%s", t.Asset)
			}
			traits = append(traits, b)
		}
		c, err := Characteristic(traits)
		if err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "layer %d", g)
		}
		chars = append(chars, c)
	}
	coll, err := Collection(chars)
	if err != nil {
		return nil, err
	}

	fills, err := Fills(doc.Fill)
	if err != nil {
		return nil, err
	}

	var layers []byte
	for _, i := range doc.LayerIndexes {
		if i > math.MaxUint16 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "layer index %d exceeds 16 bits", i)
		}
		layers = binary.BigEndian.AppendUint16(layers, uint16(i))
	}

	return &Storage{
		FillBytes:    Hex(fills),
		TraitBytes:   Hex(coll),
		LayerIndexes: Hex(layers),
	}, nil
}

// Hex formats b as a 0x-prefixed lowercase hex string.
func Hex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

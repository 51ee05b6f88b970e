package codec

import (
	"encoding/json"
	"fmt"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

// Variant names an encoding scheme.
type Variant string

const (
	VariantPath   Variant = "path"
	VariantRect   Variant = "rect"
	VariantRaster Variant = "raster"
)

// Variants lists every supported variant.
var Variants = []Variant{VariantPath, VariantRect, VariantRaster}

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", errs.New(errs.ErrCodeInvalidInput, "unknown variant %q (want path, rect or raster)", s)
}

// Document is an encoded corpus. Implementations are *VectorDocument,
// *RectDocument and *RasterDocument.
type Document interface {
	// Kind returns the variant that produced the document.
	Kind() Variant
	// Assets returns the asset identifiers in output order.
	Assets() []string
	// Layers returns the layer boundaries.
	Layers() []int
}

// VectorCode references one path primitive.
type VectorCode struct {
	D      int `json:"d"`
	Fill   int `json:"fill"`
	Stroke int `json:"stroke"` // 1 when the source element had a stroke attribute
}

// VectorTrait is one asset of a vector document.
type VectorTrait struct {
	Asset string       `json:"asset"`
	Layer int          `json:"layer"`
	Item  int          `json:"item"`
	Codes []VectorCode `json:"codes"`
}

// VectorDocument is the output of [EncodeVector].
type VectorDocument struct {
	Variant      Variant       `json:"variant"`
	Geometry     []string      `json:"geometry"`
	Fill         []string      `json:"fill"`
	Trait        []VectorTrait `json:"trait"`
	LayerIndexes []int         `json:"layerIndexes"`
}

// RectCode is one rectangle, stored verbatim except for its fill, which
// indexes the palette of the asset's layer.
type RectCode struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Fill   int `json:"fill"`
}

// RectTrait is one asset of a rect document.
type RectTrait struct {
	Asset string     `json:"asset"`
	Layer int        `json:"layer"`
	Item  string     `json:"item"`
	Rects []RectCode `json:"rects"`
}

// RectDocument is the output of [EncodeRect]. Fill holds one palette per
// layer, in layer order.
type RectDocument struct {
	Variant      Variant     `json:"variant"`
	Fill         [][]string  `json:"fill"`
	Trait        []RectTrait `json:"trait"`
	LayerIndexes []int       `json:"layerIndexes"`
	Item         []string    `json:"item"`
}

// RasterTrait is one asset of a raster document. Colors indexes the global
// fill palette; Indexes holds, per cell in row-major order, a position in
// Colors.
type RasterTrait struct {
	Asset   string `json:"asset"`
	Layer   int    `json:"layer"`
	Item    int    `json:"item"`
	Colors  []int  `json:"colors"`
	Indexes []int  `json:"indexes"`
}

// RasterDocument is the output of [EncodeRaster].
type RasterDocument struct {
	Variant      Variant       `json:"variant"`
	Width        int           `json:"width"`
	Fill         []string      `json:"fill"`
	Trait        []RasterTrait `json:"trait"`
	LayerIndexes []int         `json:"layerIndexes"`
}

func (*VectorDocument) Kind() Variant { return VariantPath }
func (*RectDocument) Kind() Variant   { return VariantRect }
func (*RasterDocument) Kind() Variant { return VariantRaster }

func (d *VectorDocument) Layers() []int { return d.LayerIndexes }
func (d *RectDocument) Layers() []int   { return d.LayerIndexes }
func (d *RasterDocument) Layers() []int { return d.LayerIndexes }

func (d *VectorDocument) Assets() []string {
	out := make([]string, len(d.Trait))
	for i, t := range d.Trait {
		out[i] = t.Asset
	}
	return out
}

func (d *RectDocument) Assets() []string {
	out := make([]string, len(d.Trait))
	for i, t := range d.Trait {
		out[i] = t.Asset
	}
	return out
}

func (d *RasterDocument) Assets() []string {
	out := make([]string, len(d.Trait))
	for i, t := range d.Trait {
		out[i] = t.Asset
	}
	return out
}

// LayerGroup returns the position of the layer containing the asset at
// position pos, given layer boundaries.
func LayerGroup(layerIndexes []int, pos int) int {
	g := 0
	for i, start := range layerIndexes {
		if start > pos {
			break
		}
		g = i
	}
	return g
}

// Unmarshal decodes a document of any variant.
func Unmarshal(data []byte) (Document, error) {
	var head struct {
		Variant Variant `json:"variant"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "decode document")
	}
	var doc Document
	switch head.Variant {
	case VariantPath:
		doc = &VectorDocument{}
	case VariantRect:
		doc = &RectDocument{}
	case VariantRaster:
		doc = &RasterDocument{}
	default:
		return nil, errs.New(errs.ErrCodeParse, "document has unknown variant %q", head.Variant)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "decode %s document", head.Variant)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Marshal encodes a document with two-space indentation and a trailing
// newline.
func Marshal(doc Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(b, '\n'), nil
}

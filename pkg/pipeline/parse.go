package pipeline

import (
	"fmt"
	"os"

	"github.com/matzehuels/traitcodec/pkg/codec"
	"github.com/matzehuels/traitcodec/pkg/color"
	"github.com/matzehuels/traitcodec/pkg/config"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/geom"
	"github.com/matzehuels/traitcodec/pkg/raster"
	"github.com/matzehuels/traitcodec/pkg/reconstruct"
	"github.com/matzehuels/traitcodec/pkg/source"
	"github.com/matzehuels/traitcodec/pkg/svg"
	"github.com/matzehuels/traitcodec/pkg/trait"
)

// Kinds returns the asset file kinds a variant reads.
func Kinds(v codec.Variant) []source.Kind {
	if v == codec.VariantRaster {
		return []source.Kind{source.Raster}
	}
	return []source.Kind{source.Vector}
}

// LoadAsset reads one asset and quantizes it for variant v. It returns the
// number of degenerate primitives that were dropped.
func LoadAsset(cfg config.Config, v codec.Variant, src source.Asset) (trait.Asset, int, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return trait.Asset{}, 0, fmt.Errorf("open %s: %w", src.Path, err)
	}
	defer f.Close()

	var a trait.Asset
	grid := geom.Grid{}
	switch v {
	case codec.VariantPath:
		def, err := cfg.ViewBox()
		if err != nil {
			return trait.Asset{}, 0, err
		}
		doc, err := svg.Parse(f, cfg.Vector.Convert, def)
		if err != nil {
			return trait.Asset{}, 0, fmt.Errorf("%s: %w", src.ID, err)
		}
		if a, err = trait.FromDocument(src.ID, doc); err != nil {
			return trait.Asset{}, 0, err
		}
		grid = geom.NewGrid(doc.ViewBox, float64(cfg.Vector.Grid))
	case codec.VariantRect:
		root, err := svg.Decode(f)
		if err != nil {
			return trait.Asset{}, 0, fmt.Errorf("%s: %w", src.ID, err)
		}
		if a, err = trait.RectsFromNode(src.ID, root); err != nil {
			return trait.Asset{}, 0, err
		}
	case codec.VariantRaster:
		if a, err = raster.Asset(src.ID, f, cfg.Raster.Grid); err != nil {
			return trait.Asset{}, 0, err
		}
	default:
		return trait.Asset{}, 0, errs.New(errs.ErrCodeInvalidInput, "unknown variant %q", v)
	}
	return a.Quantize(grid)
}

// Encode runs the encoder for variant v over the whole corpus.
func Encode(cfg config.Config, v codec.Variant, assets []trait.Asset) (codec.Document, error) {
	colors := color.New(cfg.Colors)
	switch v {
	case codec.VariantPath:
		return codec.EncodeVector(assets, colors)
	case codec.VariantRect:
		return codec.EncodeRect(assets, colors)
	case codec.VariantRaster:
		return codec.EncodeRaster(assets, cfg.Raster.Grid)
	}
	return nil, errs.New(errs.ErrCodeInvalidInput, "unknown variant %q", v)
}

// RenderOptions maps the canvas settings of cfg to reconstruction options.
func RenderOptions(cfg config.Config) []reconstruct.Option {
	return []reconstruct.Option{
		reconstruct.WithVectorCanvas(cfg.Vector.Grid, cfg.Vector.CanvasPx),
		reconstruct.WithStrokeWidth(cfg.Vector.StrokeWidth),
		reconstruct.WithRectCanvas(cfg.Rect.ViewBox, cfg.Rect.CanvasPx),
		reconstruct.WithCellSize(cfg.Raster.CellPx),
	}
}

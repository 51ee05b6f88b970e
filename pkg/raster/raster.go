// Package raster reads pixel-art trait assets.
//
// A raster asset is a small image that has already been downscaled so one
// pixel is one grid cell. [Cells] turns it into row-major grid cells for the
// raster encoder. [Downscale] is the pre-processing step that produces such
// images from full-size artwork by keeping every n-th pixel.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"

	tcolor "github.com/matzehuels/traitcodec/pkg/color"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/trait"
)

// Decode reads an image.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "decode image")
	}
	return img, nil
}

// Cells returns one cell per pixel in row-major order. The image must be
// exactly width pixels wide. Alpha is discarded.
func Cells(img image.Image, width int) ([]trait.Cell, error) {
	b := img.Bounds()
	if b.Dx() != width {
		return nil, errs.New(errs.ErrCodeInvalidInput, "image is %d pixels wide, grid is %d", b.Dx(), width)
	}
	n := imaging.Clone(img)
	cells := make([]trait.Cell, 0, b.Dx()*b.Dy())
	for y := 0; y < n.Rect.Dy(); y++ {
		for x := 0; x < n.Rect.Dx(); x++ {
			c := n.NRGBAAt(x, y)
			cells = append(cells, trait.Cell{
				Index: len(cells),
				Color: tcolor.FromColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}),
			})
		}
	}
	return cells, nil
}

// Asset decodes r and returns its cells as a trait asset.
func Asset(id string, r io.Reader, width int) (trait.Asset, error) {
	img, err := Decode(r)
	if err != nil {
		return trait.Asset{}, fmt.Errorf("%s: %w", id, err)
	}
	cells, err := Cells(img, width)
	if err != nil {
		return trait.Asset{}, fmt.Errorf("%s: %w", id, err)
	}
	prims := make([]trait.Primitive, len(cells))
	for i, c := range cells {
		prims[i] = c
	}
	return trait.Asset{ID: id, Primitives: prims}, nil
}

// Downscale keeps every scale-th pixel on both axes, starting at the top-left
// corner, and drops alpha.
func Downscale(img image.Image, scale int) (*image.NRGBA, error) {
	if scale <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "scale must be positive, got %d", scale)
	}
	src := imaging.Clone(img)
	w := (src.Rect.Dx() + scale - 1) / scale
	h := (src.Rect.Dy() + scale - 1) / scale
	dst := imaging.New(w, h, color.Black)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.NRGBAAt(x*scale, y*scale)
			c.A = 0xff
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst, nil
}

// DownscaleFile rewrites the image at in to out (in when out is empty).
func DownscaleFile(in, out string, scale int) error {
	img, err := imaging.Open(in)
	if err != nil {
		return errs.Wrap(errs.ErrCodeParse, err, "open %s", in)
	}
	small, err := Downscale(img, scale)
	if err != nil {
		return err
	}
	if out == "" {
		out = in
	}
	if err := imaging.Save(small, out); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	return nil
}

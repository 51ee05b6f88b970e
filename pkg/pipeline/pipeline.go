// Package pipeline runs the trait codec over a whole corpus.
//
// A run has five stages:
//
//  1. Discover: find assets under the traits root and check that every
//     identifier carries a layer token.
//  2. Parse: read, flatten and quantize each asset. Assets are independent,
//     so this stage runs on a bounded worker pool and stops at the first
//     error.
//  3. Encode: build the palettes and code lists. This is a barrier: it needs
//     every asset.
//  4. Reconstruct: render every asset back from the document alone.
//  5. Commit: replace the document and the mirror tree together.
//
// Nothing touches the disk before stage 5, so a failed run leaves the
// previous output in place.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, cfg, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Stats.Assets, result.Commit.Changed())
package pipeline

import (
	"time"

	"github.com/matzehuels/traitcodec/pkg/codec"
	"github.com/matzehuels/traitcodec/pkg/io"
	"github.com/matzehuels/traitcodec/pkg/reconstruct"
)

// Options adjusts a single run. Everything else comes from config.Config.
type Options struct {
	// DryRun stops after reconstruction; nothing is written.
	DryRun bool
}

// Result contains the outputs of a run.
type Result struct {
	Document codec.Document
	Files    []reconstruct.File
	Commit   io.CommitResult // zero on dry runs
	Stats    Stats
}

// Stats contains run statistics.
type Stats struct {
	Assets      int
	Primitives  int // primitives kept after quantization
	Dropped     int // degenerate primitives removed
	Geometry    int // geometry palette size (path variant)
	Fills       int // fill palette size, summed over layers for rects
	Layers      int
	Discover    time.Duration
	Parse       time.Duration
	Encode      time.Duration
	Reconstruct time.Duration
	Commit      time.Duration
}

// paletteSizes fills the palette fields of s from doc.
func (s *Stats) paletteSizes(doc codec.Document) {
	s.Layers = len(doc.Layers())
	switch d := doc.(type) {
	case *codec.VectorDocument:
		s.Geometry = len(d.Geometry)
		s.Fills = len(d.Fill)
	case *codec.RectDocument:
		for _, pal := range d.Fill {
			s.Fills += len(pal)
		}
	case *codec.RasterDocument:
		s.Fills = len(d.Fill)
	}
}

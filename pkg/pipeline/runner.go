package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/traitcodec/pkg/codec"
	"github.com/matzehuels/traitcodec/pkg/config"
	"github.com/matzehuels/traitcodec/pkg/io"
	"github.com/matzehuels/traitcodec/pkg/observability"
	"github.com/matzehuels/traitcodec/pkg/order"
	"github.com/matzehuels/traitcodec/pkg/reconstruct"
	"github.com/matzehuels/traitcodec/pkg/source"
	"github.com/matzehuels/traitcodec/pkg/trait"
)

// Runner executes codec runs. It holds no run state, so one Runner may
// serve several runs at once.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger means log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs discover → parse → encode → reconstruct → commit.
func (r *Runner) Execute(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	variant, err := codec.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Discover
	start := time.Now()
	hooks.OnStageStart(ctx, observability.StageDiscover, 0)
	srcs, err := r.Discover(ctx, cfg.TraitsDir, variant)
	result.Stats.Discover = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageDiscover, len(srcs), result.Stats.Discover, err)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	r.Logger.Info("discovered assets",
		"variant", variant,
		"root", cfg.TraitsDir,
		"assets", len(srcs))

	// Stage 2: Parse
	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageParse, len(srcs))
	assets, dropped, err := r.Load(ctx, cfg, variant, srcs)
	result.Stats.Parse = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageParse, len(assets), result.Stats.Parse, err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.Assets = len(assets)
	result.Stats.Dropped = dropped
	for _, a := range assets {
		result.Stats.Primitives += len(a.Primitives)
	}
	r.Logger.Info("parsed assets",
		"assets", result.Stats.Assets,
		"primitives", result.Stats.Primitives,
		"dropped", dropped,
		"duration", result.Stats.Parse)

	// Stage 3: Encode
	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageEncode, len(assets))
	doc, err := Encode(cfg, variant, assets)
	result.Stats.Encode = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageEncode, len(assets), result.Stats.Encode, err)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Document = doc
	result.Stats.paletteSizes(doc)
	r.Logger.Info("encoded corpus",
		"geometry", result.Stats.Geometry,
		"fills", result.Stats.Fills,
		"layers", result.Stats.Layers,
		"duration", result.Stats.Encode)

	// Stage 4: Reconstruct
	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageReconstruct, len(assets))
	files, err := reconstruct.All(doc, RenderOptions(cfg)...)
	result.Stats.Reconstruct = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageReconstruct, len(files), result.Stats.Reconstruct, err)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}
	result.Files = files
	r.Logger.Debug("reconstructed assets", "files", len(files), "duration", result.Stats.Reconstruct)

	if opts.DryRun {
		r.Logger.Info("dry run, nothing written")
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 5: Commit
	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageCommit, len(files))
	res, err := io.Commit(cfg.PalettesFile, doc, cfg.ComputedDir, files)
	result.Stats.Commit = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageCommit, len(files), result.Stats.Commit, err)
	if err != nil {
		observability.Commit().OnRollback(ctx, err)
		return nil, fmt.Errorf("commit: %w", err)
	}
	observability.Commit().OnCommit(ctx, res.Digest, res.Changed(), res.Files)
	result.Commit = res
	r.Logger.Info("committed output",
		"document", cfg.PalettesFile,
		"mirror", cfg.ComputedDir,
		"changed", res.Changed(),
		"duration", result.Stats.Commit)

	return result, nil
}

// Discover lists the assets of variant v under root and checks their
// identifiers, so a naming problem fails the run before any parsing.
func (r *Runner) Discover(ctx context.Context, root string, v codec.Variant) ([]source.Asset, error) {
	srcs, err := source.Discover(ctx, root, Kinds(v)...)
	if err != nil {
		return nil, err
	}
	for _, s := range srcs {
		if _, err := order.ParseIdentifier(s.ID); err != nil {
			return nil, err
		}
	}
	return srcs, nil
}

// Load parses and quantizes srcs on cfg.Workers goroutines (GOMAXPROCS when
// zero). The first failure cancels the remaining work. Assets come back in
// the order of srcs.
func (r *Runner) Load(ctx context.Context, cfg config.Config, v codec.Variant, srcs []source.Asset) ([]trait.Asset, int, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	assets := make([]trait.Asset, len(srcs))
	dropped := make([]int, len(srcs))
	hooks := observability.Pipeline()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range srcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, n, err := LoadAsset(cfg, v, src)
			if err != nil {
				return err
			}
			assets[i], dropped[i] = a, n
			hooks.OnAssetParsed(gctx, src.ID, len(a.Primitives), n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	total := 0
	for i, n := range dropped {
		if n > 0 {
			r.Logger.Debug("dropped degenerate primitives", "asset", srcs[i].ID, "count", n)
		}
		total += n
	}
	return assets, total, nil
}

// Decode regenerates the mirror tree of an existing document into outDir.
func (r *Runner) Decode(ctx context.Context, cfg config.Config, docPath, outDir string) (io.CommitResult, error) {
	doc, err := io.ImportDocument(docPath)
	if err != nil {
		return io.CommitResult{}, err
	}
	files, err := reconstruct.All(doc, RenderOptions(cfg)...)
	if err != nil {
		return io.CommitResult{}, fmt.Errorf("reconstruct: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return io.CommitResult{}, err
	}
	res, err := io.Commit("", doc, outDir, files)
	if err != nil {
		observability.Commit().OnRollback(ctx, err)
		return io.CommitResult{}, fmt.Errorf("commit: %w", err)
	}
	observability.Commit().OnCommit(ctx, res.Digest, false, res.Files)
	r.Logger.Info("decoded document",
		"variant", doc.Kind(),
		"assets", len(doc.Assets()),
		"out", outDir)
	return res, nil
}

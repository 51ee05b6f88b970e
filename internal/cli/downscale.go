package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/raster"
	"github.com/matzehuels/traitcodec/pkg/source"
)

// downscaleCommand creates the downscale command.
func (c *CLI) downscaleCommand() *cobra.Command {
	var (
		scale int
		out   string
	)

	cmd := &cobra.Command{
		Use:   "downscale <dir|file>",
		Short: "Shrink raster artwork to one pixel per grid cell",
		Long: `Downscale keeps every scale-th pixel of each PNG, starting at the top-left,
and drops transparency. Run it on upscaled pixel art before encoding with the
raster variant.

A directory is processed recursively. Without --out files are rewritten in
place; with --out the directory layout is mirrored under the output path.`,
		Example: `  traitcodec downscale --scale 40 art/
  traitcodec downscale --scale 10 art/hat.png --out data/traits/05_hat/001_cap.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDownscale(cmd, args[0], out, scale)
		},
	}

	cmd.Flags().IntVar(&scale, "scale", 40, "source pixels per output pixel")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory (default: in place)")
	return cmd
}

func (c *CLI) runDownscale(cmd *cobra.Command, in, out string, scale int) error {
	if scale <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "--scale must be positive, got %d", scale)
	}
	if !fileExists(in) {
		return errs.New(errs.ErrCodeFileNotFound, "%s does not exist", in)
	}
	info, err := os.Stat(in)
	if err != nil {
		return fmt.Errorf("stat %s: %w", in, err)
	}
	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx))

	if !info.IsDir() {
		if err := raster.DownscaleFile(in, out, scale); err != nil {
			return err
		}
		prog.done("downscaled " + in)
		return nil
	}

	srcs, err := source.Discover(ctx, in, source.Raster)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, s := range srcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := ""
			if out != "" {
				dst = filepath.Join(out, filepath.FromSlash(s.ID))
				if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
					return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
				}
			}
			return raster.DownscaleFile(s.Path, dst, scale)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("downscaled %d images", len(srcs)))
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/traitcodec/pkg/config"
	"github.com/matzehuels/traitcodec/pkg/pipeline"
)

// encodeOptions holds flag overrides for the encode command.
type encodeOptions struct {
	variant  string
	traits   string
	out      string
	palettes string
	workers  int
	dryRun   bool
	timings  bool
}

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	opts := encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a traits directory into a palettes document",
		Long: `Encode every asset under the traits directory into one document and rebuild
each asset from that document into the mirror tree.

Assets must be named <layer>/<item>.<ext> with numeric layer and item
prefixes (e.g. 03_eyes/012_wink.svg). The run fails before writing anything
if any asset cannot be read or encoded.`,
		Example: `  traitcodec encode
  traitcodec encode --variant rect --traits data/traits --palettes data/palettes.json
  traitcodec encode --dry-run -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyEncodeFlags(cmd, &cfg, opts)
			return c.runEncode(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.variant, "variant", "", "encoding variant: path, rect, raster")
	cmd.Flags().StringVar(&opts.traits, "traits", "", "traits directory")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "mirror tree directory, replaced wholesale with previous contents deleted")
	cmd.Flags().StringVar(&opts.palettes, "palettes", "", "output document")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parse workers (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "encode and reconstruct without writing")
	cmd.Flags().BoolVar(&opts.timings, "timings", false, "print per-stage durations")

	return cmd
}

// applyEncodeFlags overrides cfg with the flags the user actually set.
func applyEncodeFlags(cmd *cobra.Command, cfg *config.Config, opts encodeOptions) {
	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Variant = opts.variant
	}
	if flags.Changed("traits") {
		cfg.TraitsDir = opts.traits
	}
	if flags.Changed("out") {
		cfg.ComputedDir = opts.out
	}
	if flags.Changed("palettes") {
		cfg.PalettesFile = opts.palettes
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
}

func (c *CLI) runEncode(cmd *cobra.Command, cfg config.Config, opts encodeOptions) error {
	ctx := cmd.Context()

	spinner := newSpinnerWithContext(ctx, "Encoding "+cfg.TraitsDir+"...")
	spinner.Start()
	result, err := c.newRunner().Execute(ctx, cfg, pipeline.Options{DryRun: opts.dryRun})
	spinner.Stop()
	if err != nil {
		return err
	}

	if opts.dryRun {
		printInfo("Dry run: %s variant, nothing written", StyleHighlight.Render(cfg.Variant))
	} else {
		printSuccess("Encoded %s", StyleNumber.Render(cfg.Variant))
		printFile(cfg.PalettesFile)
		printFile(cfg.ComputedDir)
	}
	printRunStats(result.Stats, opts.dryRun || result.Commit.Changed())
	if result.Stats.Dropped > 0 {
		printWarning("%d degenerate primitives dropped (run with -v for details)", result.Stats.Dropped)
	}
	if opts.timings {
		printTimings(result.Stats)
	}
	return nil
}

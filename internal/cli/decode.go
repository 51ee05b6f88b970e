package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "decode [document]",
		Short: "Rebuild the mirror tree from a document",
		Long: `Decode reads an encoded document and writes one reconstructed file per asset.
Nothing but the document is consulted, so the output shows exactly what the
document preserves.

Without arguments the configured palettes file and mirror directory are used.`,
		Example: `  traitcodec decode
  traitcodec decode data/palettes.json --out /tmp/check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			docPath := cfg.PalettesFile
			if len(args) == 1 {
				docPath = args[0]
			}
			if out == "" {
				out = cfg.ComputedDir
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			res, err := c.newRunner().Decode(cmd.Context(), cfg, docPath, out)
			if err != nil {
				return err
			}
			prog.done("decoded " + docPath)
			printSuccess("Rebuilt %s assets", StyleNumber.Render(strconv.Itoa(res.Files)))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory, replaced wholesale with previous contents deleted (default: configured mirror directory)")
	return cmd
}

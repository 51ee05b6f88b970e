package cli

import (
	goio "io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/traitcodec/pkg/codec"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/io"
	"github.com/matzehuels/traitcodec/pkg/pack"
)

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pack [document]",
		Short: "Bit-pack a rect document for on-chain storage",
		Long: `Pack converts a rect-variant document into three hex strings: the packed
fill palettes, the packed trait collection and the layer boundaries.

Coordinates must fit in 6 bits and fill indexes in 8 bits.`,
		Example: `  traitcodec pack
  traitcodec pack data/palettes.json --out data/packed.json`,
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
			return runPack(cmd.OutOrStdout(), docPath, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func runPack(w goio.Writer, docPath, out string) error {
	doc, err := io.ImportDocument(docPath)
	if err != nil {
		return err
	}
	rd, ok := doc.(*codec.RectDocument)
	if !ok {
		return errs.New(errs.ErrCodeInvalidInput, "%s is a %s document, pack needs rect", docPath, doc.Kind())
	}
	storage, err := pack.Document(rd)
	if err != nil {
		return err
	}
	if out == "" {
		return io.WriteJSON(storage, w)
	}
	if err := io.ExportJSON(storage, out); err != nil {
		return err
	}
	printSuccess("Packed %s traits", StyleNumber.Render(strconv.Itoa(len(rd.Trait))))
	printFile(out)
	return nil
}

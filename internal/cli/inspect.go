package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/traitcodec/pkg/io"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "Browse the assets of an encoded document",
		Long: `Inspect lists every asset of a document with its layer, item, primitive
count and the number of distinct palette entries it references.

The list is interactive in a terminal; --plain prints the whole table once.`,
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
			doc, err := io.ImportDocument(docPath)
			if err != nil {
				return err
			}

			model := NewInspectModel(docPath, doc)
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(model.Title))
				fmt.Fprintln(cmd.OutOrStdout(), StyleDim.Render(model.Header))
				if len(model.Rows) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), renderTable(model.Rows, 0, len(model.Rows), -1))
				}
				return nil
			}
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table instead of starting the browser")
	return cmd
}

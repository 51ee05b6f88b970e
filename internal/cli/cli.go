// Package cli implements the traitcodec command-line interface.
//
// # Commands
//
//   - encode: run the codec over a traits directory
//   - decode: rebuild the mirror tree from a document alone
//   - pack: write the bit-packed storage form of a rect document
//   - downscale: shrink raster artwork to one pixel per grid cell
//   - inspect: browse an encoded document
//   - config: print the effective configuration
//
// # Configuration
//
// Every command reads traitcodec.toml from the working directory when it
// exists, or the file named by --config. Flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// also travels through the command context.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/traitcodec/pkg/buildinfo"
	"github.com/matzehuels/traitcodec/pkg/config"
	"github.com/matzehuels/traitcodec/pkg/observability"
	"github.com/matzehuels/traitcodec/pkg/pipeline"
)

const appName = "traitcodec"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Traitcodec compresses layered trait artwork into palettes and codes",
		Long: `Traitcodec turns a directory of per-trait vector or raster assets into one
compact document: corpus-wide palettes of distinct geometry and colors plus,
per asset, an ordered list of palette references. Every run also rebuilds each
asset from the document alone so the result can be checked by eye.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.SetPipelineHooks(observability.LogHooks{Logger: c.Logger})
				observability.SetCommitHooks(observability.LogHooks{Logger: c.Logger})
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default ./"+config.FileName+" if present)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.packCommand())
	root.AddCommand(c.downscaleCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the configuration file. An explicit --config must exist;
// the default file is optional.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath, true)
	}
	return config.Load(config.FileName, false)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// fileExists reports whether path names an existing file or directory.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

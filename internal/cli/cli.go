// Package cli implements the pangraph command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pangraph/pkg/buildinfo"
	"github.com/matzehuels/pangraph/pkg/cache"
	"github.com/matzehuels/pangraph/pkg/config"
	"github.com/matzehuels/pangraph/pkg/pipeline"
	"github.com/matzehuels/pangraph/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pangraph"

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
	// Config is loaded by the root command before any subcommand runs.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and default settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pangraph builds multi-resolution pangenome graphs",
		Long: `Pangraph aligns haplotype paths into a variation graph and summarizes it
into coarser zoom levels until the graph stops shrinking.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $PANGRAPH_CONFIG)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.alignCommand())
	root.AddCommand(c.haploCommand())
	root.AddCommand(c.summarizeCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use from the loaded config.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch := c.openCache(ctx, noCache)
	st, err := store.Open(ctx, c.Config.StoreOptions())
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	r := pipeline.NewRunner(ch, c.Config.Keyer(), st, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// openCache opens the configured cache. A failing cache never blocks a
// run: it is logged and replaced by the null cache.
func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	opts := c.Config.CacheOptions()
	opts.Prefix = appName + ":"
	ch, err := cache.Open(ctx, opts)
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", opts.Backend, "error", err)
		return cache.NewNullCache()
	}
	return ch
}

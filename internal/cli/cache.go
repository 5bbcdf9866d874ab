package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pangraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the graph document cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached graph documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Backend != cache.BackendFile {
				printWarning("Cache backend %q cannot be cleared from the CLI", c.Config.Cache.Backend)
				return nil
			}
			dir, err := cacheDir(c.Config.Cache.Dir)
			if err != nil {
				return err
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}

			count, err := fc.Clear()
			if err != nil {
				printError("Cleared %d entries before failing", count)
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(c.Config.Cache.Dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}

// cacheDir returns the configured directory or the per-user default
// (~/.cache/pangraph on Linux).
func cacheDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return cache.DefaultDir()
}

package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pangraph/pkg/config"
)

// setup runs before every subcommand. It loads the config file, applies
// the log level and attaches the logger to the command context. At debug
// level pipeline events are logged as well.
//
// Precedence for the log level:
//   - --verbose (-v): debug
//   - log.level from the config file or PANGRAPH_LOG_LEVEL
//   - info
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = LogInfo
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	if level == LogDebug {
		registerDebugHooks(c.Logger)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	pgio "github.com/matzehuels/pangraph/pkg/io"
	"github.com/matzehuels/pangraph/pkg/store"
	"github.com/matzehuels/pangraph/pkg/summarize"
)

type summarizeOpts struct {
	cutoff    int
	maxLevels int
	output    string
	save      bool
}

// summarizeCommand creates the summarize command. It continues
// summarization of a graph document written by align --graph-out.
func (c *CLI) summarizeCommand() *cobra.Command {
	var opts summarizeOpts

	cmd := &cobra.Command{
		Use:   "summarize <graph.json>",
		Short: "Add summary levels to a saved graph document",
		Long: `Summarize restores a graph document and adds levels on top of its highest
zoom until the graph stops shrinking or --max-levels new levels exist.

Examples:
  pangraph summarize graph.json --cutoff 2 -o graph.json
  pangraph summarize graph.json --max-levels 1 --save`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSummarize(cmd, &opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.cutoff, "cutoff", 0, "neglect nodes carried by at most this many specimens (0 disables)")
	cmd.Flags().IntVar(&opts.maxLevels, "max-levels", 0, "maximum number of new levels")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "graph document output (stdout if empty)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the sealed levels in the configured store")

	return cmd
}

func (c *CLI) runSummarize(cmd *cobra.Command, opts *summarizeOpts, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cutoff, maxLevels := c.Config.Summarize.Cutoff, c.Config.Summarize.MaxLevels
	if cmd.Flags().Changed("cutoff") {
		cutoff = opts.cutoff
	}
	if cmd.Flags().Changed("max-levels") {
		maxLevels = opts.maxLevels
	}

	g, err := pgio.ImportGraph(path)
	if err != nil {
		return err
	}
	from := g.HighestZoom()

	st := startStage(logger, "Summarized")
	stats, runErr := summarize.New(cutoff, maxLevels, logger).Run(ctx, g)
	if err := g.Seal(g.HighestZoom()); err != nil {
		return err
	}
	if runErr != nil {
		// Levels sealed before the failure are still written out.
		st.stopped(g, runErr)
		ctx = context.WithoutCancel(ctx)
	} else {
		st.done(g)
	}

	saved := 0
	if opts.save {
		st, err := store.Open(ctx, c.Config.StoreOptions())
		if err != nil {
			return err
		}
		defer st.Close(context.WithoutCancel(ctx))
		if saved, err = store.SaveGraph(ctx, st, g); err != nil {
			return err
		}
	}

	if opts.output == "" {
		out = os.Stderr
		defer func() { out = os.Stdout }()
		if err := pgio.WriteGraph(os.Stdout, g); err != nil {
			return err
		}
	} else if err := pgio.ExportGraph(g, opts.output); err != nil {
		return err
	}

	printSuccess("Graph %s: zoom %d → %d", StyleValue.Render(g.ID), from, g.HighestZoom())
	printPasses(stats)
	if saved > 0 {
		printDetail("Stored %d levels (%s)", saved, c.Config.Store.Backend)
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return runErr
}

package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pangraph/pkg/config"
	"github.com/matzehuels/pangraph/pkg/errors"
	pgio "github.com/matzehuels/pangraph/pkg/io"
	"github.com/matzehuels/pangraph/pkg/pipeline"
)

// buildOpts holds the flags shared by the align and haplo commands.
// Flags left unset fall back to the loaded config.
type buildOpts struct {
	name      string
	workers   int
	blockSize int
	cutoff    int
	maxLevels int
	zoom      int    // exported level, -1 for the highest
	output    string // level export, stdout if empty
	graphOut  string // full graph document for later summarize runs
	noCache   bool
	refresh   bool
}

func (o *buildOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.name, "name", "n", "", "graph name (overrides the input)")
	cmd.Flags().IntVar(&o.cutoff, "cutoff", 0, "neglect nodes carried by at most this many specimens (0 disables)")
	cmd.Flags().IntVar(&o.maxLevels, "max-levels", 0, "maximum number of summary levels")
	cmd.Flags().IntVarP(&o.zoom, "zoom", "z", -1, "zoom level to export (-1 for the highest)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "level export file (stdout if empty)")
	cmd.Flags().StringVar(&o.graphOut, "graph-out", "", "write the full graph document to this file")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass the cache lookup")
}

// pipelineOptions merges the flags over cfg.
func (o *buildOpts) pipelineOptions(cmd *cobra.Command, cfg config.Config, mode string, input []byte) pipeline.Options {
	opts := pipeline.Options{
		Mode:      mode,
		Input:     input,
		Name:      o.name,
		Workers:   cfg.Align.Workers,
		BlockSize: cfg.Summarize.BlockSize,
		Cutoff:    cfg.Summarize.Cutoff,
		MaxLevels: cfg.Summarize.MaxLevels,
		Refresh:   o.refresh,
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		opts.Workers = o.workers
	}
	if flags.Changed("block-size") {
		opts.BlockSize = o.blockSize
	}
	if flags.Changed("cutoff") {
		opts.Cutoff = o.cutoff
	}
	if flags.Changed("max-levels") {
		opts.MaxLevels = o.maxLevels
	}
	return opts
}

// alignCommand creates the align command.
func (c *CLI) alignCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "align <paths.json>",
		Short: "Align paths into a variation graph and summarize it",
		Long: `Align reads a JSON path document, aligns the paths into a zoom-0 graph and
adds summary levels until the graph stops shrinking.

Examples:
  pangraph align paths.json -o top.json
  pangraph align paths.json --cutoff 0 --zoom 0
  pangraph align paths.json --graph-out graph.json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, &opts, pipeline.ModeAlign, args[0])
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel alignment trials (0 for all CPUs)")

	return cmd
}

// haploCommand creates the haplo command.
func (c *CLI) haploCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "haplo <alleles.txt>",
		Short: "Build a haplotype block graph from an allele matrix",
		Long: `Haplo reads a whitespace-separated allele matrix (one row per locus, one
column per individual), cuts it into fixed-width signature windows and
summarizes the resulting graph.

Examples:
  pangraph haplo alleles.txt -o blocks.json
  pangraph haplo alleles.txt --block-size 50`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("txt", "tsv"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, &opts, pipeline.ModeHaplo, args[0])
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.blockSize, "block-size", "b", 0, "loci per signature window")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, opts *buildOpts, mode, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	input, err := readInput(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close(context.WithoutCancel(ctx))

	st := startStage(logger, "Built")
	res, runErr := runner.Execute(ctx, opts.pipelineOptions(cmd, c.Config, mode, input))
	if res == nil {
		return runErr
	}
	if runErr != nil {
		st.stopped(res.Graph, runErr)
		ctx = context.WithoutCancel(ctx)
	} else {
		st.done(res.Graph)
	}

	zoom := opts.zoom
	if zoom < 0 {
		zoom = res.Graph.HighestZoom()
	}
	data, err := runner.ExportLevel(ctx, res, zoom)
	if err != nil {
		return err
	}

	if opts.graphOut != "" {
		if err := pgio.ExportGraph(res.Graph, opts.graphOut); err != nil {
			return err
		}
	}

	if opts.output == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
		return runErr
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}

	printSuccess("Graph %s", StyleValue.Render(res.Graph.ID))
	printStats(res.Stats.Paths, res.Stats.Nodes, res.Stats.Levels, res.CacheHit)
	if len(res.Levels) > 0 {
		printPasses(res.Levels)
	} else {
		printLevels(res.Graph)
	}
	if res.Saved > 0 {
		printDetail("Stored %d levels (%s)", res.Saved, c.Config.Store.Backend)
	}
	printFile(opts.output)
	if opts.graphOut != "" {
		printFile(opts.graphOut)
	}
	return runErr
}

// readInput reads a whole input file; "-" reads stdin.
func readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "input %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return data, nil
}

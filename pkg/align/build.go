package align

import (
	"context"
	"time"

	"github.com/matzehuels/pangraph/pkg/graph"
	"github.com/matzehuels/pangraph/pkg/observability"
)

// Options configures [Build].
type Options struct {
	// Name is the graph name, also used to name unnamed nodes.
	Name string
	// Table maps node identities to sequences for steps without one.
	Table map[string]string
	// Workers bounds the parallel primary trials. Zero means GOMAXPROCS.
	Workers int
}

// Result describes how a graph was aligned.
type Result struct {
	Primary          int
	PrimaryAccession string
	Duplicates       int
	Profile          Profile
	Slices           []graph.Slice
	// NodeOrder is a topological order of the input node identities once
	// FeedbackArcs are dropped.
	NodeOrder    []string
	FeedbackArcs []Arc
}

// Build validates inputs, searches the primary path with the fewest
// duplicates, slices the resulting profile and returns the level-0 graph
// built from those slices. Level 0 is left open. Malformed input is
// rejected before any graph is created.
func Build(ctx context.Context, inputs []Input, opts Options) (*graph.Graph, *Result, error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnAlignStart(ctx, len(inputs))

	g, res, err := build(ctx, inputs, opts)
	slices, dups := 0, 0
	if res != nil {
		slices, dups = len(res.Slices), res.Duplicates
	}
	hooks.OnAlignComplete(ctx, len(inputs), slices, dups, time.Since(start), err)
	return g, res, err
}

func build(ctx context.Context, inputs []Input, opts Options) (*graph.Graph, *Result, error) {
	if err := Validate(inputs, opts.Table); err != nil {
		return nil, nil, err
	}
	name := opts.Name
	if name == "" {
		name = "graph"
	}
	resolved := resolve(inputs, opts.Table)

	trial, err := SearchMinimizingReplications(ctx, resolved, opts.Workers)
	if err != nil {
		return nil, nil, err
	}
	res := &Result{
		Primary:    trial.Primary,
		Duplicates: trial.Duplicates,
		Profile:    trial.Profile,
		Slices:     ToSlices(trial.Profile, Accessions(resolved)),
	}
	if trial.Primary >= 0 {
		res.PrimaryAccession = resolved[trial.Primary].Accession
	}
	res.NodeOrder, res.FeedbackArcs = NodeOrder(resolved)

	g, err := graph.FromSlices(name, res.Slices)
	if err != nil {
		return nil, nil, err
	}
	return g, res, nil
}

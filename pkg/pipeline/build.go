package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/pangraph/pkg/align"
	"github.com/matzehuels/pangraph/pkg/graph"
	pgio "github.com/matzehuels/pangraph/pkg/io"
	"github.com/matzehuels/pangraph/pkg/signature"
)

// Build decodes opts.Input and creates level 0. The align result is nil in
// haplo mode. opts must have been validated.
func Build(ctx context.Context, opts Options) (*graph.Graph, *align.Result, error) {
	switch opts.Mode {
	case ModeHaplo:
		individuals, err := signature.ReadAlleles(bytes.NewReader(opts.Input))
		if err != nil {
			return nil, nil, err
		}
		name := opts.Name
		if name == "" {
			name = "haplo"
		}
		opts.Logger.Debug("read allele matrix", "individuals", len(individuals), "block_size", opts.BlockSize)
		g, err := signature.Build(name, individuals, opts.BlockSize)
		return g, nil, err
	default:
		pf, err := pgio.ReadPaths(bytes.NewReader(opts.Input))
		if err != nil {
			return nil, nil, err
		}
		name := opts.Name
		if name == "" {
			name = pf.Name
		}
		opts.Logger.Debug("read paths", "paths", len(pf.Paths), "table", len(pf.Nodes))
		g, res, err := align.Build(ctx, pf.Paths, align.Options{Name: name, Table: pf.Nodes, Workers: opts.Workers})
		if err != nil {
			return nil, nil, err
		}
		if len(res.FeedbackArcs) > 0 {
			opts.Logger.Warn("input node order has cycles",
				"feedback_arcs", len(res.FeedbackArcs),
				"first", res.FeedbackArcs[0].From+"->"+res.FeedbackArcs[0].To,
				"ordered_nodes", len(res.NodeOrder))
		}
		return g, res, nil
	}
}

// Package pkg provides the core libraries for pangraph.
//
// # Overview
//
// Pangraph turns a set of haplotype paths into a multi-resolution variation
// graph. Level 0 holds the aligned input; every further zoom level
// summarizes the one below it until the graph stops shrinking. The pkg
// directory is organized into three areas:
//
//  1. Domain: [graph] (node arena, levels, snapshots), [align] (DAGify
//     alignment), [summarize] (merge, neglect and split passes) and
//     [signature] (allele-matrix windows)
//  2. Infrastructure: [io] (JSON ingest and export), [store] (sealed level
//     persistence), [cache] (graph document cache), [config] and
//     [observability]
//  3. Orchestration: [pipeline] (build → summarize → persist)
//
// # Architecture
//
// The typical data flow through pangraph:
//
//	Path document / allele matrix
//	         ↓
//	    [align] or [signature] (zoom 0)
//	         ↓
//	    [summarize] (zoom 1..n)
//	         ↓
//	    [store] / [cache] / [io] export
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/pangraph/pkg/align"
//	    pgio "github.com/matzehuels/pangraph/pkg/io"
//	    "github.com/matzehuels/pangraph/pkg/summarize"
//	)
//
//	pf, _ := pgio.ImportPaths("paths.json")
//	g, _, _ := align.Build(context.Background(), pf.Paths, align.Options{Table: pf.Nodes})
//	summarize.New(summarize.FilterThreshold, 0, nil).Run(context.Background(), g)
//	pgio.WriteLevel(os.Stdout, g, g.HighestZoom())
package pkg

package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

type graphDoc struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Levels []*graph.Snapshot `json:"levels"`
}

type sliceDoc struct {
	Zoom   int     `json:"zoom"`
	Slices []slice `json:"slices"`
}

type slice struct {
	Nodes []sliceNode `json:"nodes"`
}

type sliceNode struct {
	Name  string                  `json:"name,omitempty"`
	Seq   string                  `json:"seq"`
	Paths map[string]graph.Strand `json:"paths"`
}

// WriteSlices encodes the slices of one level as JSON and writes them to w.
// Alternatives with an empty sequence mark deletions.
func WriteSlices(w io.Writer, zoom int, slices []graph.Slice) error {
	out := sliceDoc{Zoom: zoom, Slices: make([]slice, len(slices))}
	for i, sl := range slices {
		nodes := make([]sliceNode, len(sl.Nodes))
		for j, n := range sl.Nodes {
			nodes[j] = sliceNode{Name: n.Name, Seq: n.Seq, Paths: n.Paths}
		}
		out.Slices[i] = slice{Nodes: nodes}
	}
	return encode(w, out)
}

// WriteLevel writes the slices of the level at zoom of g.
func WriteLevel(w io.Writer, g *graph.Graph, zoom int) error {
	slices, err := g.Slices(zoom)
	if err != nil {
		return err
	}
	return WriteSlices(w, zoom, slices)
}

// WriteSnapshot encodes one level snapshot.
func WriteSnapshot(w io.Writer, snap *graph.Snapshot) error {
	return encode(w, snap)
}

// WriteGraph encodes every level of g. The output can be re-imported with
// [ReadGraph].
func WriteGraph(w io.Writer, g *graph.Graph) error {
	doc := graphDoc{ID: g.ID, Name: g.Name}
	for _, lvl := range g.Levels() {
		snap, err := g.Snapshot(lvl.Zoom)
		if err != nil {
			return err
		}
		doc.Levels = append(doc.Levels, snap)
	}
	return encode(w, doc)
}

// ExportGraph writes g to a JSON file at path.
func ExportGraph(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteGraph(f, g)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

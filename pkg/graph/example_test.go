package graph_test

import (
	"fmt"

	"github.com/matzehuels/pangraph/pkg/graph"
)

func ExampleFromSlices() {
	g, err := graph.FromSlices("chr1", []graph.Slice{
		graph.NewSlice(graph.NewSliceNode("CAAATAAG", "x", "y", "z")),
		graph.NewSlice(graph.NewSliceNode("A", "x", "y"), graph.NewSliceNode("G", "z")),
		graph.NewSlice(graph.NewSliceNode("G", "x", "y", "z")),
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	slices, _ := g.Slices(0)
	for _, s := range slices {
		fmt.Println(s)
	}
	// Output:
	// {"CAAATAAG":{x,y,z}}
	// {"A":{x,y}, "G":{z}}
	// {"G":{x,y,z}}
}

func ExampleGraph_OpenLevel() {
	g, _ := graph.FromSlices("chr1", []graph.Slice{
		graph.NewSlice(graph.NewSliceNode("ACGT", "a", "b")),
		graph.NewSlice(graph.NewSliceNode("T", "a"), graph.NewSliceNode("C", "b")),
	})

	lvl, err := g.OpenLevel()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	base, _ := g.Level(0)
	fmt.Println("zoom:", lvl.Zoom, lvl.State)
	fmt.Println("level 0:", base.State)
	fmt.Println("nodes:", lvl.NodeCount())
	// Output:
	// zoom: 1 open
	// level 0: sealed
	// nodes: 3
}

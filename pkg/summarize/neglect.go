package summarize

import (
	"github.com/matzehuels/pangraph/pkg/graph"
)

// FilterThreshold is the default neglect cutoff.
const FilterThreshold = 4

// NeglectNodes removes every node carried by at most cutoff specimens from
// the level and returns how many were removed. Their traversals are
// deleted outright and the transitions neighbors had into them are moved
// to Nothing. A cutoff below 1 leaves the level untouched.
func NeglectNodes(g *graph.Graph, zoom, cutoff int) (int, error) {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return 0, err
	}
	if cutoff < 1 {
		return 0, nil
	}

	var minor []*graph.Node
	for _, n := range g.ActiveNodes(zoom) {
		if n.Len() <= cutoff {
			minor = append(minor, n)
		}
	}
	for _, n := range minor {
		for _, d := range graph.Directions {
			for _, id := range n.RealNeighbors(d) {
				if !lvl.Has(id) {
					continue
				}
				nb, _ := g.Node(id)
				back := nb.Stream(d.Opposite())
				if w, ok := back[graph.Real(n.ID)]; ok {
					delete(back, graph.Real(n.ID))
					back[graph.Nothing] += w
				}
			}
		}
		kept := n.Specimens.Clone()
		if _, err := g.DeleteTraversals(zoom, n.ID, kept); err != nil {
			return 0, err
		}
		if err := retire(g, n, graph.NoNode, kept); err != nil {
			return 0, err
		}
	}
	return len(minor), nil
}

package summarize

import (
	"maps"

	"github.com/matzehuels/pangraph/pkg/graph"
)

// retire removes n from the active set of its level, links it to by and
// restores the specimen set it had before its traversals were moved, so
// provenance stays queryable on the inactive node.
func retire(g *graph.Graph, n *graph.Node, by graph.NodeID, specimens graph.SpecimenSet) error {
	if err := g.Deactivate(n.Zoom, n.ID, by); err != nil {
		return err
	}
	n.Specimens = specimens
	return nil
}

// rekey moves the weight stored under from to the key to.
func rekey(stream map[graph.Neighbor]int, from, to graph.NodeID) {
	w, ok := stream[graph.Real(from)]
	if !ok {
		return
	}
	delete(stream, graph.Real(from))
	stream[graph.Real(to)] += w
}

func cloneStream(m map[graph.Neighbor]int) map[graph.Neighbor]int {
	out := maps.Clone(m)
	if out == nil {
		out = make(map[graph.Neighbor]int)
	}
	return out
}

// followedBy reports whether every path of a's specimens visits b right
// after each visit of a.
func followedBy(lvl *graph.Level, a, b *graph.Node) bool {
	for s := range a.Specimens {
		p, ok := lvl.Path(s)
		if !ok {
			return false
		}
		for i := 0; i < p.Len(); i++ {
			if p.At(i).Node != a.ID {
				continue
			}
			if p.Neighbor(i, graph.Downstream) != graph.Real(b.ID) {
				return false
			}
		}
	}
	return true
}

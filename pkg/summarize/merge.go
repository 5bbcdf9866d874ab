package summarize

import (
	"github.com/matzehuels/pangraph/pkg/graph"
)

// SimpleMerge collapses chains at the given level and returns the number
// of merges performed.
//
// A node A merges with B when A's only downstream neighbor is the real node
// B and both carry the same number of specimens. The merged node M spans
// both, concatenates their sequences, takes A's upstream and B's downstream
// transitions and replaces A in every path; the B traversal that followed
// is dropped. A and B leave the level with SummarizedBy set to M. M is
// queued again, so a whole chain collapses in one call.
func SimpleMerge(g *graph.Graph, zoom int) (int, error) {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return 0, err
	}
	queue := lvl.Nodes()
	merged := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if !lvl.Has(id) {
			continue
		}
		a, _ := g.Node(id)
		b := mergePartner(g, lvl, a)
		if b == nil {
			continue
		}
		m, err := merge(g, lvl, a, b)
		if err != nil {
			return merged, err
		}
		merged++
		queue = append(queue, m.ID)
		queue = append(queue, m.RealNeighbors(graph.Upstream)...)
	}
	return merged, nil
}

func mergePartner(g *graph.Graph, lvl *graph.Level, a *graph.Node) *graph.Node {
	if len(a.Downstream) != 1 {
		return nil
	}
	var next graph.Neighbor
	for k := range a.Downstream {
		next = k
	}
	bid, ok := next.Node()
	if !ok || bid == a.ID || !lvl.Has(bid) {
		return nil
	}
	b, _ := g.Node(bid)
	if a.Len() != b.Len() {
		return nil
	}
	if _, loop := a.Upstream[graph.Real(b.ID)]; loop {
		return nil
	}
	if !followedBy(lvl, a, b) {
		return nil
	}
	return b
}

func merge(g *graph.Graph, lvl *graph.Level, a, b *graph.Node) (*graph.Node, error) {
	aSpec, bSpec := a.Specimens.Clone(), b.Specimens.Clone()

	m, err := g.CreateNode(lvl.Zoom, a.Name, a.Seq+b.Seq)
	if err != nil {
		return nil, err
	}
	m.Start, m.End = a.Start, b.End
	m.Children = []graph.NodeID{a.ID, b.ID}
	m.Upstream = cloneStream(a.Upstream)
	m.Downstream = cloneStream(b.Downstream)

	for _, p := range a.RealNeighbors(graph.Upstream) {
		if n, ok := g.Node(p); ok {
			rekey(n.Downstream, a.ID, m.ID)
		}
	}
	for _, q := range b.RealNeighbors(graph.Downstream) {
		if n, ok := g.Node(q); ok {
			rekey(n.Upstream, b.ID, m.ID)
		}
	}

	if _, err := g.ReplaceTraversals(lvl.Zoom, a.ID, m.ID, aSpec); err != nil {
		return nil, err
	}
	if _, err := g.DeleteTraversals(lvl.Zoom, b.ID, bSpec); err != nil {
		return nil, err
	}
	if err := retire(g, a, m.ID, aSpec); err != nil {
		return nil, err
	}
	if err := retire(g, b, m.ID, bSpec); err != nil {
		return nil, err
	}
	return m, m.Validate()
}

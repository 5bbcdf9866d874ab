package summarize

import (
	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

// SplitGroups performs crossmerge on the given level and returns the number
// of nodes it created.
//
// For every node N and every pair of an upstream neighbor U and a
// downstream neighbor D of N, the specimens of U are compared with those of
// D. A pair where both sides are Nothing is skipped since the result would
// only copy N. When U or D is Nothing, its comparison set is N's specimens minus the
// specimens of every other real neighbor on that side: the specimens whose
// history there is untracked. If both sets are equal and non-empty, a new
// node S takes over the specimens shared by U, N and D (see [SplitGroup]).
// Nodes emptied by a split leave the level with SummarizedBy set to S.
func SplitGroups(g *graph.Graph, zoom int) (int, error) {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, id := range lvl.Nodes() {
		n, _ := g.Node(id)
		ups := n.Neighbors(graph.Upstream)
		downs := n.Neighbors(graph.Downstream)
		for _, up := range ups {
			for _, down := range downs {
				if !lvl.Has(id) || n.Len() == 0 {
					break
				}
				if up.IsNothing() && down.IsNothing() {
					continue
				}
				set1 := comparisonSet(g, lvl, n, up, graph.Upstream)
				set2 := comparisonSet(g, lvl, n, down, graph.Downstream)
				if set1.Len() == 0 || !set1.Equal(set2) {
					continue
				}
				s, err := splitOne(g, lvl, up, n, down, set1)
				if err != nil {
					return created, err
				}
				if s != nil {
					created++
				}
			}
		}
	}
	return created, nil
}

// comparisonSet returns the specimens of neighbor nb of n on side d. For
// Nothing it is n's specimens minus those of n's other real neighbors on
// that side.
func comparisonSet(g *graph.Graph, lvl *graph.Level, n *graph.Node, nb graph.Neighbor, d graph.Direction) graph.SpecimenSet {
	if id, ok := nb.Node(); ok {
		if !lvl.Has(id) {
			return nil
		}
		other, _ := g.Node(id)
		return other.Specimens
	}
	set := n.Specimens.Clone()
	for _, id := range n.RealNeighbors(d) {
		if other, ok := g.Node(id); ok {
			set.Subtract(other.Specimens)
		}
	}
	return set
}

// SplitGroup fuses the upstream neighbor up, the node n and the downstream
// neighbor down into a new node for the specimens n shares with group.
// Either neighbor may be Nothing, in which case n stands in for it.
//
// Only specimens whose path visits up, n and down consecutively are moved.
// Their traversal of n is replaced by the new node and their traversals of
// the real neighbors are removed. The new node's transitions start from
// up's upstream and down's downstream and are recomputed together with
// every node whose neighborhood changed. SplitGroup returns nil when no
// specimen qualifies.
func SplitGroup(g *graph.Graph, zoom int, up graph.Neighbor, n *graph.Node, down graph.Neighbor, group graph.SpecimenSet) (*graph.Node, error) {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return nil, err
	}
	if !lvl.Has(n.ID) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, graph.ErrUnknownNode, "node %d at zoom %d", n.ID, zoom)
	}
	return splitOne(g, lvl, up, n, down, group)
}

func splitOne(g *graph.Graph, lvl *graph.Level, up graph.Neighbor, n *graph.Node, down graph.Neighbor, group graph.SpecimenSet) (*graph.Node, error) {
	u := realNode(g, lvl, up)
	d := realNode(g, lvl, down)
	if (!up.IsNothing() && u == nil) || (!down.IsNothing() && d == nil) {
		return nil, nil
	}
	if u == n || d == n || (u != nil && u == d) {
		return nil, nil
	}

	mine := make(graph.SpecimenSet)
	for _, s := range n.Specimens.Intersect(group).Sorted() {
		if consecutive(lvl, s, up, n.ID, down) {
			mine.Add(s)
		}
	}
	if mine.Len() == 0 {
		return nil, nil
	}

	before := map[*graph.Node]graph.SpecimenSet{n: n.Specimens.Clone()}
	seq := n.Seq
	start, end := n.Start, n.End
	upstream, downstream := n.Upstream, n.Downstream
	var children []graph.NodeID
	if u != nil {
		before[u] = u.Specimens.Clone()
		seq = u.Seq + seq
		start = u.Start
		upstream = u.Upstream
		children = append(children, u.ID)
	}
	children = append(children, n.ID)
	if d != nil {
		before[d] = d.Specimens.Clone()
		seq += d.Seq
		end = d.End
		downstream = d.Downstream
		children = append(children, d.ID)
	}

	s, err := g.CreateNode(lvl.Zoom, n.Name, seq)
	if err != nil {
		return nil, err
	}
	s.Start, s.End = start, end
	s.Children = children
	s.Upstream = cloneStream(upstream)
	s.Downstream = cloneStream(downstream)

	if _, err := g.ReplaceTraversals(lvl.Zoom, n.ID, s.ID, mine); err != nil {
		return nil, err
	}
	for _, x := range []*graph.Node{u, d} {
		if x == nil {
			continue
		}
		if _, err := g.DeleteTraversals(lvl.Zoom, x.ID, mine); err != nil {
			return nil, err
		}
	}

	suspects := []graph.NodeID{s.ID, n.ID}
	for _, x := range []*graph.Node{u, d} {
		if x != nil {
			suspects = append(suspects, x.ID)
		}
	}
	for _, dir := range graph.Directions {
		for _, id := range s.RealNeighbors(dir) {
			if nb, ok := g.Node(id); ok && lvl.Has(id) {
				nb.Stream(dir.Opposite())[graph.Real(s.ID)] = 1
				suspects = append(suspects, id)
			}
		}
		suspects = append(suspects, n.RealNeighbors(dir)...)
	}

	seen := make(map[graph.NodeID]bool)
	for _, id := range suspects {
		if seen[id] || !lvl.Has(id) {
			continue
		}
		seen[id] = true
		if err := g.UpdateTransitions(id); err != nil {
			return nil, err
		}
	}

	for _, x := range []*graph.Node{u, n, d} {
		if x == nil || x.Len() > 0 {
			continue
		}
		if err := retire(g, x, s.ID, before[x]); err != nil {
			return nil, err
		}
	}

	for id := range seen {
		if !lvl.Has(id) {
			continue
		}
		nb, _ := g.Node(id)
		if err := nb.Validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func realNode(g *graph.Graph, lvl *graph.Level, nb graph.Neighbor) *graph.Node {
	id, ok := nb.Node()
	if !ok || !lvl.Has(id) {
		return nil
	}
	n, _ := g.Node(id)
	return n
}

// consecutive reports whether specimen s visits up, node and down in
// that order. A Nothing neighbor matches anything on its side.
func consecutive(lvl *graph.Level, s graph.SpecimenID, up graph.Neighbor, node graph.NodeID, down graph.Neighbor) bool {
	p, ok := lvl.Path(s)
	if !ok {
		return false
	}
	for i := 0; i < p.Len(); i++ {
		if p.At(i).Node != node {
			continue
		}
		if !up.IsNothing() && p.Neighbor(i, graph.Upstream) != up {
			continue
		}
		if !down.IsNothing() && p.Neighbor(i, graph.Downstream) != down {
			continue
		}
		return true
	}
	return false
}

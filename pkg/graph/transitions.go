package graph

// PopulateTransitions rebuilds the transitions of every active node at zoom
// from the paths of that level. A path's first and last steps connect to
// Nothing.
func (g *Graph) PopulateTransitions(zoom int) error {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return err
	}
	for id := range lvl.active {
		n := g.nodes[id]
		n.Upstream = make(map[Neighbor]int)
		n.Downstream = make(map[Neighbor]int)
	}
	for _, p := range lvl.Paths() {
		for i, t := range p.steps {
			n, ok := g.nodes[t.Node]
			if !ok || !lvl.Has(t.Node) {
				return violation("path %s visits inactive node %d", p.Accession, t.Node)
			}
			n.Upstream[p.Neighbor(i, Upstream)]++
			n.Downstream[p.Neighbor(i, Downstream)]++
		}
	}
	return nil
}

// UpdateTransitions recomputes both sides of node id from the traversals
// of its specimens at the node's level. Every traversal adds one unit per
// side: to the neighbor the path steps to when the node already links to
// it, and to Nothing otherwise (path ends, or a neighbor bridged over a
// node that was neglected). Keys no traversal uses are dropped, so each
// side sums to the number of traversals.
func (g *Graph) UpdateTransitions(id NodeID) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	lvl, err := g.Writable(n.Zoom)
	if err != nil {
		return err
	}
	up := make(map[Neighbor]int, len(n.Upstream))
	down := make(map[Neighbor]int, len(n.Downstream))
	for _, s := range n.Specimens.Sorted() {
		p, ok := lvl.paths[s]
		if !ok {
			return violation("node %d carries specimen %s without a path at zoom %d", id, g.Accession(s), n.Zoom)
		}
		visits := 0
		for i, t := range p.steps {
			if t.Node != id {
				continue
			}
			visits++
			up[linked(n, Upstream, p.Neighbor(i, Upstream))]++
			down[linked(n, Downstream, p.Neighbor(i, Downstream))]++
		}
		if visits == 0 {
			return violation("node %d carries specimen %s whose path does not visit it", id, g.Accession(s))
		}
	}
	n.setStream(Upstream, up)
	n.setStream(Downstream, down)
	return nil
}

// linked returns nb when n already has a transition to it on side d and
// Nothing otherwise.
func linked(n *Node, d Direction, nb Neighbor) Neighbor {
	if nb.IsNothing() {
		return Nothing
	}
	if _, ok := n.Stream(d)[nb]; ok {
		return nb
	}
	return Nothing
}

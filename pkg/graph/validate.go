package graph

import (
	"github.com/matzehuels/pangraph/pkg/errors"
)

// Validate checks the structural invariants of every level:
//   - traversal orders of every path are contiguous from 0
//   - every traversal visits a live node of its own level
//   - a node's specimens are exactly the paths that traverse it
//
// The highest level is additionally checked with [Graph.CheckAccounting].
func (g *Graph) Validate() error {
	for _, lvl := range g.levels {
		if err := g.validateLevel(lvl); err != nil {
			return err
		}
	}
	return g.CheckAccounting(g.HighestZoom())
}

func (g *Graph) validateLevel(lvl *Level) error {
	visitors := make(map[NodeID]SpecimenSet, len(lvl.active))
	for _, p := range lvl.Paths() {
		if err := p.checkContiguous(); err != nil {
			return err
		}
		for _, t := range p.steps {
			if !lvl.Has(t.Node) {
				return violation("path %s zoom %d visits inactive node %d", p.Accession, lvl.Zoom, t.Node)
			}
			set, ok := visitors[t.Node]
			if !ok {
				set = make(SpecimenSet)
				visitors[t.Node] = set
			}
			set.Add(p.Specimen)
		}
	}
	for id := range lvl.active {
		n, ok := g.nodes[id]
		if !ok {
			return unknownNode(id)
		}
		if n.Zoom != lvl.Zoom {
			return violation("node %d of zoom %d is active at zoom %d", id, n.Zoom, lvl.Zoom)
		}
		if err := n.Validate(); err != nil {
			return err
		}
		if !n.Specimens.Equal(visitors[id]) {
			return violation("node %d specimens %v disagree with traversing paths %v",
				id, n.Specimens.Sorted(), visitors[id].Sorted())
		}
	}
	return nil
}

// CheckAccounting verifies that for every active node at zoom the upstream
// and downstream weights each sum to the number of specimens.
func (g *Graph) CheckAccounting(zoom int) error {
	lvl, ok := g.Level(zoom)
	if !ok {
		return unknownLevel(zoom)
	}
	for _, id := range lvl.Nodes() {
		n := g.nodes[id]
		for _, d := range Directions {
			if w := n.Weight(d); w != n.Len() {
				return errors.Wrap(errors.ErrCodeInvariantViolation, ErrTransitionAccounting,
					"node %d %s sums to %d, has %d specimens", id, d, w, n.Len())
			}
		}
	}
	return nil
}

package graph

import (
	"fmt"

	"github.com/matzehuels/pangraph/pkg/errors"
)

// Traversal is one step of a path: the node visited, the strand it is read
// on and the position of the step within the path.
type Traversal struct {
	Node   NodeID
	Strand Strand
	Order  int
}

// Path is one specimen's walk through a single zoom level. Orders are
// always 0..Len()-1 with no gaps; only [Graph] mutates the traversal list.
type Path struct {
	Accession string
	Specimen  SpecimenID
	Zoom      int

	steps []Traversal
}

// Len returns the number of traversals.
func (p *Path) Len() int { return len(p.steps) }

// At returns the traversal with order i.
func (p *Path) At(i int) Traversal { return p.steps[i] }

// Traversals returns a copy of the traversal list.
func (p *Path) Traversals() []Traversal {
	out := make([]Traversal, len(p.steps))
	copy(out, p.steps)
	return out
}

// Nodes returns the visited node IDs in order.
func (p *Path) Nodes() []NodeID {
	out := make([]NodeID, len(p.steps))
	for i, t := range p.steps {
		out[i] = t.Node
	}
	return out
}

// Index returns the order of the first traversal of node, or -1.
func (p *Path) Index(node NodeID) int {
	for i, t := range p.steps {
		if t.Node == node {
			return i
		}
	}
	return -1
}

// Visits reports whether the path traverses node at least once.
func (p *Path) Visits(node NodeID) bool { return p.Index(node) >= 0 }

// Neighbor returns the node visited immediately before (Upstream) or after
// (Downstream) the traversal at order i. Path ends yield Nothing.
func (p *Path) Neighbor(i int, d Direction) Neighbor {
	j := i + 1
	if d == Upstream {
		j = i - 1
	}
	if j < 0 || j >= len(p.steps) {
		return Nothing
	}
	return Real(p.steps[j].Node)
}

func (p *Path) append(node NodeID, s Strand) int {
	order := len(p.steps)
	p.steps = append(p.steps, Traversal{Node: node, Strand: s, Order: order})
	return order
}

func (p *Path) renumber() {
	for i := range p.steps {
		p.steps[i].Order = i
	}
}

// checkContiguous verifies that orders run 0..n-1.
func (p *Path) checkContiguous() error {
	for i, t := range p.steps {
		if t.Order != i {
			return errors.Wrap(errors.ErrCodeInvariantViolation, ErrNonContiguousPath,
				"path %s zoom %d: traversal %d has order %d", p.Accession, p.Zoom, i, t.Order)
		}
	}
	return nil
}

func (p *Path) String() string {
	return fmt.Sprintf("%s@%d(%d steps)", p.Accession, p.Zoom, len(p.steps))
}

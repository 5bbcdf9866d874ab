package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Node is a sequence block shared by every specimen that traverses it.
//
// The zero value is not usable; nodes are created through [Graph.CreateNode]
// so that they receive an arena ID and initialized maps.
type Node struct {
	ID   NodeID
	Name string
	Seq  string
	Zoom int

	// Start and End are the first and last slice indices covered by the node.
	// Zoom-0 nodes cover exactly one slice; merged nodes span their parts.
	Start, End int

	// Specimens holds every specimen with a traversal of this node.
	Specimens SpecimenSet

	// Upstream and Downstream map each neighbor to the number of specimens
	// taking that transition.
	Upstream   map[Neighbor]int
	Downstream map[Neighbor]int

	// SummarizedBy is the node at a coarser level that subsumes this one.
	// It is assigned at most once.
	SummarizedBy NodeID

	// Children are the nodes of the level below that this node summarizes.
	Children []NodeID
}

func newNode(id NodeID, zoom int, name, seq string) *Node {
	return &Node{
		ID:         id,
		Name:       name,
		Seq:        seq,
		Zoom:       zoom,
		Specimens:  make(SpecimenSet),
		Upstream:   make(map[Neighbor]int),
		Downstream: make(map[Neighbor]int),
	}
}

// Stream returns the transition map for direction d. The map is the node's
// own storage, not a copy.
func (n *Node) Stream(d Direction) map[Neighbor]int {
	if d == Upstream {
		return n.Upstream
	}
	return n.Downstream
}

func (n *Node) setStream(d Direction, m map[Neighbor]int) {
	if d == Upstream {
		n.Upstream = m
	} else {
		n.Downstream = m
	}
}

// Len returns the number of specimens traversing the node.
func (n *Node) Len() int { return len(n.Specimens) }

// Neighbors returns the keys of the d-side transitions, Nothing first and
// then by ascending node ID.
func (n *Node) Neighbors(d Direction) []Neighbor {
	keys := slices.Collect(maps.Keys(n.Stream(d)))
	slices.SortFunc(keys, compareNeighbors)
	return keys
}

// RealNeighbors is like Neighbors but leaves out Nothing.
func (n *Node) RealNeighbors(d Direction) []NodeID {
	var ids []NodeID
	for _, nb := range n.Neighbors(d) {
		if id, ok := nb.Node(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Weight returns the sum of the d-side transition weights.
func (n *Node) Weight(d Direction) int {
	total := 0
	for _, w := range n.Stream(d) {
		total += w
	}
	return total
}

// IsBeginning reports whether every specimen enters the node from Nothing.
func (n *Node) IsBeginning() bool {
	return len(n.Upstream) == 1 && n.Upstream[Nothing] > 0
}

// IsEnd reports whether every specimen leaves the node into Nothing.
func (n *Node) IsEnd() bool {
	return len(n.Downstream) == 1 && n.Downstream[Nothing] > 0
}

// Validate checks the per-node invariants of a live node: at least one
// specimen and no negative transition weight.
func (n *Node) Validate() error {
	if len(n.Specimens) == 0 {
		return violation("node %d (%s) has no specimens", n.ID, n.Name)
	}
	for _, d := range Directions {
		for nb, w := range n.Stream(d) {
			if w < 0 {
				return violation("node %d %s weight to %s is negative (%d)", n.ID, d, nb, w)
			}
		}
	}
	return nil
}

// Details renders the node with its transitions for debug logging.
func (n *Node) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "N%d(%s, %d specimens)", n.ID, n.Name, n.Len())
	for _, d := range Directions {
		fmt.Fprintf(&b, " %s{", d)
		for i, nb := range n.Neighbors(d) {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s:%d", nb, n.Stream(d)[nb])
		}
		b.WriteString("}")
	}
	return b.String()
}

func (n *Node) String() string {
	return fmt.Sprintf("N%d(%s)", n.ID, n.Name)
}

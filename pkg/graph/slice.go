package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/pangraph/pkg/errors"
)

// SliceNode is one alternative within a [Slice]: a sequence and the
// accessions that carry it, each with the strand it is read on. A SliceNode
// with an empty Seq marks a deletion for its accessions.
type SliceNode struct {
	Name  string
	Seq   string
	Paths map[string]Strand
}

// NewSliceNode returns a forward-strand node carried by accessions.
func NewSliceNode(seq string, accessions ...string) SliceNode {
	n := SliceNode{Seq: seq, Paths: make(map[string]Strand, len(accessions))}
	for _, a := range accessions {
		n.Paths[a] = Forward
	}
	return n
}

// Len returns the number of accessions carrying the node.
func (n SliceNode) Len() int { return len(n.Paths) }

// Accessions returns the carrying accessions in sorted order.
func (n SliceNode) Accessions() []string {
	return slices.Sorted(maps.Keys(n.Paths))
}

// Has reports whether accession carries the node.
func (n SliceNode) Has(accession string) bool {
	_, ok := n.Paths[accession]
	return ok
}

// Equal compares sequence and accession sets. Names and strands are not
// part of a node's identity within a slice.
func (n SliceNode) Equal(o SliceNode) bool {
	if n.Seq != o.Seq || len(n.Paths) != len(o.Paths) {
		return false
	}
	for a := range n.Paths {
		if !o.Has(a) {
			return false
		}
	}
	return true
}

func (n SliceNode) String() string {
	return fmt.Sprintf("%q:{%s}", n.Seq, strings.Join(n.Accessions(), ","))
}

// Slice is the set of alternative nodes observed at one aligned position.
// Order of Nodes is irrelevant for equality but decides ties in the size
// queries: the earlier node wins.
type Slice struct {
	Nodes []SliceNode
}

// NewSlice returns a slice of the given alternatives.
func NewSlice(nodes ...SliceNode) Slice { return Slice{Nodes: nodes} }

// Add appends an alternative.
func (s *Slice) Add(n SliceNode) { s.Nodes = append(s.Nodes, n) }

// Len returns the number of alternatives.
func (s Slice) Len() int { return len(s.Nodes) }

// Paths returns every accession present in the slice, sorted.
func (s Slice) Paths() []string {
	seen := make(map[string]struct{})
	for _, n := range s.Nodes {
		for a := range n.Paths {
			seen[a] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Primary returns the alternative with the most accessions.
func (s Slice) Primary() (SliceNode, error) {
	i := s.primaryIndex()
	if i < 0 {
		return SliceNode{}, errors.New(errors.ErrCodeAmbiguousAlternative, "primary requested from an empty slice")
	}
	return s.Nodes[i], nil
}

func (s Slice) primaryIndex() int {
	best := -1
	for i, n := range s.Nodes {
		if best < 0 || n.Len() > s.Nodes[best].Len() {
			best = i
		}
	}
	return best
}

// Secondary returns the largest alternative other than the primary.
func (s Slice) Secondary() (SliceNode, error) {
	if len(s.Nodes) < 2 {
		return SliceNode{}, errors.New(errors.ErrCodeAmbiguousAlternative,
			"secondary requested when there is no alternative (%d nodes)", len(s.Nodes))
	}
	p := s.primaryIndex()
	best := -1
	for i, n := range s.Nodes {
		if i == p {
			continue
		}
		if best < 0 || n.Len() > s.Nodes[best].Len() {
			best = i
		}
	}
	return s.Nodes[best], nil
}

// Smallest returns the alternative with the fewest accessions, not
// counting the primary.
func (s Slice) Smallest() (SliceNode, error) {
	if len(s.Nodes) < 2 {
		return SliceNode{}, errors.New(errors.ErrCodeAmbiguousAlternative,
			"smallest requested when there is no alternative (%d nodes)", len(s.Nodes))
	}
	p := s.primaryIndex()
	best := -1
	for i, n := range s.Nodes {
		if i == p {
			continue
		}
		if best < 0 || n.Len() < s.Nodes[best].Len() {
			best = i
		}
	}
	return s.Nodes[best], nil
}

// Alternatives returns every node not equal to main.
func (s Slice) Alternatives(main SliceNode) []SliceNode {
	var out []SliceNode
	for _, n := range s.Nodes {
		if !n.Equal(main) {
			out = append(out, n)
		}
	}
	return out
}

// Bystanders returns every node equal to neither first nor second.
func (s Slice) Bystanders(first, second SliceNode) []SliceNode {
	var out []SliceNode
	for _, n := range s.Nodes {
		if !n.Equal(first) && !n.Equal(second) {
			out = append(out, n)
		}
	}
	return out
}

// Equal compares two slices as unordered sets of nodes.
func (s Slice) Equal(o Slice) bool {
	if len(s.Nodes) != len(o.Nodes) {
		return false
	}
	used := make([]bool, len(o.Nodes))
outer:
	for _, n := range s.Nodes {
		for j, m := range o.Nodes {
			if !used[j] && n.Equal(m) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

func (s Slice) String() string {
	parts := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		parts[i] = n.String()
	}
	slices.Sort(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

// EqualSlices compares two slice lists position by position.
func EqualSlices(a, b []Slice) bool {
	return slices.EqualFunc(a, b, Slice.Equal)
}

package graph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/pangraph/pkg/errors"
)

// NodeID identifies a node in the graph arena. IDs start at 1.
type NodeID int

// NoNode is the zero NodeID. It never identifies a node.
const NoNode NodeID = 0

// SpecimenID identifies an accession. The same accession keeps its
// SpecimenID at every zoom level.
type SpecimenID int

// Strand is the orientation of a traversal.
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

// ParseStrand converts "+" or "-" into a Strand. The empty string is read
// as forward, matching GFA paths written without orientation.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+", "":
		return Forward, nil
	case "-":
		return Reverse, nil
	}
	return 0, errors.New(errors.ErrCodeMalformedInput, "invalid strand %q", s)
}

func (s Strand) String() string { return string(s) }

// MarshalText encodes the strand as "+" or "-".
func (s Strand) MarshalText() ([]byte, error) {
	if s == 0 {
		s = Forward
	}
	return []byte{byte(s)}, nil
}

// UnmarshalText accepts the forms understood by ParseStrand.
func (s *Strand) UnmarshalText(b []byte) error {
	v, err := ParseStrand(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Neighbor is the target of a transition: either a real node or Nothing.
// The zero value is Nothing. Neighbors are comparable and used as map keys.
type Neighbor struct {
	id NodeID
}

// Nothing marks a transition into untracked history: the end of a path, or
// a neighbor that was pruned away.
var Nothing = Neighbor{}

// Real returns the neighbor for node id. Real(NoNode) is Nothing.
func Real(id NodeID) Neighbor { return Neighbor{id: id} }

// IsNothing reports whether n is the Nothing marker.
func (n Neighbor) IsNothing() bool { return n.id == NoNode }

// Node returns the node behind n and true, or NoNode and false for Nothing.
func (n Neighbor) Node() (NodeID, bool) { return n.id, n.id != NoNode }

func (n Neighbor) String() string {
	if n.IsNothing() {
		return "NOTHING"
	}
	return fmt.Sprintf("N%d", n.id)
}

// compareNeighbors orders Nothing first, then real nodes by ID.
func compareNeighbors(a, b Neighbor) int { return cmp.Compare(a.id, b.id) }

// Direction selects one side of a node's transitions.
type Direction int

const (
	Upstream Direction = iota
	Downstream
)

// Directions lists both sides, upstream first.
var Directions = [2]Direction{Upstream, Downstream}

// Opposite returns the other side.
func (d Direction) Opposite() Direction {
	if d == Upstream {
		return Downstream
	}
	return Upstream
}

func (d Direction) String() string {
	if d == Upstream {
		return "upstream"
	}
	return "downstream"
}

// SpecimenSet is a set of specimens.
type SpecimenSet map[SpecimenID]struct{}

// NewSpecimenSet returns a set holding ids.
func NewSpecimenSet(ids ...SpecimenID) SpecimenSet {
	s := make(SpecimenSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SpecimenSet) Add(id SpecimenID)      { s[id] = struct{}{} }
func (s SpecimenSet) Remove(id SpecimenID)   { delete(s, id) }
func (s SpecimenSet) Len() int               { return len(s) }
func (s SpecimenSet) Has(id SpecimenID) bool { _, ok := s[id]; return ok }

// Clone returns an independent copy. Cloning nil yields an empty set.
func (s SpecimenSet) Clone() SpecimenSet {
	out := make(SpecimenSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Equal reports whether s and o hold the same specimens.
func (s SpecimenSet) Equal(o SpecimenSet) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// Intersect returns a new set with the specimens present in both.
func (s SpecimenSet) Intersect(o SpecimenSet) SpecimenSet {
	small, big := s, o
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(SpecimenSet)
	for id := range small {
		if big.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// IntersectLen counts the specimens present in both without allocating.
func (s SpecimenSet) IntersectLen(o SpecimenSet) int {
	small, big := s, o
	if len(big) < len(small) {
		small, big = big, small
	}
	n := 0
	for id := range small {
		if big.Has(id) {
			n++
		}
	}
	return n
}

// Intersects reports whether s and o share at least one specimen.
func (s SpecimenSet) Intersects(o SpecimenSet) bool {
	small, big := s, o
	if len(big) < len(small) {
		small, big = big, small
	}
	for id := range small {
		if big.Has(id) {
			return true
		}
	}
	return false
}

// Union returns a new set with the specimens of both.
func (s SpecimenSet) Union(o SpecimenSet) SpecimenSet {
	out := s.Clone()
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

// Difference returns a new set with the specimens of s that are not in o.
func (s SpecimenSet) Difference(o SpecimenSet) SpecimenSet {
	out := make(SpecimenSet, len(s))
	for id := range s {
		if !o.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Subtract removes every specimen of o from s in place.
func (s SpecimenSet) Subtract(o SpecimenSet) {
	for id := range o {
		delete(s, id)
	}
}

// Sorted returns the specimens in ascending order.
func (s SpecimenSet) Sorted() []SpecimenID {
	ids := make([]SpecimenID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

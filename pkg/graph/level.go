package graph

import (
	"maps"
	"slices"
)

// State is the lifecycle state of a zoom level.
type State int

const (
	// Open levels accept mutations. Only the highest level can be open.
	Open State = iota
	// Sealed levels are immutable.
	Sealed
)

func (s State) String() string {
	if s == Sealed {
		return "sealed"
	}
	return "open"
}

// Level is one zoom level of a graph: the nodes active at that resolution
// and one path per specimen.
type Level struct {
	Zoom  int
	State State

	order  []NodeID // insertion order, may hold inactive IDs until compacted
	active map[NodeID]struct{}
	paths  map[SpecimenID]*Path
}

func newLevel(zoom int) *Level {
	return &Level{
		Zoom:   zoom,
		active: make(map[NodeID]struct{}),
		paths:  make(map[SpecimenID]*Path),
	}
}

// Nodes returns the active node IDs in insertion order.
func (l *Level) Nodes() []NodeID {
	out := make([]NodeID, 0, len(l.active))
	for _, id := range l.order {
		if _, ok := l.active[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// NodeCount returns the number of active nodes.
func (l *Level) NodeCount() int { return len(l.active) }

// Has reports whether id is active at this level.
func (l *Level) Has(id NodeID) bool {
	_, ok := l.active[id]
	return ok
}

// Path returns the path of specimen s.
func (l *Level) Path(s SpecimenID) (*Path, bool) {
	p, ok := l.paths[s]
	return p, ok
}

// Paths returns every path ordered by specimen.
func (l *Level) Paths() []*Path {
	ids := slices.Sorted(maps.Keys(l.paths))
	out := make([]*Path, len(ids))
	for i, id := range ids {
		out[i] = l.paths[id]
	}
	return out
}

// PathCount returns the number of paths.
func (l *Level) PathCount() int { return len(l.paths) }

func (l *Level) add(id NodeID) {
	l.active[id] = struct{}{}
	l.order = append(l.order, id)
}

func (l *Level) remove(id NodeID) {
	delete(l.active, id)
	if len(l.order) > 2*len(l.active)+16 {
		l.order = l.Nodes()
	}
}

package align

import (
	"github.com/matzehuels/pangraph/pkg/graph"
)

// ToSlices groups the entries of profile into slices. accessions maps path
// indices to names.
//
// Each entry is compared against its look-ahead candidate set, the union
// of its own candidates and those of the next entry. An entry traversed by
// every such candidate is an anchor and becomes a slice on its own. An
// entry sharing a path with the open slice closes that slice and opens a
// new one. Any other entry joins the open slice. When a slice is closed,
// candidates that placed no node in it receive an empty-sequence node.
func ToSlices(profile Profile, accessions []string) []graph.Slice {
	var (
		out     []graph.Slice
		open    []Entry
		present = make(pathSet)
	)

	lookahead := func(k int) pathSet {
		c := profile[k].candidates.clone()
		if k+1 < len(profile) {
			c.union(profile[k+1].candidates)
		}
		return c
	}
	closeSlice := func(candidates pathSet) {
		var sl graph.Slice
		for _, e := range open {
			sl.Add(sliceNode(e, accessions))
		}
		if missing := candidates.minus(present); len(missing) > 0 {
			gap := graph.SliceNode{Paths: make(map[string]graph.Strand, len(missing))}
			for _, id := range missing.sorted() {
				gap.Paths[accessions[id]] = graph.Forward
			}
			sl.Add(gap)
		}
		out = append(out, sl)
		open = nil
		present = make(pathSet)
	}

	for k, e := range profile {
		candidates := lookahead(k)
		paths := e.pathSet()
		switch {
		case len(paths) == len(candidates):
			if len(open) > 0 {
				closeSlice(candidates)
			}
			open, present = []Entry{e}, paths
			closeSlice(candidates)
		case paths.intersects(present):
			closeSlice(candidates)
			open, present = []Entry{e}, paths
		default:
			open = append(open, e)
			present.union(paths)
		}
	}
	if len(open) > 0 {
		closeSlice(lookahead(len(profile) - 1))
	}
	return out
}

func sliceNode(e Entry, accessions []string) graph.SliceNode {
	n := graph.SliceNode{
		Name:  e.Node,
		Seq:   e.Seq,
		Paths: make(map[string]graph.Strand, len(e.Forward)+len(e.Backward)),
	}
	for _, id := range e.Forward {
		n.Paths[accessions[id]] = graph.Forward
	}
	for _, id := range e.Backward {
		n.Paths[accessions[id]] = graph.Reverse
	}
	return n
}

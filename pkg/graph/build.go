package graph

import (
	"maps"
	"slices"
	"strconv"

	"github.com/matzehuels/pangraph/pkg/errors"
)

// FromSlices builds a graph whose level 0 holds one node per slice
// alternative. Each node spans exactly its slice index. Paths are created
// in the order their accessions are first mentioned and visit the slices in
// order; transitions are populated before returning. Level 0 is left open.
//
// Unnamed nodes are named after the graph and a running counter. A slice
// that lists the same accession twice, or a node with no accessions, is
// rejected as malformed input before anything is created.
func FromSlices(name string, input []Slice) (*Graph, error) {
	if err := checkSlices(input); err != nil {
		return nil, err
	}
	g := New(name)
	paths := make(map[string]*Path)
	count := 0
	for i, sl := range input {
		for _, sn := range sl.Nodes {
			nodeName := sn.Name
			if nodeName == "" {
				nodeName = name + strconv.Itoa(count)
			}
			count++
			n, err := g.CreateNode(0, nodeName, sn.Seq)
			if err != nil {
				return nil, err
			}
			n.Start, n.End = i, i
			for _, acc := range sn.Accessions() {
				p, ok := paths[acc]
				if !ok {
					if p, err = g.CreatePath(0, acc); err != nil {
						return nil, err
					}
					paths[acc] = p
				}
				if _, err := g.AppendTraversal(p, n.ID, sn.Paths[acc]); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := g.PopulateTransitions(0); err != nil {
		return nil, err
	}
	return g, nil
}

func checkSlices(input []Slice) error {
	for i, sl := range input {
		seen := make(map[string]bool)
		for _, sn := range sl.Nodes {
			if sn.Len() == 0 {
				return errors.New(errors.ErrCodeMalformedInput, "slice %d: node %q has no paths", i, sn.Seq)
			}
			for acc := range sn.Paths {
				if acc == "" {
					return errors.New(errors.ErrCodeMalformedInput, "slice %d: empty accession", i)
				}
				if seen[acc] {
					return errors.New(errors.ErrCodeMalformedInput, "slice %d: path %s appears twice", i, acc)
				}
				seen[acc] = true
			}
		}
	}
	return nil
}

// Slices exports the active nodes of a level as slices, grouping nodes by
// their Start index in ascending order. Each accession carries the strand of
// its first traversal of the node.
func (g *Graph) Slices(zoom int) ([]Slice, error) {
	lvl, ok := g.Level(zoom)
	if !ok {
		return nil, unknownLevel(zoom)
	}
	groups := make(map[int][]SliceNode)
	for _, id := range lvl.Nodes() {
		n := g.nodes[id]
		sn := SliceNode{Name: n.Name, Seq: n.Seq, Paths: make(map[string]Strand, n.Len())}
		for s := range n.Specimens {
			strand := Forward
			if p, ok := lvl.paths[s]; ok {
				if i := p.Index(id); i >= 0 {
					strand = p.steps[i].Strand
				}
			}
			sn.Paths[g.Accession(s)] = strand
		}
		groups[n.Start] = append(groups[n.Start], sn)
	}
	starts := slices.Sorted(maps.Keys(groups))
	out := make([]Slice, len(starts))
	for i, start := range starts {
		out[i] = Slice{Nodes: groups[start]}
	}
	return out, nil
}

package graph

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/pangraph/pkg/errors"
)

// Graph is the arena holding every node and path of every zoom level.
//
// A new graph has a single open level 0. Mutations go through the
// persistence primitives ([Graph.CreateNode], [Graph.CreatePath],
// [Graph.AppendTraversal], [Graph.ReplaceTraversals],
// [Graph.DeleteTraversals], [Graph.Deactivate]), each of which refuses to
// touch anything but the highest open level.
type Graph struct {
	ID   string
	Name string

	nodes      map[NodeID]*Node
	lastID     NodeID
	accessions []string
	specimens  map[string]SpecimenID
	levels     []*Level
}

// New returns an empty graph with an open level 0 and a fresh UUID.
func New(name string) *Graph {
	return &Graph{
		ID:        uuid.NewString(),
		Name:      name,
		nodes:     make(map[NodeID]*Node),
		specimens: make(map[string]SpecimenID),
		levels:    []*Level{newLevel(0)},
	}
}

// Node returns the node with the given ID from any level.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) node(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, unknownNode(id)
	}
	return n, nil
}

// NodeCount returns the number of nodes in the arena across all levels,
// including inactive ones.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Level returns the level at zoom.
func (g *Graph) Level(zoom int) (*Level, bool) {
	if zoom < 0 || zoom >= len(g.levels) {
		return nil, false
	}
	return g.levels[zoom], true
}

// Levels returns all levels, lowest zoom first.
func (g *Graph) Levels() []*Level { return slices.Clone(g.levels) }

// Highest returns the level with the highest zoom.
func (g *Graph) Highest() *Level { return g.levels[len(g.levels)-1] }

// HighestZoom returns the zoom of the highest level.
func (g *Graph) HighestZoom() int { return len(g.levels) - 1 }

// ActiveNodes returns the nodes active at zoom in insertion order.
func (g *Graph) ActiveNodes(zoom int) []*Node {
	lvl, ok := g.Level(zoom)
	if !ok {
		return nil
	}
	ids := lvl.Nodes()
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = g.nodes[id]
	}
	return out
}

// Accession returns the accession name of specimen s.
func (g *Graph) Accession(s SpecimenID) string {
	if int(s) < 0 || int(s) >= len(g.accessions) {
		return ""
	}
	return g.accessions[s]
}

// Specimen returns the specimen registered for accession.
func (g *Graph) Specimen(accession string) (SpecimenID, bool) {
	s, ok := g.specimens[accession]
	return s, ok
}

// SpecimenCount returns the number of registered accessions.
func (g *Graph) SpecimenCount() int { return len(g.accessions) }

// AccessionNames returns the sorted accessions of the specimens in set.
func (g *Graph) AccessionNames(set SpecimenSet) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, g.Accession(s))
	}
	slices.Sort(out)
	return out
}

// Writable returns the level at zoom if it is the highest level and open.
func (g *Graph) Writable(zoom int) (*Level, error) {
	lvl, ok := g.Level(zoom)
	if !ok {
		return nil, unknownLevel(zoom)
	}
	if zoom != g.HighestZoom() || lvl.State != Open {
		return nil, errors.Wrap(errors.ErrCodeLevelSealed, ErrNotWritable,
			"zoom %d (%s, highest %d)", zoom, lvl.State, g.HighestZoom())
	}
	return lvl, nil
}

func (g *Graph) register(accession string) SpecimenID {
	if s, ok := g.specimens[accession]; ok {
		return s
	}
	s := SpecimenID(len(g.accessions))
	g.accessions = append(g.accessions, accession)
	g.specimens[accession] = s
	return s
}

func (g *Graph) allocate(lvl *Level, name, seq string) *Node {
	g.lastID++
	n := newNode(g.lastID, lvl.Zoom, name, seq)
	g.nodes[n.ID] = n
	lvl.add(n.ID)
	return n
}

// CreateNode adds an active node to the level at zoom.
func (g *Graph) CreateNode(zoom int, name, seq string) (*Node, error) {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return nil, err
	}
	return g.allocate(lvl, name, seq), nil
}

// CreatePath adds an empty path for accession at zoom. The accession is
// registered as a specimen on first use.
func (g *Graph) CreatePath(zoom int, accession string) (*Path, error) {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return nil, err
	}
	if accession == "" {
		return nil, errors.New(errors.ErrCodeMalformedInput, "empty accession")
	}
	s := g.register(accession)
	if _, ok := lvl.paths[s]; ok {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, ErrDuplicatePath, "%s at zoom %d", accession, zoom)
	}
	p := &Path{Accession: accession, Specimen: s, Zoom: zoom}
	lvl.paths[s] = p
	return p, nil
}

// AppendTraversal appends a step over node to p and returns its order. The
// path's specimen becomes a member of the node in the same call.
func (g *Graph) AppendTraversal(p *Path, node NodeID, s Strand) (int, error) {
	lvl, err := g.Writable(p.Zoom)
	if err != nil {
		return 0, err
	}
	if lvl.paths[p.Specimen] != p {
		return 0, errors.Wrap(errors.ErrCodeNotFound, ErrUnknownPath, "%s at zoom %d", p.Accession, p.Zoom)
	}
	if !lvl.Has(node) {
		return 0, unknownNode(node)
	}
	order := p.append(node, s)
	g.nodes[node].Specimens.Add(p.Specimen)
	return order, nil
}

// ReplaceTraversals rewrites every traversal of old into a traversal of
// repl for the paths of the given specimens. Those specimens leave old and
// join repl. It returns the number of traversals rewritten.
func (g *Graph) ReplaceTraversals(zoom int, old, repl NodeID, specimens SpecimenSet) (int, error) {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return 0, err
	}
	from, err := g.node(old)
	if err != nil {
		return 0, err
	}
	if !lvl.Has(repl) {
		return 0, unknownNode(repl)
	}
	to := g.nodes[repl]
	count := 0
	for _, s := range specimens.Sorted() {
		p, ok := lvl.paths[s]
		if !ok {
			return count, errors.Wrap(errors.ErrCodeNotFound, ErrUnknownPath, "specimen %s at zoom %d", g.Accession(s), zoom)
		}
		hit := false
		for i := range p.steps {
			if p.steps[i].Node == old {
				p.steps[i].Node = repl
				hit = true
				count++
			}
		}
		if hit {
			from.Specimens.Remove(s)
			to.Specimens.Add(s)
		}
	}
	return count, nil
}

// DeleteTraversals removes every traversal of node from the paths of the
// given specimens and renumbers the remaining steps so orders stay
// contiguous. It returns the number of traversals removed.
func (g *Graph) DeleteTraversals(zoom int, node NodeID, specimens SpecimenSet) (int, error) {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return 0, err
	}
	n, err := g.node(node)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, s := range specimens.Sorted() {
		p, ok := lvl.paths[s]
		if !ok {
			continue
		}
		before := len(p.steps)
		p.steps = slices.DeleteFunc(p.steps, func(t Traversal) bool { return t.Node == node })
		if removed := before - len(p.steps); removed > 0 {
			count += removed
			p.renumber()
		}
		n.Specimens.Remove(s)
	}
	return count, nil
}

// Deactivate removes id from the active set of its level. When by is not
// NoNode it is recorded as the node's SummarizedBy.
func (g *Graph) Deactivate(zoom int, id, by NodeID) error {
	lvl, err := g.Writable(zoom)
	if err != nil {
		return err
	}
	if !lvl.Has(id) {
		return unknownNode(id)
	}
	if by != NoNode {
		if err := g.SetSummarizedBy(id, by); err != nil {
			return err
		}
	}
	lvl.remove(id)
	return nil
}

// SetSummarizedBy links id to the coarser node by. The link is set once;
// a second assignment is an invariant violation.
func (g *Graph) SetSummarizedBy(id, by NodeID) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	if _, err := g.node(by); err != nil {
		return err
	}
	if n.SummarizedBy != NoNode {
		return errors.Wrap(errors.ErrCodeInvariantViolation, ErrAlreadySummarized,
			"node %d is summarized by %d, cannot assign %d", id, n.SummarizedBy, by)
	}
	n.SummarizedBy = by
	return nil
}

// OpenLevel seals the highest level and opens a new one above it holding
// one copy of every active node. Each original records its copy as
// SummarizedBy, paths are replayed over the copies and transitions are
// carried over with neighbors remapped.
func (g *Graph) OpenLevel() (*Level, error) {
	prev := g.Highest()
	prev.State = Sealed
	next := newLevel(prev.Zoom + 1)
	g.levels = append(g.levels, next)

	ids := prev.Nodes()
	copies := make(map[NodeID]NodeID, len(ids))
	for _, id := range ids {
		old := g.nodes[id]
		c := g.allocate(next, old.Name, old.Seq)
		c.Start, c.End = old.Start, old.End
		c.Specimens = old.Specimens.Clone()
		c.Children = []NodeID{old.ID}
		if err := g.SetSummarizedBy(old.ID, c.ID); err != nil {
			return nil, err
		}
		copies[id] = c.ID
	}
	for _, id := range ids {
		old, c := g.nodes[id], g.nodes[copies[id]]
		for _, d := range Directions {
			dst := c.Stream(d)
			for nb, w := range old.Stream(d) {
				key := Nothing
				if nid, ok := nb.Node(); ok {
					if cid, ok := copies[nid]; ok {
						key = Real(cid)
					}
				}
				dst[key] += w
			}
		}
	}
	for _, p := range prev.Paths() {
		np := &Path{Accession: p.Accession, Specimen: p.Specimen, Zoom: next.Zoom}
		for _, t := range p.steps {
			cid, ok := copies[t.Node]
			if !ok {
				return nil, violation("path %s zoom %d visits inactive node %d", p.Accession, prev.Zoom, t.Node)
			}
			np.append(cid, t.Strand)
		}
		next.paths[p.Specimen] = np
	}
	return next, nil
}

// Seal makes the level at zoom immutable. Sealing a sealed level is a no-op.
func (g *Graph) Seal(zoom int) error {
	lvl, ok := g.Level(zoom)
	if !ok {
		return unknownLevel(zoom)
	}
	lvl.State = Sealed
	return nil
}

// Discard drops the highest level after a failed pass. Its nodes leave the
// arena and the SummarizedBy links pointing into it are cleared, leaving the
// level below as the new highest. Level 0 cannot be discarded.
func (g *Graph) Discard(zoom int) error {
	if _, err := g.Writable(zoom); err != nil {
		return err
	}
	if zoom == 0 {
		return errors.New(errors.ErrCodeUnsupported, "level 0 cannot be discarded")
	}
	for id, n := range g.nodes {
		if n.Zoom == zoom {
			delete(g.nodes, id)
		}
	}
	for _, n := range g.nodes {
		if n.SummarizedBy == NoNode {
			continue
		}
		if _, ok := g.nodes[n.SummarizedBy]; !ok {
			n.SummarizedBy = NoNode
		}
	}
	g.levels = g.levels[:zoom]
	return nil
}

package graph

import (
	"slices"

	"github.com/matzehuels/pangraph/pkg/errors"
)

// Snapshot is the serializable form of one zoom level. It carries every
// node created at that zoom, active or not, so SummarizedBy and Children
// links stay resolvable after a round trip.
type Snapshot struct {
	GraphID    string       `json:"graph_id" bson:"graph_id"`
	Name       string       `json:"name" bson:"name"`
	Zoom       int          `json:"zoom" bson:"zoom"`
	Sealed     bool         `json:"sealed" bson:"sealed"`
	Accessions []string     `json:"accessions" bson:"accessions"`
	Nodes      []NodeRecord `json:"nodes" bson:"nodes"`
	Paths      []PathRecord `json:"paths" bson:"paths"`
}

// NodeRecord is the serializable form of a [Node].
type NodeRecord struct {
	ID           int          `json:"id" bson:"id"`
	Name         string       `json:"name" bson:"name"`
	Seq          string       `json:"seq" bson:"seq"`
	Start        int          `json:"start" bson:"start"`
	End          int          `json:"end" bson:"end"`
	Active       bool         `json:"active" bson:"active"`
	Specimens    []int        `json:"specimens" bson:"specimens"`
	Upstream     []EdgeRecord `json:"upstream,omitempty" bson:"upstream,omitempty"`
	Downstream   []EdgeRecord `json:"downstream,omitempty" bson:"downstream,omitempty"`
	SummarizedBy int          `json:"summarized_by,omitempty" bson:"summarized_by,omitempty"`
	Children     []int        `json:"children,omitempty" bson:"children,omitempty"`
}

// EdgeRecord is one transition weight. Node 0 stands for Nothing.
type EdgeRecord struct {
	Node   int `json:"node" bson:"node"`
	Weight int `json:"weight" bson:"weight"`
}

// PathRecord is the serializable form of a [Path].
type PathRecord struct {
	Accession string       `json:"accession" bson:"accession"`
	Steps     []StepRecord `json:"steps" bson:"steps"`
}

// StepRecord is one traversal.
type StepRecord struct {
	Node   int    `json:"node" bson:"node"`
	Strand string `json:"strand" bson:"strand"`
}

// Snapshot captures the level at zoom. The result shares no memory with g.
func (g *Graph) Snapshot(zoom int) (*Snapshot, error) {
	lvl, ok := g.Level(zoom)
	if !ok {
		return nil, unknownLevel(zoom)
	}
	snap := &Snapshot{
		GraphID:    g.ID,
		Name:       g.Name,
		Zoom:       zoom,
		Sealed:     lvl.State == Sealed,
		Accessions: slices.Clone(g.accessions),
	}
	var ids []NodeID
	for id, n := range g.nodes {
		if n.Zoom == zoom {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		n := g.nodes[id]
		rec := NodeRecord{
			ID:           int(n.ID),
			Name:         n.Name,
			Seq:          n.Seq,
			Start:        n.Start,
			End:          n.End,
			Active:       lvl.Has(id),
			Upstream:     edgeRecords(n, Upstream),
			Downstream:   edgeRecords(n, Downstream),
			SummarizedBy: int(n.SummarizedBy),
		}
		for _, s := range n.Specimens.Sorted() {
			rec.Specimens = append(rec.Specimens, int(s))
		}
		for _, c := range n.Children {
			rec.Children = append(rec.Children, int(c))
		}
		snap.Nodes = append(snap.Nodes, rec)
	}
	for _, p := range lvl.Paths() {
		pr := PathRecord{Accession: p.Accession, Steps: make([]StepRecord, len(p.steps))}
		for i, t := range p.steps {
			pr.Steps[i] = StepRecord{Node: int(t.Node), Strand: t.Strand.String()}
		}
		snap.Paths = append(snap.Paths, pr)
	}
	return snap, nil
}

func edgeRecords(n *Node, d Direction) []EdgeRecord {
	var out []EdgeRecord
	for _, nb := range n.Neighbors(d) {
		id, _ := nb.Node()
		out = append(out, EdgeRecord{Node: int(id), Weight: n.Stream(d)[nb]})
	}
	return out
}

// Restore rebuilds a graph from the snapshots of all of its levels. Zooms
// must run from 0 without gaps; every level but the last must be sealed.
// The restored graph is validated before it is returned.
func Restore(snaps []*Snapshot) (*Graph, error) {
	if len(snaps) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "no levels to restore")
	}
	snaps = slices.Clone(snaps)
	slices.SortFunc(snaps, func(a, b *Snapshot) int { return a.Zoom - b.Zoom })

	first := snaps[0]
	g := &Graph{
		ID:        first.GraphID,
		Name:      first.Name,
		nodes:     make(map[NodeID]*Node),
		specimens: make(map[string]SpecimenID),
	}
	for _, snap := range snaps {
		if len(snap.Accessions) > len(g.accessions) {
			g.accessions = slices.Clone(snap.Accessions)
		}
	}
	for i, acc := range g.accessions {
		g.specimens[acc] = SpecimenID(i)
	}

	for i, snap := range snaps {
		if snap.Zoom != i {
			return nil, errors.New(errors.ErrCodeMalformedInput, "missing zoom level %d", i)
		}
		if snap.GraphID != first.GraphID {
			return nil, errors.New(errors.ErrCodeMalformedInput,
				"zoom %d belongs to graph %s, expected %s", i, snap.GraphID, first.GraphID)
		}
		if !snap.Sealed && i != len(snaps)-1 {
			return nil, errors.New(errors.ErrCodeMalformedInput, "zoom %d is open but not the highest level", i)
		}
		lvl := newLevel(i)
		if snap.Sealed {
			lvl.State = Sealed
		}
		for _, rec := range snap.Nodes {
			if err := g.restoreNode(lvl, rec); err != nil {
				return nil, err
			}
		}
		for _, pr := range snap.Paths {
			if err := g.restorePath(lvl, pr); err != nil {
				return nil, err
			}
		}
		g.levels = append(g.levels, lvl)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) restoreNode(lvl *Level, rec NodeRecord) error {
	id := NodeID(rec.ID)
	if id == NoNode {
		return errors.New(errors.ErrCodeMalformedInput, "zoom %d: node with id 0", lvl.Zoom)
	}
	if _, dup := g.nodes[id]; dup {
		return errors.New(errors.ErrCodeMalformedInput, "zoom %d: duplicate node id %d", lvl.Zoom, id)
	}
	n := newNode(id, lvl.Zoom, rec.Name, rec.Seq)
	n.Start, n.End = rec.Start, rec.End
	n.SummarizedBy = NodeID(rec.SummarizedBy)
	for _, s := range rec.Specimens {
		if s < 0 || s >= len(g.accessions) {
			return errors.New(errors.ErrCodeMalformedInput, "node %d: unknown specimen %d", id, s)
		}
		n.Specimens.Add(SpecimenID(s))
	}
	for _, e := range rec.Upstream {
		n.Upstream[Real(NodeID(e.Node))] = e.Weight
	}
	for _, e := range rec.Downstream {
		n.Downstream[Real(NodeID(e.Node))] = e.Weight
	}
	for _, c := range rec.Children {
		n.Children = append(n.Children, NodeID(c))
	}
	g.nodes[id] = n
	if id > g.lastID {
		g.lastID = id
	}
	if rec.Active {
		lvl.add(id)
	}
	return nil
}

func (g *Graph) restorePath(lvl *Level, pr PathRecord) error {
	s, ok := g.specimens[pr.Accession]
	if !ok {
		return errors.New(errors.ErrCodeMalformedInput, "zoom %d: path for unknown accession %q", lvl.Zoom, pr.Accession)
	}
	if _, dup := lvl.paths[s]; dup {
		return errors.Wrap(errors.ErrCodeMalformedInput, ErrDuplicatePath, "%s at zoom %d", pr.Accession, lvl.Zoom)
	}
	p := &Path{Accession: pr.Accession, Specimen: s, Zoom: lvl.Zoom}
	for _, st := range pr.Steps {
		strand, err := ParseStrand(st.Strand)
		if err != nil {
			return err
		}
		p.append(NodeID(st.Node), strand)
	}
	lvl.paths[s] = p
	return nil
}

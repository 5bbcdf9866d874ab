// Package graph provides the pangenome variation graph data model shared by
// the aligner and the summarizer.
//
// # Overview
//
// A variation graph stores many genomes ("paths") as traversals over a
// shared set of sequence-carrying nodes, so identical stretches of sequence
// are stored once. Every genome is a [Path] identified by its accession; the
// accession maps to a [SpecimenID] that stays stable across zoom levels.
//
// Nodes and paths live in a single arena owned by [Graph]. All
// cross-references (node to node through transitions, path to node through
// traversals) are [NodeID] lookups into that arena, so there are no pointer
// cycles to manage.
//
// # Zoom Levels
//
// A graph is a stack of [Level] values. Level 0 holds the full-detail graph
// produced by the aligner; every higher level is a coarser summary. A level
// is [Open] while a pass writes to it and [Sealed] afterwards. Only the
// highest level may be written:
//
//	g := graph.New("chr1")
//	lvl, _ := g.OpenLevel() // seals level 0, copies it into level 1
//	// ... summarization passes mutate lvl ...
//	g.Seal(lvl.Zoom)
//
// Nodes are never deleted once visible. A node that is collapsed into a
// coarser one records the subsuming node in [Node.SummarizedBy]; the coarser
// node lists what it covers in [Node.Children].
//
// # Transitions
//
// Each node keeps upstream and downstream transition weights keyed by
// [Neighbor]. A neighbor is either a real node or [Nothing], the marker for
// a specimen whose history is untracked (path end, pruned neighbor).
// [Graph.UpdateTransitions] recomputes the weights of one node from the
// traversals of its paths; after it, the weights on each side sum to the
// number of specimens.
//
// # Slices
//
// A [Slice] is the set of alternative nodes observed at one aligned
// position. [FromSlices] builds a level-0 graph from an ordered list of
// slices and [Graph.Slices] exports any level back into that form.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. One pass at a time
// may write the open level. Sealed levels can be read from several
// goroutines; [Graph.Snapshot] and [SpecimenSet.Clone] return copies.
package graph

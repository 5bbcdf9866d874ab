// Package summarize builds coarser zoom levels of a variation graph.
//
// Each level is produced from the one below it by three passes, after the
// HaploBlocker method:
//
//   - [SimpleMerge] collapses chains: a node whose specimens all continue
//     into the same single successor is merged with it.
//   - [NeglectNodes] prunes minor alleles: nodes carried by at most a
//     cutoff number of specimens leave the level, and their neighbors send
//     the affected specimens to [graph.Nothing] instead.
//   - [SplitGroups] ("crossmerge") separates haplotype groups that share an
//     anchor: when the specimens arriving from an upstream neighbor are
//     exactly those leaving into a downstream neighbor, the three nodes are
//     fused into one for that group.
//
// Every pass refuses to run unless the level is the highest one of its
// graph and still open. Nodes are never deleted: a node that is collapsed
// leaves the active set and records the node that subsumes it in
// SummarizedBy.
//
// [Summarizer] drives the passes level by level: it opens a level, merges
// to a fixpoint, neglects, splits, merges again, validates and seals.
// A pass that fails discards its level, leaving the graph at the previous
// sealed level.
package summarize

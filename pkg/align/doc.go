// Package align merges independently given linear paths into one sliced
// variation graph.
//
// # Overview
//
// Each input path is an ordered list of node identities. The aligner picks
// one path as the primary, turns it into a profile (one [Entry] per step)
// and merges every other path into that profile with a longest common
// subsequence alignment over node identities ([LCSMerge]). Steps a path
// shares with the profile are recorded on the existing entry; steps it does
// not share become new entries. A new entry whose node already occurred in
// the profile is a duplicate: the node had to be repeated to express the
// path's order.
//
// # Primary Selection
//
// [SearchMinimizingReplications] tries every path as the primary and keeps
// the profile with the fewest duplicates, lowest path index first on ties.
// This is a brute-force search, O(P) trials of O(P·L²) each. The trials are
// independent and run in parallel on a bounded errgroup; the reduction to
// the minimum happens after all trials finish so the result does not depend
// on scheduling.
//
// # Slicing
//
// [ToSlices] walks the chosen profile and groups entries into slices. An
// entry touched by every path that could be at that position is an anchor
// and gets a slice of its own. An entry whose paths are already present in
// the open slice closes it. Paths missing from a closed slice receive a
// synthetic empty-sequence node, which is how insertions and deletions are
// represented without breaking slice alignment.
//
// [Build] chains validation, search, slicing and [graph.FromSlices].
package align

package align

import (
	"maps"
	"slices"

	"github.com/matzehuels/pangraph/pkg/graph"
)

// pathSet is a set of input path indices.
type pathSet map[int]struct{}

func newPathSet(ids ...int) pathSet {
	s := make(pathSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s pathSet) add(id int)      { s[id] = struct{}{} }
func (s pathSet) has(id int) bool { _, ok := s[id]; return ok }
func (s pathSet) clone() pathSet  { return maps.Clone(s) }
func (s pathSet) sorted() []int   { return slices.Sorted(maps.Keys(s)) }
func (s pathSet) union(o pathSet) { maps.Copy(s, o) }
func (s pathSet) intersects(o pathSet) bool {
	for id := range o {
		if s.has(id) {
			return true
		}
	}
	return false
}

func (s pathSet) minus(o pathSet) pathSet {
	out := make(pathSet)
	for id := range s {
		if !o.has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Entry is one position of a profile: a node identity and the paths that
// traverse it there, split by strand.
type Entry struct {
	Node     string
	Seq      string
	Forward  []int
	Backward []int

	// candidates holds every path that could be at this position.
	candidates pathSet

	// Duplicate marks an entry created for a node that was already in the
	// profile before the merge that added it.
	Duplicate bool
}

// Paths returns the indices of the paths traversing the entry.
func (e Entry) Paths() []int {
	out := append(slices.Clone(e.Forward), e.Backward...)
	slices.Sort(out)
	return out
}

// Candidates returns the indices of the paths that could be at the entry's
// position, sorted.
func (e Entry) Candidates() []int { return e.candidates.sorted() }

func (e Entry) pathSet() pathSet {
	s := newPathSet(e.Forward...)
	for _, id := range e.Backward {
		s.add(id)
	}
	return s
}

func (e *Entry) addPath(idx int, s graph.Strand) {
	if s == graph.Reverse {
		e.Backward = append(e.Backward, idx)
	} else {
		e.Forward = append(e.Forward, idx)
	}
}

func (e Entry) clone() Entry {
	e.Forward = slices.Clone(e.Forward)
	e.Backward = slices.Clone(e.Backward)
	e.candidates = e.candidates.clone()
	return e
}

func newEntry(st Step, idx int) Entry {
	e := Entry{Node: st.Node, Seq: st.Seq, candidates: newPathSet(idx)}
	e.addPath(idx, st.Strand)
	return e
}

// Profile is the running alignment of several paths.
type Profile []Entry

// Duplicates counts entries flagged as duplicate.
func (p Profile) Duplicates() int {
	n := 0
	for _, e := range p {
		if e.Duplicate {
			n++
		}
	}
	return n
}

// Nodes returns the node identity of every entry in order.
func (p Profile) Nodes() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Node
	}
	return out
}

// GenerateProfile seeds a profile from inputs[primary] and merges every
// other input into it in order.
func GenerateProfile(inputs []Input, primary int) Profile {
	if primary < 0 || primary >= len(inputs) {
		return nil
	}
	profile := make(Profile, 0, len(inputs[primary].Steps))
	for _, st := range inputs[primary].Steps {
		profile = append(profile, newEntry(st, primary))
	}
	for i, in := range inputs {
		if i == primary {
			continue
		}
		profile = LCSMerge(profile, in, i)
	}
	return profile
}

// LCSMerge aligns path idx against profile and returns the merged profile.
// The input profile is not modified.
//
// Node identities are matched regardless of strand. When backtracking, a
// strictly larger score above the current cell consumes a profile entry;
// otherwise a path step is consumed. A consumed profile entry is carried
// over, and once a match has been seen to its right, idx joins its
// candidates. A consumed path step becomes a new entry whose candidates
// include those of the profile entries on either side of it.
func LCSMerge(profile Profile, in Input, idx int) Profile {
	n, m := len(profile), len(in.Steps)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if profile[i-1].Node == in.Steps[j-1].Node {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	prev := make(map[string]bool, n)
	for _, e := range profile {
		prev[e.Node] = true
	}

	inserted := func(i, j int) Entry {
		st := in.Steps[j-1]
		e := newEntry(st, idx)
		if i > 0 {
			e.candidates.union(profile[i-1].candidates)
		}
		if i < n {
			e.candidates.union(profile[i].candidates)
		}
		e.Duplicate = prev[st.Node]
		return e
	}
	carried := func(i int, matched bool) Entry {
		e := profile[i-1].clone()
		if matched {
			e.candidates.add(idx)
		}
		return e
	}

	out := make(Profile, 0, n+m)
	matched := false
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case profile[i-1].Node == in.Steps[j-1].Node:
			e := profile[i-1].clone()
			e.addPath(idx, in.Steps[j-1].Strand)
			e.candidates.add(idx)
			out = append(out, e)
			matched = true
			i--
			j--
		case dp[i-1][j] > dp[i][j-1]:
			out = append(out, carried(i, matched))
			i--
		default:
			out = append(out, inserted(i, j))
			j--
		}
	}
	for ; i > 0; i-- {
		out = append(out, carried(i, matched))
	}
	for ; j > 0; j-- {
		out = append(out, inserted(i, j))
	}
	slices.Reverse(out)
	return out
}

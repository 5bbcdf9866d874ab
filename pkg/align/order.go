package align

import (
	"math"
	"slices"
)

// Arc is a directed connection between two node identities.
type Arc struct {
	From, To string
}

// arcGraph collects the node identities of inputs in first-seen order and
// the distinct arcs between consecutive steps.
type arcGraph struct {
	nodes      []string
	arcs       []Arc
	succ, pred map[string][]string
}

func newArcGraph(inputs []Input) *arcGraph {
	ag := &arcGraph{succ: make(map[string][]string), pred: make(map[string][]string)}
	known := make(map[string]bool)
	seen := make(map[Arc]bool)
	for _, in := range inputs {
		for j, st := range in.Steps {
			if !known[st.Node] {
				known[st.Node] = true
				ag.nodes = append(ag.nodes, st.Node)
			}
			if j == 0 {
				continue
			}
			a := Arc{From: in.Steps[j-1].Node, To: st.Node}
			if seen[a] {
				continue
			}
			seen[a] = true
			ag.arcs = append(ag.arcs, a)
			if a.From != a.To {
				ag.succ[a.From] = append(ag.succ[a.From], a.To)
				ag.pred[a.To] = append(ag.pred[a.To], a.From)
			}
		}
	}
	return ag
}

// greedySequence is the vertex sequence of the Eades-Lin-Smyth heuristic:
// sinks are peeled off to the back and sources to the front; when neither
// is left, the node with the largest out-degree minus in-degree goes to the
// front. Ties go to the node seen first.
func (ag *arcGraph) greedySequence() []string {
	in := make(map[string]int, len(ag.nodes))
	out := make(map[string]int, len(ag.nodes))
	for _, n := range ag.nodes {
		in[n], out[n] = len(ag.pred[n]), len(ag.succ[n])
	}
	removed := make(map[string]bool, len(ag.nodes))
	remove := func(n string) {
		removed[n] = true
		for _, m := range ag.succ[n] {
			in[m]--
		}
		for _, m := range ag.pred[n] {
			out[m]--
		}
	}

	var front, back []string
	for left := len(ag.nodes); left > 0; {
		for peeled := true; peeled; {
			peeled = false
			for _, n := range ag.nodes {
				switch {
				case removed[n]:
					continue
				case out[n] == 0:
					back = append(back, n)
				case in[n] == 0:
					front = append(front, n)
				default:
					continue
				}
				remove(n)
				left--
				peeled = true
			}
		}
		if left == 0 {
			break
		}
		best, delta := "", math.MinInt
		for _, n := range ag.nodes {
			if !removed[n] && out[n]-in[n] > delta {
				best, delta = n, out[n]-in[n]
			}
		}
		front = append(front, best)
		remove(best)
		left--
	}
	slices.Reverse(back)
	return append(front, back...)
}

// FeedbackArcs returns the arcs between consecutive steps that point
// backwards in the greedy source/sink sequence of the node graph. Removing
// them leaves the graph acyclic. Self-loops are always feedback arcs. The
// set is small in practice but not guaranteed to be minimal.
func FeedbackArcs(inputs []Input) []Arc {
	return newArcGraph(inputs).feedback()
}

func (ag *arcGraph) feedback() []Arc {
	pos := make(map[string]int, len(ag.nodes))
	for i, n := range ag.greedySequence() {
		pos[n] = i
	}
	var out []Arc
	for _, a := range ag.arcs {
		if pos[a.From] >= pos[a.To] {
			out = append(out, a)
		}
	}
	return out
}

// NodeOrder returns the node identities of all inputs in a topological
// order of the graph formed by consecutive steps, together with the
// [FeedbackArcs] that were dropped to make that graph acyclic. Loops and
// inversions show up as feedback arcs.
//
// The remaining acyclic graph is ordered depth-first, visiting nodes and
// their successors in first-seen order, so the result is deterministic for
// a given input.
func NodeOrder(inputs []Input) ([]string, []Arc) {
	ag := newArcGraph(inputs)
	feedback := ag.feedback()
	dropped := make(map[Arc]bool, len(feedback))
	for _, a := range feedback {
		dropped[a] = true
	}

	visited := make(map[string]bool, len(ag.nodes))
	post := make([]string, 0, len(ag.nodes))
	var dfs func(node string)
	dfs = func(node string) {
		visited[node] = true
		for _, child := range ag.succ[node] {
			if !visited[child] && !dropped[Arc{From: node, To: child}] {
				dfs(child)
			}
		}
		post = append(post, node)
	}
	for _, n := range ag.nodes {
		if !visited[n] {
			dfs(n)
		}
	}
	slices.Reverse(post)
	return post, feedback
}

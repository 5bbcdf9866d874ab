package summarize

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/pangraph/pkg/align"
	"github.com/matzehuels/pangraph/pkg/graph"
)

func steps(nodes ...string) []align.Step {
	out := make([]align.Step, len(nodes))
	for i, n := range nodes {
		out[i] = align.Step{Node: n, Seq: n}
	}
	return out
}

func aligned(t *testing.T, inputs []align.Input) *graph.Graph {
	t.Helper()
	g, _, err := align.Build(context.Background(), inputs, align.Options{Name: "aligned", Workers: 1})
	if err != nil {
		t.Fatalf("align.Build: %v", err)
	}
	return g
}

func runAndValidate(t *testing.T, g *graph.Graph, cutoff int) {
	t.Helper()
	stats, err := New(cutoff, 8, quiet()).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("Run (cutoff %d): %v", cutoff, err)
	}
	if len(stats) == 0 || g.HighestZoom() != len(stats) {
		t.Fatalf("built %d levels, highest zoom %d", len(stats), g.HighestZoom())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// indelInputs makes paths over ten loci where each locus is either the
// reference node, a SNP node or deleted.
func indelInputs(r *rand.Rand) []align.Input {
	inputs := make([]align.Input, 4+r.IntN(8))
	for p := range inputs {
		var nodes []string
		for locus := range 10 {
			switch x := r.IntN(10); {
			case x < 2:
			case x < 4:
				nodes = append(nodes, fmt.Sprintf("T%d", locus))
			default:
				nodes = append(nodes, fmt.Sprintf("A%d", locus))
			}
		}
		inputs[p] = align.Input{Accession: fmt.Sprintf("p%d", p), Steps: steps(nodes...)}
	}
	return inputs
}

func TestRunOnAlignedIndels(t *testing.T) {
	t.Run("GapNodes", func(t *testing.T) {
		inputs := []align.Input{
			{Accession: "1", Steps: steps("A", "B", "C", "E")},
			{Accession: "2", Steps: steps("A", "C", "D", "E")},
			{Accession: "3", Steps: steps("A", "B", "D", "E")},
			{Accession: "4", Steps: steps("A", "E")},
			{Accession: "5", Steps: steps("A", "B", "C", "D", "E")},
			{Accession: "6", Steps: steps("A", "B", "C", "D", "E")},
		}
		for _, cutoff := range []int{0, 1, 2} {
			runAndValidate(t, aligned(t, inputs), cutoff)
		}
	})

	t.Run("Seeded", func(t *testing.T) {
		for seed := range uint64(200) {
			r := rand.New(rand.NewPCG(seed, 7))
			inputs := indelInputs(r)
			cutoff := r.IntN(3)
			t.Run(fmt.Sprint(seed), func(t *testing.T) {
				runAndValidate(t, aligned(t, inputs), cutoff)
			})
		}
	})
}

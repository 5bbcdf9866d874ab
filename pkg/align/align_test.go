package align

import (
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

func path(acc string, nodes ...string) Input {
	in := Input{Accession: acc}
	for _, n := range nodes {
		in.Steps = append(in.Steps, Step{Node: n, Seq: "s" + n, Strand: graph.Forward})
	}
	return in
}

func scenarioA() []Input {
	step := func(node, seq string) Step { return Step{Node: node, Seq: seq, Strand: graph.Forward} }
	return []Input{
		{Accession: "x", Steps: []Step{step("1", "CAAATAAG"), step("2", "A"), step("4", "G")}},
		{Accession: "y", Steps: []Step{step("1", "CAAATAAG"), step("2", "A"), step("4", "G")}},
		{Accession: "z", Steps: []Step{step("1", "CAAATAAG"), step("3", "G"), step("4", "G")}},
	}
}

func node(seq string, accessions ...string) graph.SliceNode {
	return graph.NewSliceNode(seq, accessions...)
}

func TestLCSMerge(t *testing.T) {
	tests := []struct {
		name      string
		profile   []string
		path      []string
		wantNodes []string
		wantDup   []bool
	}{
		{
			name:      "Identical",
			profile:   []string{"1", "2", "3"},
			path:      []string{"1", "2", "3"},
			wantNodes: []string{"1", "2", "3"},
			wantDup:   []bool{false, false, false},
		},
		{
			name:      "Swap",
			profile:   []string{"1", "2", "3"},
			path:      []string{"1", "3", "2"},
			wantNodes: []string{"1", "2", "3", "2"},
			wantDup:   []bool{false, false, false, true},
		},
		{
			name:      "TieKeepsProfileFirst",
			profile:   []string{"a"},
			path:      []string{"b"},
			wantNodes: []string{"a", "b"},
			wantDup:   []bool{false, false},
		},
		{
			name:      "Insertion",
			profile:   []string{"1", "3"},
			path:      []string{"1", "2", "3"},
			wantNodes: []string{"1", "2", "3"},
			wantDup:   []bool{false, false, false},
		},
		{
			name:      "EmptyPath",
			profile:   []string{"1", "2"},
			path:      nil,
			wantNodes: []string{"1", "2"},
			wantDup:   []bool{false, false},
		},
		{
			name:      "EmptyProfile",
			profile:   nil,
			path:      []string{"1", "2"},
			wantNodes: []string{"1", "2"},
			wantDup:   []bool{false, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := []Input{path("p", tt.profile...), path("q", tt.path...)}
			prof := GenerateProfile(inputs, 0)
			if got := prof.Nodes(); !slices.Equal(got, tt.wantNodes) {
				t.Fatalf("nodes = %v, want %v", got, tt.wantNodes)
			}
			for i, e := range prof {
				if e.Duplicate != tt.wantDup[i] {
					t.Errorf("entry %d (%s) duplicate = %v, want %v", i, e.Node, e.Duplicate, tt.wantDup[i])
				}
			}
		})
	}
}

func TestLCSMergeDoesNotModifyProfile(t *testing.T) {
	inputs := []Input{path("p", "1", "2"), path("q", "1", "2")}
	base := GenerateProfile(inputs[:1], 0)
	merged := LCSMerge(base, inputs[1], 1)

	if got := base[0].Paths(); !slices.Equal(got, []int{0}) {
		t.Errorf("base entry paths = %v, want [0]", got)
	}
	if got := merged[0].Paths(); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("merged entry paths = %v, want [0 1]", got)
	}
}

func TestLCSMergeCandidates(t *testing.T) {
	// Profile 1,2,3 merged with 1,3,2: the carried entry for node 2 sits
	// left of a match and so gains the merged path as a candidate.
	prof := GenerateProfile([]Input{path("x", "1", "2", "3"), path("y", "1", "3", "2")}, 0)
	want := [][]int{{0, 1}, {0, 1}, {0, 1}, {0, 1}}
	for i, e := range prof {
		if got := e.Candidates(); !slices.Equal(got, want[i]) {
			t.Errorf("entry %d candidates = %v, want %v", i, got, want[i])
		}
	}
	if got := prof[1].Paths(); !slices.Equal(got, []int{0}) {
		t.Errorf("entry 1 paths = %v, want [0]", got)
	}
	if got := prof[3].Paths(); !slices.Equal(got, []int{1}) {
		t.Errorf("entry 3 paths = %v, want [1]", got)
	}
}

func TestSearchMinimizingReplications(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		trial, err := SearchMinimizingReplications(context.Background(), nil, 0)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if trial.Primary != -1 || len(trial.Profile) != 0 {
			t.Errorf("trial = %+v", trial)
		}
	})

	t.Run("TiesGoToLowestIndex", func(t *testing.T) {
		inputs := []Input{path("x", "1", "2", "3"), path("y", "1", "3", "2")}
		trial, err := SearchMinimizingReplications(context.Background(), inputs, 0)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if trial.Primary != 0 || trial.Duplicates != 1 {
			t.Errorf("primary = %d duplicates = %d, want 0 and 1", trial.Primary, trial.Duplicates)
		}
	})

	t.Run("PicksFewestDuplicates", func(t *testing.T) {
		// With w as primary the repeated node 2 in w is already a profile
		// entry; with x or y as primary w's second 2 is a duplicate.
		inputs := []Input{
			path("x", "1", "2", "3"),
			path("y", "1", "2", "3"),
			path("w", "1", "2", "3", "2"),
		}
		trial, err := SearchMinimizingReplications(context.Background(), inputs, 2)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if trial.Primary != 2 || trial.Duplicates != 0 {
			t.Errorf("primary = %d duplicates = %d, want 2 and 0", trial.Primary, trial.Duplicates)
		}
	})

	t.Run("WorkerCountDoesNotChangeResult", func(t *testing.T) {
		inputs := []Input{
			path("a", "1", "2", "3", "4"),
			path("b", "1", "3", "2", "4"),
			path("c", "1", "4"),
			path("d", "2", "3"),
		}
		one, err := SearchMinimizingReplications(context.Background(), inputs, 1)
		if err != nil {
			t.Fatal(err)
		}
		many, err := SearchMinimizingReplications(context.Background(), inputs, 8)
		if err != nil {
			t.Fatal(err)
		}
		if one.Primary != many.Primary || !slices.Equal(one.Profile.Nodes(), many.Profile.Nodes()) {
			t.Errorf("results differ: %d %v vs %d %v", one.Primary, one.Profile.Nodes(), many.Primary, many.Profile.Nodes())
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := SearchMinimizingReplications(ctx, []Input{path("x", "1")}, 1); err == nil {
			t.Error("expected error from canceled context")
		}
	})
}

func TestToSlices(t *testing.T) {
	tests := []struct {
		name   string
		inputs []Input
		want   []graph.Slice
	}{
		{
			name:   "ScenarioA",
			inputs: scenarioA(),
			want: []graph.Slice{
				graph.NewSlice(node("CAAATAAG", "x", "y", "z")),
				graph.NewSlice(node("A", "x", "y"), node("G", "z")),
				graph.NewSlice(node("G", "x", "y", "z")),
			},
		},
		{
			name:   "SwapProducesGaps",
			inputs: []Input{path("x", "1", "2", "3"), path("y", "1", "3", "2")},
			want: []graph.Slice{
				graph.NewSlice(node("s1", "x", "y")),
				graph.NewSlice(node("s2", "x"), node("", "y")),
				graph.NewSlice(node("s3", "x", "y")),
				graph.NewSlice(node("s2", "y"), node("", "x")),
			},
		},
		{
			name:   "Deletion",
			inputs: []Input{path("x", "1", "2", "3"), path("y", "1", "3")},
			want: []graph.Slice{
				graph.NewSlice(node("s1", "x", "y")),
				graph.NewSlice(node("s2", "x"), node("", "y")),
				graph.NewSlice(node("s3", "x", "y")),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trial, err := SearchMinimizingReplications(context.Background(), tt.inputs, 0)
			if err != nil {
				t.Fatal(err)
			}
			got := ToSlices(trial.Profile, Accessions(tt.inputs))
			if !graph.EqualSlices(got, tt.want) {
				t.Errorf("slices:\n got %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	g, res, err := Build(context.Background(), scenarioA(), Options{Name: "toy"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.PrimaryAccession != "x" || res.Duplicates != 0 {
		t.Errorf("primary = %s duplicates = %d", res.PrimaryAccession, res.Duplicates)
	}
	if g.Name != "toy" || g.Highest().State != graph.Open {
		t.Errorf("graph %s state %v", g.Name, g.Highest().State)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got, _ := g.Slices(0)
	if !graph.EqualSlices(got, res.Slices) {
		t.Errorf("graph slices %v differ from result %v", got, res.Slices)
	}
}

func TestBuildEdgeCases(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		g, res, err := Build(context.Background(), nil, Options{})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if res.Primary != -1 || len(res.Slices) != 0 || g.Highest().NodeCount() != 0 {
			t.Errorf("primary %d slices %d nodes %d", res.Primary, len(res.Slices), g.Highest().NodeCount())
		}
	})

	t.Run("ZeroLengthPath", func(t *testing.T) {
		g, _, err := Build(context.Background(), []Input{path("x", "1", "2"), {Accession: "e"}}, Options{})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if _, ok := g.Specimen("e"); ok {
			t.Error("zero-length path should not appear in the graph")
		}
		if g.Highest().NodeCount() != 2 {
			t.Errorf("nodes = %d, want 2", g.Highest().NodeCount())
		}
	})

	t.Run("ReverseStrand", func(t *testing.T) {
		x := path("x", "1", "2")
		x.Steps[1].Strand = graph.Reverse
		g, _, err := Build(context.Background(), []Input{x, path("y", "1", "2")}, Options{})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		s, _ := g.Specimen("x")
		p, _ := g.Highest().Path(s)
		if p.At(1).Strand != graph.Reverse {
			t.Errorf("strand = %v, want -", p.At(1).Strand)
		}
	})

	t.Run("TableFillsSequences", func(t *testing.T) {
		in := []Input{{Accession: "x", Steps: []Step{{Node: "1"}}}}
		g, _, err := Build(context.Background(), in, Options{Table: map[string]string{"1": "ACGT"}})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if n := g.ActiveNodes(0)[0]; n.Seq != "ACGT" {
			t.Errorf("seq = %q", n.Seq)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		inputs []Input
		table  map[string]string
	}{
		{"EmptyAccession", []Input{path("", "1")}, nil},
		{"DuplicateAccession", []Input{path("x", "1"), path("x", "2")}, nil},
		{"EmptyNode", []Input{{Accession: "x", Steps: []Step{{Node: "", Seq: "A"}}}}, nil},
		{"MissingSequence", []Input{{Accession: "x", Steps: []Step{{Node: "1"}}}}, nil},
		{"BadStrand", []Input{{Accession: "x", Steps: []Step{{Node: "1", Seq: "A", Strand: 'x'}}}}, nil},
		{"ConflictingSequence", []Input{
			{Accession: "x", Steps: []Step{{Node: "1", Seq: "A"}}},
			{Accession: "y", Steps: []Step{{Node: "1", Seq: "C"}}},
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.inputs, tt.table)
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeMalformedInput)
			}
			if _, _, err := Build(context.Background(), tt.inputs, Options{Table: tt.table}); err == nil {
				t.Error("Build accepted malformed input")
			}
		})
	}
}

func TestNodeOrder(t *testing.T) {
	order, feedback := NodeOrder([]Input{path("x", "a", "b", "c"), path("y", "c", "a")})
	if !slices.Equal(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", order)
	}
	if len(feedback) != 1 || feedback[0] != (Arc{From: "c", To: "a"}) {
		t.Errorf("feedback = %v, want [c->a]", feedback)
	}

	order, feedback = NodeOrder(scenarioA())
	if len(feedback) != 0 {
		t.Errorf("acyclic input reported feedback %v", feedback)
	}
	pos := make(map[string]int)
	for i, n := range order {
		pos[n] = i
	}
	if pos["1"] > pos["2"] || pos["3"] > pos["4"] {
		t.Errorf("order %v is not topological", order)
	}
}

func TestFeedbackArcs(t *testing.T) {
	tests := []struct {
		name   string
		inputs []Input
		want   []Arc
	}{
		{"Acyclic", scenarioA(), nil},
		{"SelfLoop", []Input{path("x", "a", "a", "b")}, []Arc{{"a", "a"}}},
		{"Inversion", []Input{path("x", "a", "b", "c"), path("y", "c", "b", "a")}, []Arc{{"c", "b"}, {"b", "a"}}},
		{"CycleWithTail", []Input{path("x", "a", "b", "c"), path("y", "b", "d", "a")}, []Arc{{"d", "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FeedbackArcs(tt.inputs)
			if !slices.Equal(got, tt.want) {
				t.Errorf("FeedbackArcs = %v, want %v", got, tt.want)
			}
			order, feedback := NodeOrder(tt.inputs)
			if !slices.Equal(feedback, got) {
				t.Errorf("NodeOrder feedback = %v, want %v", feedback, got)
			}
			pos := make(map[string]int)
			for i, n := range order {
				pos[n] = i
			}
			dropped := make(map[Arc]bool)
			for _, a := range got {
				dropped[a] = true
			}
			for _, in := range tt.inputs {
				for j := 1; j < len(in.Steps); j++ {
					a := Arc{From: in.Steps[j-1].Node, To: in.Steps[j].Node}
					if !dropped[a] && pos[a.From] >= pos[a.To] {
						t.Errorf("kept arc %v points backwards in %v", a, order)
					}
				}
			}
		})
	}
}

func TestBuildRecordsNodeOrder(t *testing.T) {
	_, res, err := Build(context.Background(), []Input{path("x", "a", "b", "c"), path("y", "c", "a")}, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !slices.Equal(res.NodeOrder, []string{"a", "b", "c"}) {
		t.Errorf("NodeOrder = %v", res.NodeOrder)
	}
	if len(res.FeedbackArcs) != 1 || res.FeedbackArcs[0] != (Arc{From: "c", To: "a"}) {
		t.Errorf("FeedbackArcs = %v, want [c->a]", res.FeedbackArcs)
	}
}

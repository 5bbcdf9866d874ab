package signature

import (
	"strings"
	"testing"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

const matrix = `0 0 1
1 1 0

0 1 0
0 1 0
1 1 1
`

func TestReadAlleles(t *testing.T) {
	got, err := ReadAlleles(strings.NewReader(matrix))
	if err != nil {
		t.Fatalf("ReadAlleles: %v", err)
	}
	want := [][]int{
		{0, 1, 0, 0, 1},
		{0, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("individuals = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if Key(got[i]) != Key(want[i]) {
			t.Errorf("individual %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadAllelesMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Ragged", "0 1 0\n1 1\n"},
		{"NotANumber", "0 x 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAlleles(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeMalformedInput)
			}
		})
	}
}

func TestWindows(t *testing.T) {
	tests := []struct {
		loci, size, want int
	}{
		{40, 20, 2},
		{41, 20, 2},
		{19, 20, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := Windows(tt.loci, tt.size); got != tt.want {
			t.Errorf("Windows(%d, %d) = %d, want %d", tt.loci, tt.size, got, tt.want)
		}
	}
}

func TestSlices(t *testing.T) {
	individuals, _ := ReadAlleles(strings.NewReader(matrix))
	got, err := Slices(individuals, 2)
	if err != nil {
		t.Fatalf("Slices: %v", err)
	}
	want := []graph.Slice{
		graph.NewSlice(graph.NewSliceNode("0,1", "0", "1"), graph.NewSliceNode("1,0", "2")),
		graph.NewSlice(graph.NewSliceNode("0,0", "0", "2"), graph.NewSliceNode("1,1", "1")),
	}
	if !graph.EqualSlices(got, want) {
		t.Errorf("Slices = %v, want %v", got, want)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		alleles []int
		want    string
	}{
		{nil, ""},
		{[]int{0}, "0"},
		{[]int{1, 23}, "1,23"},
		{[]int{12, 3}, "12,3"},
		{[]int{-1, 0, 2}, "-1,0,2"},
	}
	for _, tt := range tests {
		if got := Key(tt.alleles); got != tt.want {
			t.Errorf("Key(%v) = %q, want %q", tt.alleles, got, tt.want)
		}
	}
}

func TestSlicesMultiDigit(t *testing.T) {
	got, err := Slices([][]int{{1, 23}, {12, 3}}, 2)
	if err != nil {
		t.Fatalf("Slices: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("windows = %d, want 1", len(got))
	}
	if n := got[0].Len(); n != 2 {
		t.Fatalf("nodes = %d, want 2 distinct signatures", n)
	}
	want := graph.NewSlice(graph.NewSliceNode("1,23", "0"), graph.NewSliceNode("12,3", "1"))
	if !graph.EqualSlices(got, []graph.Slice{want}) {
		t.Errorf("Slices = %v, want %v", got, want)
	}
}

func TestBuild(t *testing.T) {
	individuals, _ := ReadAlleles(strings.NewReader(matrix))
	g, err := Build("haplo", individuals, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.Highest().NodeCount(); got != 4 {
		t.Errorf("nodes = %d, want 4", got)
	}
	if got := g.Highest().PathCount(); got != 3 {
		t.Errorf("paths = %d, want 3", got)
	}
	for _, p := range g.Highest().Paths() {
		if p.Len() != 2 {
			t.Errorf("path %s has %d steps, want 2", p.Accession, p.Len())
		}
	}
	for _, n := range g.ActiveNodes(0) {
		if n.Start != n.End {
			t.Errorf("node %s spans %d-%d", n.Seq, n.Start, n.End)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name        string
		individuals [][]int
		size        int
	}{
		{"ShortMatrix", [][]int{{1, 0}, {0, 1}}, 20},
		{"ZeroBlock", [][]int{{1, 0}}, 0},
		{"Ragged", [][]int{{1, 0}, {1}}, 1},
		{"Empty", nil, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build("x", tt.individuals, tt.size); !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeMalformedInput)
			}
		})
	}
}

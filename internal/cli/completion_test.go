package cli

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/pangraph/pkg/store"
)

func complete(t *testing.T, args ...string) string {
	t.Helper()
	c, _ := newTestCLI(t)
	var buf bytes.Buffer
	root := c.RootCommand()
	root.SetArgs(append([]string{"__complete"}, args...))
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("__complete %v: %v", args, err)
	}
	return buf.String()
}

func TestCompleteFiles(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"AlignInput", []string{"align", ""}, []string{"json", ":8"}},
		{"HaploInput", []string{"haplo", ""}, []string{"txt", "tsv", ":8"}},
		{"SummarizeInput", []string{"summarize", ""}, []string{"json", ":8"}},
		{"SecondArgument", []string{"align", "paths.json", ""}, []string{":4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := complete(t, tt.args...)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("completion %q missing %q", got, w)
				}
			}
		})
	}
}

func TestStoredCandidates(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	g := stageGraph(t)
	if err := g.Seal(0); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveGraph(ctx, st, g); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		toComplete string
		want       []string
	}{
		{"GraphIDs", nil, "", []string{g.ID}},
		{"GraphIDPrefix", nil, g.ID[:1], []string{g.ID}},
		{"NoMatch", nil, "~", nil},
		{"Zooms", []string{g.ID}, "", []string{"0"}},
		{"UnknownGraph", []string{"missing"}, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storedCandidates(ctx, st, tt.args, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("storedCandidates(%v, %q) = %v, want %v", tt.args, tt.toComplete, got, tt.want)
			}
		})
	}
}

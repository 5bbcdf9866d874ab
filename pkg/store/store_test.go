package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
	"github.com/matzehuels/pangraph/pkg/summarize"
)

func summarized(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.FromSlices("st", []graph.Slice{
		graph.NewSlice(graph.NewSliceNode("U", "1", "2", "3", "4")),
		graph.NewSlice(graph.NewSliceNode("N", "1", "2", "4"), graph.NewSliceNode("M", "3")),
		graph.NewSlice(graph.NewSliceNode("D", "1", "2", "3", "4")),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := summarize.New(0, 2, nil).Run(context.Background(), g); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestMemoryStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)
	g := summarized(t)

	n, err := SaveGraph(ctx, s, g)
	if err != nil {
		t.Fatalf("SaveGraph: %v", err)
	}
	if n != len(g.Levels()) {
		t.Errorf("saved %d levels, want %d", n, len(g.Levels()))
	}

	snap, err := s.LoadLevel(ctx, g.ID, 1)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if snap.Zoom != 1 || !snap.Sealed {
		t.Errorf("loaded zoom=%d sealed=%v", snap.Zoom, snap.Sealed)
	}

	back, err := LoadGraph(ctx, s, g.ID)
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	if back.HighestZoom() != g.HighestZoom() || back.NodeCount() != g.NodeCount() {
		t.Errorf("restored zoom=%d nodes=%d", back.HighestZoom(), back.NodeCount())
	}

	ids, _ := s.Graphs(ctx)
	if len(ids) != 1 || ids[0] != g.ID {
		t.Errorf("Graphs = %v", ids)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := summarized(t)
	snap, _ := g.Snapshot(0)
	if err := s.SaveLevel(ctx, snap); err != nil {
		t.Fatal(err)
	}
	snap.Name = "changed"
	got, _ := s.LoadLevel(ctx, g.ID, 0)
	if got.Name != "st" {
		t.Errorf("stored snapshot aliased caller memory: name %q", got.Name)
	}
	got.Name = "again"
	if again, _ := s.LoadLevel(ctx, g.ID, 0); again.Name != "st" {
		t.Errorf("loaded snapshot aliases store memory: name %q", again.Name)
	}
}

func TestMemoryStoreErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tests := []struct {
		name string
		run  func() error
		want errors.Code
	}{
		{"MissingLevel", func() error { _, err := s.LoadLevel(ctx, "nope", 0); return err }, errors.ErrCodeNotFound},
		{"MissingGraph", func() error { _, err := LoadGraph(ctx, s, "nope"); return err }, errors.ErrCodeNotFound},
		{"NoGraphID", func() error { return s.SaveLevel(ctx, &graph.Snapshot{Sealed: true}) }, errors.ErrCodeMalformedInput},
		{"OpenLevel", func() error { return s.SaveLevel(ctx, &graph.Snapshot{GraphID: "g"}) }, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestSaveGraphSkipsOpenLevel(t *testing.T) {
	ctx := context.Background()
	g, err := graph.FromSlices("open", []graph.Slice{graph.NewSlice(graph.NewSliceNode("A", "x"))})
	if err != nil {
		t.Fatal(err)
	}
	n, err := SaveGraph(ctx, NewMemoryStore(), g)
	if err != nil || n != 0 {
		t.Errorf("SaveGraph = %d, %v; want 0 levels", n, err)
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("g%d", i)
			if err := s.SaveLevel(ctx, &graph.Snapshot{GraphID: id, Sealed: true}); err != nil {
				t.Error(err)
			}
			if _, err := s.Levels(ctx, id); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	ids, _ := s.Graphs(ctx)
	if len(ids) != 8 {
		t.Errorf("graphs = %d, want 8", len(ids))
	}
	if err := s.DeleteGraph(ctx, "g0"); err != nil {
		t.Fatal(err)
	}
	if levels, _ := s.Levels(ctx, "g0"); len(levels) != 0 {
		t.Errorf("levels after delete = %d", len(levels))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{})
	if err != nil || s.Backend() != BackendMemory {
		t.Fatalf("Open default = %v, %v", s, err)
	}
	if _, err := Open(ctx, Options{Backend: BackendMongo}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("mongo without uri: err = %v", err)
	}
	if _, err := Open(ctx, Options{Backend: "sqlite"}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown backend: err = %v", err)
	}
}

// Package store persists sealed zoom levels.
//
// A level is stored as a [graph.Snapshot] keyed by graph ID and zoom. Once a
// level is sealed its snapshot never changes, so a store can be filled level
// by level while summarization proceeds and a graph can later be restored
// from any prefix of its levels.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
	"github.com/matzehuels/pangraph/pkg/observability"
)

// Store is a persistence backend for level snapshots.
type Store interface {
	// SaveLevel stores snap, replacing an earlier snapshot of the same
	// graph and zoom.
	SaveLevel(ctx context.Context, snap *graph.Snapshot) error
	// LoadLevel returns the snapshot of one level or a NOT_FOUND error.
	LoadLevel(ctx context.Context, graphID string, zoom int) (*graph.Snapshot, error)
	// Levels returns every stored level of a graph ordered by zoom.
	Levels(ctx context.Context, graphID string) ([]*graph.Snapshot, error)
	// Graphs lists the IDs of stored graphs in ascending order.
	Graphs(ctx context.Context) ([]string, error)
	DeleteGraph(ctx context.Context, graphID string) error
	Close(ctx context.Context) error
	// Backend names the implementation for logs and hooks.
	Backend() string
}

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	URI      string
	Database string
}

// Open creates the store named by opts.Backend. An empty backend selects
// memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendMongo:
		s, err := NewMongoStore(ctx, opts.URI, opts.Database)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", opts.Backend)
}

// SaveGraph stores every sealed level of g and returns how many were saved.
// The open highest level, if any, is skipped.
func SaveGraph(ctx context.Context, s Store, g *graph.Graph) (int, error) {
	saved := 0
	for _, lvl := range g.Levels() {
		if lvl.State != graph.Sealed {
			continue
		}
		snap, err := g.Snapshot(lvl.Zoom)
		if err != nil {
			return saved, err
		}
		start := time.Now()
		err = s.SaveLevel(ctx, snap)
		observability.Store().OnSave(ctx, s.Backend(), lvl.Zoom, time.Since(start), err)
		if err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// LoadGraph restores a graph from all of its stored levels.
func LoadGraph(ctx context.Context, s Store, graphID string) (*graph.Graph, error) {
	start := time.Now()
	snaps, err := s.Levels(ctx, graphID)
	zoom := len(snaps) - 1
	observability.Store().OnLoad(ctx, s.Backend(), zoom, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %s not stored", graphID)
	}
	return graph.Restore(snaps)
}

// checkSnapshot rejects snapshots that must not be persisted.
func checkSnapshot(snap *graph.Snapshot) error {
	if snap == nil || snap.GraphID == "" {
		return errors.New(errors.ErrCodeMalformedInput, "snapshot without graph id")
	}
	if !snap.Sealed {
		return errors.Wrap(errors.ErrCodeUnsupported, graph.ErrNotWritable, "zoom %d of graph %s is still open", snap.Zoom, snap.GraphID)
	}
	return nil
}

func notFound(graphID string, zoom int) error {
	return errors.New(errors.ErrCodeNotFound, "graph %s has no zoom %d", graphID, zoom)
}

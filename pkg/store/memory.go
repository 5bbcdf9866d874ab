package store

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

// MemoryStore keeps encoded snapshots in memory. It is safe for concurrent
// use. Snapshots are copied on the way in and out.
type MemoryStore struct {
	mu     sync.RWMutex
	levels map[string]map[int][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{levels: make(map[string]map[int][]byte)}
}

func (m *MemoryStore) Backend() string { return BackendMemory }

func (m *MemoryStore) SaveLevel(ctx context.Context, snap *graph.Snapshot) error {
	if err := checkSnapshot(snap); err != nil {
		return err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode zoom %d", snap.Zoom)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byZoom, ok := m.levels[snap.GraphID]
	if !ok {
		byZoom = make(map[int][]byte)
		m.levels[snap.GraphID] = byZoom
	}
	byZoom[snap.Zoom] = raw
	return nil
}

func (m *MemoryStore) LoadLevel(ctx context.Context, graphID string, zoom int) (*graph.Snapshot, error) {
	m.mu.RLock()
	raw, ok := m.levels[graphID][zoom]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(graphID, zoom)
	}
	return decode(raw)
}

func (m *MemoryStore) Levels(ctx context.Context, graphID string) ([]*graph.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byZoom := m.levels[graphID]
	var out []*graph.Snapshot
	for _, zoom := range slices.Sorted(maps.Keys(byZoom)) {
		snap, err := decode(byZoom[zoom])
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

func (m *MemoryStore) Graphs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.levels)), nil
}

func (m *MemoryStore) DeleteGraph(ctx context.Context, graphID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.levels, graphID)
	return nil
}

func (m *MemoryStore) Close(ctx context.Context) error { return nil }

func decode(raw []byte) (*graph.Snapshot, error) {
	var snap graph.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode snapshot")
	}
	return &snap, nil
}

var _ Store = (*MemoryStore)(nil)

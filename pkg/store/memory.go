package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/appgraph/pkg/flow"
)

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	order     []string
	now       func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		snapshots: make(map[string]Snapshot),
		now:       time.Now,
	}
}

func (m *Memory) Save(ctx context.Context, l flow.Layout) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	snap := NewSnapshot(cloneLayout(l), m.now())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snap.ID] = snap
	m.order = append(m.order, snap.ID)
	return snap, nil
}

func (m *Memory) Get(ctx context.Context, id string) (Snapshot, error) {
	if err := ValidateID(id); err != nil {
		return Snapshot{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[id]
	if !ok {
		return Snapshot{}, NotFound(id)
	}
	snap.Layout = cloneLayout(snap.Layout)
	return snap, nil
}

func (m *Memory) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, 0, min(limit, len(m.order)))
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		snap := m.snapshots[m.order[i]]
		snap.Layout = cloneLayout(snap.Layout)
		out = append(out, snap)
	}
	return out, nil
}

// Close does nothing for the memory store.
func (m *Memory) Close(context.Context) error { return nil }

func cloneLayout(l flow.Layout) flow.Layout {
	l.Nodes = slices.Clone(l.Nodes)
	l.Edges = slices.Clone(l.Edges)
	return l
}

var _ Store = (*Memory)(nil)

package store

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Backend, used by tests and throwaway runs.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func memoryKey(kind, key string) string { return kind + "/" + key }

// Get returns a copy of the stored record.
func (m *Memory) Get(ctx context.Context, kind, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[memoryKey(kind, key)]
	return slices.Clone(data), ok, nil
}

// Apply performs ops under one lock, all or none.
func (m *Memory) Apply(ctx context.Context, ops []Op) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		k := memoryKey(op.Kind, op.Key)
		if op.Delete {
			delete(m.records, k)
			continue
		}
		m.records[k] = slices.Clone(op.Data)
	}
	return nil
}

// Snapshot copies every record, keyed "kind/key". Tests use it to assert
// that rejected commands leave storage unchanged.
func (m *Memory) Snapshot() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.records))
	for k, v := range m.records {
		out[k] = slices.Clone(v)
	}
	return out
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

package store

import (
	"context"
	"sync"
)

// =============================================================================
// MEMORY BACKEND - In-memory blob (for testing/dev)
// =============================================================================

// Memory keeps the snapshot blob in memory. Nothing survives the
// process; useful for tests and the ":memory:" server mode.
type Memory struct {
	mu   sync.RWMutex
	blob []byte
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.blob == nil {
		return nil, nil
	}
	out := make([]byte, len(m.blob))
	copy(out, m.blob)
	return out, nil
}

func (m *Memory) Save(_ context.Context, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = make([]byte, len(blob))
	copy(m.blob, blob)
	return nil
}

func (m *Memory) Close() error { return nil }

// Seed pre-loads a blob before Open, used by migration tests.
func (m *Memory) Seed(blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
}

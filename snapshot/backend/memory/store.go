package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/mwantia/vshell/data/errors"
)

// MemoryStore keeps snapshots in process memory. It is mainly used by
// tests and by shells that never persist beyond their lifetime.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots: make(map[string][]byte),
	}
}

// Returns the identifier name defined for this store
func (*MemoryStore) Name() string {
	return "memory"
}

func (ms *MemoryStore) Open(ctx context.Context) error {
	return nil
}

func (ms *MemoryStore) Close(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	clear(ms.slots)
	return nil
}

func (ms *MemoryStore) Write(ctx context.Context, slot string, content []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.slots[slot] = bytes.Clone(content)
	return nil
}

func (ms *MemoryStore) Read(ctx context.Context, slot string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	content, exists := ms.slots[slot]
	if !exists {
		return nil, errors.SnapshotNotExist(nil, slot)
	}
	return bytes.Clone(content), nil
}

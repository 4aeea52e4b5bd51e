package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Memory is a process-local Products implementation used in tests and
// single-node development.
type Memory struct {
	mu      sync.Mutex
	version int64
	items   map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{items: map[string][]byte{}}
}

func (m *Memory) GetProduct(_ context.Context, id uuid.UUID, dst any) bool {
	return m.get(productPrefix+id.String(), dst)
}

func (m *Memory) SetProduct(_ context.Context, id uuid.UUID, v any) {
	m.set(productPrefix+id.String(), v)
}

func (m *Memory) GetList(_ context.Context, key string, dst any) bool {
	m.mu.Lock()
	v := m.version
	m.mu.Unlock()
	return m.get(listKey(v, key), dst)
}

func (m *Memory) SetList(_ context.Context, key string, val any) {
	m.mu.Lock()
	v := m.version
	m.mu.Unlock()
	m.set(listKey(v, key), val)
}

func (m *Memory) Invalidate(_ context.Context, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	delete(m.items, productPrefix+id.String())
}

func (m *Memory) get(key string, dst any) bool {
	m.mu.Lock()
	b, ok := m.items[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(b, dst) == nil
}

func (m *Memory) set(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.items[key] = b
	m.mu.Unlock()
}

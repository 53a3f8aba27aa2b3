package sink

import (
	"context"
	"sync"
)

type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemory() *Memory { return &Memory{files: map[string][]byte{}} }

func (m *Memory) Driver() string { return "memory" }

func (m *Memory) Check(context.Context) error { return nil }

func (m *Memory) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	m.files[name] = cp
	m.mu.Unlock()
	return "memory://" + name, nil
}

func (m *Memory) Get(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.files[name]
	return b, ok
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

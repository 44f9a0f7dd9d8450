package store

import "sync"

// MemoryBackend keeps slots in process memory. It is the fallback when the
// durable backend is unavailable and the backend used by tests.
type MemoryBackend struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) Put(key string, value []byte) error {
	m.mu.Lock()
	m.slots[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

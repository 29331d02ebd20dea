package store

import "sync"

// MemoryKV is an in-memory KV used by tests and anywhere the engine must run
// without a real storage backend.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]string)}
}

func (s *MemoryKV) Get(key, fallback string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if value, ok := s.entries[key]; ok {
		return value, nil
	}
	return fallback, nil
}

func (s *MemoryKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

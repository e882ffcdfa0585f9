package adb

import "sync"

// ScratchStore is a keyed in-memory value store. It backs clipboard emulation:
// set_clipboard stores text here and paste types it back via `input text`,
// instead of juggling temp files on the device. Values never outlive the
// process.
type ScratchStore struct {
	mu sync.Mutex
	m  map[string]string
}

// NewScratchStore creates an empty store.
func NewScratchStore() *ScratchStore {
	return &ScratchStore{m: make(map[string]string)}
}

// Set stores a value under key.
func (s *ScratchStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

// Get returns the value for key and whether it was present.
func (s *ScratchStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

// Clear removes the value for key.
func (s *ScratchStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

package crypto

import "sync"

// memoryKeyStore is the in-process implementation of [KeyStore]: a mutex
// guarded map of userID → key material. Entries exist only in memory and
// die with the process.
type memoryKeyStore struct {
	mu   sync.RWMutex
	keys map[int64][]byte
}

// NewKeyStore constructs an empty in-memory [KeyStore].
func NewKeyStore() KeyStore {
	return &memoryKeyStore{keys: make(map[int64][]byte)}
}

// Set implements [KeyStore]. A second login for the same user overwrites
// the previous entry; there is no session pooling.
func (s *memoryKeyStore) Set(userID int64, material []byte) {
	cp := make([]byte, len(material))
	copy(cp, material)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[userID] = cp
}

// Get implements [KeyStore]. The returned slice is a copy; callers cannot
// mutate the cached material.
func (s *memoryKeyStore) Get(userID int64) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	material, ok := s.keys[userID]
	if !ok {
		return nil, false
	}

	cp := make([]byte, len(material))
	copy(cp, material)
	return cp, true
}

// Clear implements [KeyStore]. The stored bytes are zeroed before the entry
// is dropped so the password does not linger in freed memory.
func (s *memoryKeyStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if material, ok := s.keys[userID]; ok {
		for i := range material {
			material[i] = 0
		}
		delete(s.keys, userID)
	}
}

// ClearAll implements [KeyStore].
func (s *memoryKeyStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, material := range s.keys {
		for i := range material {
			material[i] = 0
		}
		delete(s.keys, id)
	}
}

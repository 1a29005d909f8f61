package memory

import (
	"sync"

	"github.com/samber/lo"

	"github.com/relaychat/relaychat-server/internal/store"
)

// Store is an in-memory profile store. All access goes through an RWMutex so
// profiles can be read and written from many connection handlers at once.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]store.Profile
}

// New constructs an empty store.
func New() *Store {
	return &Store{
		profiles: make(map[string]store.Profile),
	}
}

// Create inserts a profile under its id.
func (s *Store) Create(p store.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

// Get returns a copy of the profile for id.
func (s *Store) Get(id string) (store.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	return p, ok
}

// Mutate applies fn to the stored profile under the write lock, making the
// whole change visible atomically.
func (s *Store) Mutate(id string, fn func(*store.Profile)) (store.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return store.Profile{}, false
	}
	fn(&p)
	s.profiles[id] = p
	return p, true
}

// List returns all profiles in arbitrary order.
func (s *Store) List() []store.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Values(s.profiles)
}

// Len reports the number of stored profiles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

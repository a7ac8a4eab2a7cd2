package favorites

import (
	"sync"

	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/google/uuid"
)

// Store holds the favorites list: product snapshots keyed by product id,
// at most one entry per id. Unlike the cart there are no quantities.
// The id-uniqueness invariant is enforced here, not by callers.
//
// Same subscribe/notify contract as the cart store: every mutation
// publishes the full post-mutation state.
type Store struct {
	mu      sync.Mutex
	seq     uint64
	entries []domain.Product
	subs    map[string]func(uint64, []domain.Product)
}

func New() *Store {
	return &Store{
		subs: make(map[string]func(uint64, []domain.Product)),
	}
}

// Restore seeds the store from a persisted snapshot without notifying
// subscribers. Duplicate ids in the snapshot are dropped.
func (s *Store) Restore(entries []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
	seen := make(map[int64]struct{}, len(entries))
	for _, p := range entries {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		s.entries = append(s.entries, p)
	}
}

// Add puts a product in the favorites. Adding an id that is already
// present is a no-op, so callers need not check membership first.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == p.ID {
			s.mu.Unlock()
			return
		}
	}
	s.entries = append(s.entries, p)
	s.notifyLocked()
}

// Remove deletes the entry with the given product id. No-op if absent.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// Contains reports whether the product id is favorited.
func (s *Store) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			return true
		}
	}
	return false
}

// Toggle adds the product if absent and removes it if present, the way
// the heart button behaves. It reports whether the product is a
// favorite afterwards.
func (s *Store) Toggle(p domain.Product) bool {
	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == p.ID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.notifyLocked()
			return false
		}
	}
	s.entries = append(s.entries, p)
	s.notifyLocked()
	return true
}

// Entries returns a copy of the favorites in insertion order.
func (s *Store) Entries() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.entries...)
}

// Subscribe registers fn to receive the full favorites state after every
// mutation, stamped with a sequence number incremented under the store
// lock. Snapshots from concurrent mutations can be delivered out of
// order; the highest seq identifies the latest state. The returned
// function cancels the subscription.
func (s *Store) Subscribe(fn func(seq uint64, entries []domain.Product)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.subs[token] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, token)
	}
}

func (s *Store) notifyLocked() {
	s.seq++
	seq := s.seq
	snapshot := append([]domain.Product(nil), s.entries...)
	subs := make([]func(uint64, []domain.Product), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(seq, snapshot)
	}
}

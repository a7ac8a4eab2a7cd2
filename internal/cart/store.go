package cart

import (
	"sync"

	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store holds the shopping cart: an ordered list of cart lines, one per
// distinct product id, in first-added order. Mutators never fail and are
// atomic; a line's quantity never observably reaches 0 (it is removed
// instead).
//
// The store is persistence-agnostic. Every mutation publishes the
// post-mutation state to subscribers; a persistence adapter subscribes
// and serializes on its own schedule.
type Store struct {
	mu    sync.Mutex
	seq   uint64
	lines []domain.CartLine
	subs  map[string]func(uint64, []domain.CartLine)
}

func New() *Store {
	return &Store{
		subs: make(map[string]func(uint64, []domain.CartLine)),
	}
}

// Restore seeds the store from a persisted snapshot. Meant for startup;
// it does not notify subscribers.
func (s *Store) Restore(lines []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append([]domain.CartLine(nil), lines...)
}

// Add puts a product in the cart. If a line for the product already
// exists its quantity goes up by one, otherwise a new line with
// quantity 1 is appended.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Product.ID == p.ID {
			s.lines[i].Quantity++
			s.notifyLocked()
			return
		}
	}
	s.lines = append(s.lines, domain.CartLine{Product: p, Quantity: 1})
	s.notifyLocked()
}

// Remove deletes the line for the given product id. No-op if absent.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Product.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// Contains reports whether a line with the given product id exists.
func (s *Store) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].Product.ID == id {
			return true
		}
	}
	return false
}

// IncreaseQuantity bumps the line's quantity by one. No-op if absent.
func (s *Store) IncreaseQuantity(id int64) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Product.ID == id {
			s.lines[i].Quantity++
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// DecreaseQuantity lowers the line's quantity by one; a line at
// quantity 1 is removed entirely rather than stored at 0. No-op if
// absent.
func (s *Store) DecreaseQuantity(id int64) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Product.ID == id {
			if s.lines[i].Quantity <= 1 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			} else {
				s.lines[i].Quantity--
			}
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.notifyLocked()
}

// Lines returns a copy of the cart lines in first-added order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.lines...)
}

// Subtotal returns the sum of price times quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Total())
	}
	return total
}

// ItemCount returns the total number of selected items across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Subscribe registers fn to receive the full cart state after every
// mutation, stamped with a sequence number incremented under the store
// lock. Delivery happens outside the lock, so snapshots from concurrent
// mutations can arrive out of order; a consumer that needs the latest
// state keeps the highest seq it has seen. The returned function cancels
// the subscription.
func (s *Store) Subscribe(fn func(seq uint64, lines []domain.CartLine)) (unsubscribe func()) {
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

// notifyLocked stamps and snapshots state under the lock, releases it,
// then invokes the callbacks, so a subscriber may call back into the
// store.
func (s *Store) notifyLocked() {
	s.seq++
	seq := s.seq
	snapshot := append([]domain.CartLine(nil), s.lines...)
	subs := make([]func(uint64, []domain.CartLine), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(seq, snapshot)
	}
}

// Package cartstore is the shopper-side cart: an owned state container with
// an explicit operation set, persisted wholesale on every change and mirrored
// from concurrent writers last-writer-wins.
package cartstore

import (
	"log/slog"
	"sync"
)

type Item struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	BusinessID   string  `json:"businessId"`
	BusinessName string  `json:"businessName"`
}

// Persister saves and restores the full item list. Save is called on every
// mutation; Load once at startup and again when the backing state changes
// underneath us.
type Persister interface {
	Save(items []Item) error
	Load() ([]Item, error)
}

type Store struct {
	mu      sync.Mutex
	items   []Item
	persist Persister
	subs    []func([]Item)
}

// New builds a store and rehydrates it from p. A nil Persister keeps the
// cart memory-only. Load errors degrade to an empty cart, matching the
// forgiving rehydration of the original storage layer.
func New(p Persister) *Store {
	s := &Store{persist: p}
	if p != nil {
		if items, err := p.Load(); err == nil && items != nil {
			s.items = items
		}
	}
	return s
}

// Subscribe registers fn to run with a snapshot after every state change.
func (s *Store) Subscribe(fn func([]Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Add inserts item, defaulting quantity to 1. If the product is already in
// the cart its quantity is incremented by item.Quantity instead.
func (s *Store) Add(item Item) {
	s.mu.Lock()
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	found := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, item)
	}
	s.afterChangeLocked()
}

func (s *Store) Remove(productID string) {
	s.mu.Lock()
	next := s.items[:0]
	for _, it := range s.items {
		if it.ProductID != productID {
			next = append(next, it)
		}
	}
	s.items = next
	s.afterChangeLocked()
}

// SetQuantity clamps to a minimum of 1; removing is a separate operation.
func (s *Store) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.afterChangeLocked()
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.afterChangeLocked()
}

// Replace overwrites state wholesale with items from another writer.
// Last writer wins; no merge. Does not persist: the items came from the
// backing file, and writing them back would re-trigger the watcher.
func (s *Store) Replace(items []Item) {
	s.mu.Lock()
	s.items = items
	s.notifyAndUnlock()
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// afterChangeLocked persists, then releases the lock and notifies.
// Persistence stays fire-and-forget so a full disk never blocks the cart,
// but the failure is logged.
func (s *Store) afterChangeLocked() {
	if s.persist != nil {
		if err := s.persist.Save(s.items); err != nil {
			slog.Warn("cart persist failed", "error", err)
		}
	}
	s.notifyAndUnlock()
}

// notifyAndUnlock snapshots state, releases the lock, and only then calls
// subscribers, so a subscriber may call back into the store.
func (s *Store) notifyAndUnlock() {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	subs := s.subs
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// Package cart owns the shopping cart: an ordered list of line items,
// unique by product id, persisted to a key-value slot after every mutation.
package cart

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/khayr-gifts/khayr/internal/domain"
	"github.com/khayr-gifts/khayr/internal/infra/observability"
)

// DefaultSlot is the storage key the original storefront used.
const DefaultSlot = "khayrCart"

// Store holds the cart for one session.
//
// Invariant: no two items share a ProductID — Add merges quantities.
// Every successful mutation serializes the whole item list into the slot;
// there are no partial writes.
type Store struct {
	mu      sync.Mutex
	items   []domain.LineItem
	kv      domain.KVStore
	catalog domain.ProductFinder
	slot    string
}

// New restores a cart store from kv. An absent or malformed slot starts the
// cart empty — restore never fails to the caller.
func New(kv domain.KVStore, catalog domain.ProductFinder, slot string) *Store {
	if slot == "" {
		slot = DefaultSlot
	}
	s := &Store{kv: kv, catalog: catalog, slot: slot}
	s.restore()
	return s
}

// restore reads the persisted slot. Corruption degrades to an empty cart.
func (s *Store) restore() {
	data, err := s.kv.Get(s.slot)
	if err != nil {
		return // absent slot: fresh cart
	}
	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("cart: malformed slot %q, starting empty: %v", s.slot, err)
		observability.CartRestoreCorrupt.Inc()
		return
	}
	s.items = items
}

// Add puts quantity units of the product into the cart. The product must
// resolve in the catalog at call time; an unknown id returns
// ErrProductNotFound and leaves the cart untouched. An existing entry has
// its quantity incremented; otherwise a snapshot entry is appended.
func (s *Store) Add(productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	product, err := s.catalog.FindByID(productID)
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(productID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, domain.SnapshotLineItem(product, quantity))
	}

	observability.CartMutations.WithLabelValues("add").Inc()
	return s.persist()
}

// Remove deletes the entry for productID. Removing an absent entry is a no-op.
func (s *Store) Remove(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(productID)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)

	observability.CartMutations.WithLabelValues("remove").Inc()
	return s.persist()
}

// SetQuantity sets the quantity on the matching entry. A quantity below 1 is
// equivalent to Remove. An absent entry returns ErrItemNotInCart and leaves
// the cart untouched.
func (s *Store) SetQuantity(productID, quantity int) error {
	if quantity < 1 {
		return s.Remove(productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(productID)
	if i < 0 {
		return domain.ErrItemNotInCart
	}
	s.items[i].Quantity = quantity

	observability.CartMutations.WithLabelValues("set_quantity").Inc()
	return s.persist()
}

// Clear empties the cart and persists the empty list.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil

	observability.CartMutations.WithLabelValues("clear").Inc()
	return s.persist()
}

// ─── Queries ────────────────────────────────────────────────────────────────

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItemCount returns the sum of quantities across all entries.
// Drives the cart badge.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, li := range s.items {
		total += li.Quantity
	}
	return total
}

// TotalPrice returns the sum of price × quantity across all entries.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, li := range s.items {
		total += li.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has zero entries.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// ─── Internals ──────────────────────────────────────────────────────────────

// index returns the position of productID, or -1. Caller holds s.mu.
func (s *Store) index(productID int) int {
	for i, li := range s.items {
		if li.ProductID == productID {
			return i
		}
	}
	return -1
}

// persist serializes the whole item list into the slot. Caller holds s.mu.
func (s *Store) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("serialize cart: %w", err)
	}
	if err := s.kv.Put(s.slot, data); err != nil {
		observability.CartPersistFailures.Inc()
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// KVStore abstracts the persistent key-value storage the cart is written to.
// Writes replace the whole slot; there are no partial writes.
type KVStore interface {
	// Get returns the slot contents, or ErrSlotNotFound.
	Get(key string) ([]byte, error)

	// Put replaces the slot contents atomically.
	Put(key string, value []byte) error

	// Delete removes the slot. Removing an absent slot is not an error.
	Delete(key string) error
}

// ProductFinder is the read-only catalog lookup the cart and renderer use.
type ProductFinder interface {
	// FindByID returns the product or ErrProductNotFound.
	FindByID(id int) (Product, error)

	// Filter returns products matching pred, in fetch order.
	Filter(pred func(Product) bool) []Product
}

// CatalogLoader refreshes the product set from the content API.
type CatalogLoader interface {
	// Load fetches the full product set. On failure the held set is empty
	// and the error is returned; callers may render an empty catalog.
	Load(ctx context.Context) error
}

// History abstracts the browser history/location the router drives.
type History interface {
	// Path returns the current location path.
	Path() string

	// Push records path as a new history entry and makes it current.
	Push(path string)
}

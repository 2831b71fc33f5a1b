package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Catalog errors
	ErrProductNotFound = errors.New("product not found")
	ErrCatalogEmpty    = errors.New("catalog is empty")

	// Cart errors
	ErrItemNotInCart = errors.New("product not in cart")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Storage errors
	ErrSlotNotFound = errors.New("storage slot not found")
)

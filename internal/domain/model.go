// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import "fmt"

// ─── Catalog Types ──────────────────────────────────────────────────────────

// ImageRef is an opaque content-API image reference.
// Its shape is interpreted only by the imageurl formatter, never by the core.
type ImageRef string

// Product is a sellable item as delivered by the content API.
// The catalog cache owns the product set and replaces it wholesale on each
// successful fetch; products are never mutated in place.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       ImageRef `json:"image"`
	Featured    bool     `json:"featured"`
}

// ─── Cart Types ─────────────────────────────────────────────────────────────

// LineItem is one product-and-quantity entry in the cart.
// Name, price and image are snapshots taken at add time so cart entries stay
// displayable even if the catalog is later unreachable or the product set
// changes underneath them.
type LineItem struct {
	ProductID int      `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Image     ImageRef `json:"image"`
}

// Subtotal returns price × quantity for this entry.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// SnapshotLineItem creates a cart entry from a product at add time.
func SnapshotLineItem(p Product, quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Image:     p.Image,
	}
}

// ─── View Types ─────────────────────────────────────────────────────────────

// View names one screen of the storefront. The set is closed.
type View string

const (
	ViewHome          View = "home"
	ViewProducts      View = "products"
	ViewProductDetail View = "product-detail"
	ViewAbout         View = "about"
	ViewContact       View = "contact"
	ViewCart          View = "cart"
)

// Views lists every view in navigation order.
func Views() []View {
	return []View{ViewHome, ViewProducts, ViewProductDetail, ViewAbout, ViewContact, ViewCart}
}

// Valid reports whether v is a member of the closed view set.
func (v View) Valid() bool {
	switch v {
	case ViewHome, ViewProducts, ViewProductDetail, ViewAbout, ViewContact, ViewCart:
		return true
	}
	return false
}

// ViewState is a view plus its optional parameter. ProductID is meaningful
// only when View == ViewProductDetail and is zero otherwise.
type ViewState struct {
	View      View `json:"view"`
	ProductID int  `json:"product_id,omitempty"`
}

// String formats the state for logs and errors.
func (s ViewState) String() string {
	if s.View == ViewProductDetail {
		return fmt.Sprintf("%s(%d)", s.View, s.ProductID)
	}
	return string(s.View)
}

// Home is the fallback state every unknown path resolves to.
func Home() ViewState { return ViewState{View: ViewHome} }

// Package view projects cart and catalog state into view-models.
//
// The renderer owns no state: every invocation recomputes the model for
// exactly one visible view from the current snapshots. Input handling is
// not wired here — the model carries declarative event bindings that the
// dispatch package consumes.
package view

import (
	"fmt"

	"github.com/khayr-gifts/khayr/internal/domain"
	"github.com/khayr-gifts/khayr/internal/infra/imageurl"
)

// ─── Event Bindings ─────────────────────────────────────────────────────────

// Action names a user intent a rendered view can emit.
type Action string

const (
	ActionNavigate    Action = "navigate"
	ActionAddToCart   Action = "add-to-cart"
	ActionRemoveItem  Action = "remove-item"
	ActionSetQuantity Action = "set-quantity"
)

// Binding is a declarative event route: "this affordance, when activated,
// dispatches this action with these arguments."
type Binding struct {
	Action    Action           `json:"action"`
	Target    domain.ViewState `json:"target,omitempty"`   // for navigate
	ProductID int              `json:"product_id,omitempty"`
	Quantity  int              `json:"quantity,omitempty"`
}

// ─── View-Model Types ───────────────────────────────────────────────────────

// NavLink is one navigation affordance; exactly one is active at a time.
type NavLink struct {
	Label  string           `json:"label"`
	Target domain.ViewState `json:"target"`
	Active bool             `json:"active"`
}

// ProductCard is a product as shown on listing grids.
type ProductCard struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Open     Binding `json:"open"`
	Add      Binding `json:"add"`
}

// ProductDetail is the single-product page.
type ProductDetail struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Add         Binding `json:"add"`
}

// CartLine is one cart row with its quantity affordances.
type CartLine struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	ImageURL  string  `json:"image_url"`
	Increase  Binding `json:"increase"`
	Decrease  Binding `json:"decrease"`
	Remove    Binding `json:"remove"`
}

// CartSummary backs the badge and the sidebar, rendered on every view.
type CartSummary struct {
	ItemCount  int     `json:"item_count"`
	TotalPrice float64 `json:"total_price"`
	Empty      bool    `json:"empty"`
}

// Model is the full view-model for one visible view. Exactly one of the
// per-view sections is populated, matching Visible.
type Model struct {
	Visible  domain.View `json:"visible"`
	Nav      []NavLink   `json:"nav"`
	Cart     CartSummary `json:"cart"`
	Featured []ProductCard  `json:"featured,omitempty"` // home
	Products []ProductCard  `json:"products,omitempty"` // products
	Detail   *ProductDetail `json:"detail,omitempty"`   // product-detail
	Lines    []CartLine     `json:"lines,omitempty"`    // cart
}

// ─── Renderer ───────────────────────────────────────────────────────────────

// CartReader is the cart state the renderer projects from.
type CartReader interface {
	Items() []domain.LineItem
	TotalItemCount() int
	TotalPrice() float64
	IsEmpty() bool
}

// Catalog is the product lookup the renderer projects from.
type Catalog interface {
	domain.ProductFinder
	ByCategory(category string) []domain.Product
	Featured() []domain.Product
}

// Renderer builds view-models. It holds collaborators, never state.
type Renderer struct {
	cart    CartReader
	catalog Catalog
	images  imageurl.Formatter
}

// NewRenderer creates a renderer over the given collaborators.
func NewRenderer(cart CartReader, catalog Catalog, images imageurl.Formatter) *Renderer {
	return &Renderer{cart: cart, catalog: catalog, images: images}
}

// Render computes the model for state. For product-detail with an unknown
// product it returns ErrProductNotFound and no model — the caller keeps its
// previous view-model, making the miss an explicit, observable no-op.
func (r *Renderer) Render(state domain.ViewState) (Model, error) {
	m := Model{
		Visible: state.View,
		Nav:     r.nav(state),
		Cart: CartSummary{
			ItemCount:  r.cart.TotalItemCount(),
			TotalPrice: r.cart.TotalPrice(),
			Empty:      r.cart.IsEmpty(),
		},
	}

	switch state.View {
	case domain.ViewHome:
		m.Featured = r.cards(r.catalog.Featured())
	case domain.ViewProducts:
		m.Products = r.cards(r.catalog.ByCategory("all"))
	case domain.ViewProductDetail:
		p, err := r.catalog.FindByID(state.ProductID)
		if err != nil {
			return Model{}, fmt.Errorf("render %s: %w", state, err)
		}
		m.Detail = &ProductDetail{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			ImageURL:    r.images.Thumb(p.Image),
			Add:         Binding{Action: ActionAddToCart, ProductID: p.ID, Quantity: 1},
		}
	case domain.ViewCart:
		m.Lines = r.lines()
	}

	return m, nil
}

// RenderProducts is the category-filtered products view.
func (r *Renderer) RenderProducts(category string) Model {
	m, _ := r.Render(domain.ViewState{View: domain.ViewProducts})
	m.Products = r.cards(r.catalog.ByCategory(category))
	return m
}

// nav builds the navigation links with the active view marked.
func (r *Renderer) nav(state domain.ViewState) []NavLink {
	links := []NavLink{
		{Label: "Home", Target: domain.Home()},
		{Label: "Products", Target: domain.ViewState{View: domain.ViewProducts}},
		{Label: "About", Target: domain.ViewState{View: domain.ViewAbout}},
		{Label: "Contact", Target: domain.ViewState{View: domain.ViewContact}},
		{Label: "Cart", Target: domain.ViewState{View: domain.ViewCart}},
	}
	for i := range links {
		links[i].Active = links[i].Target.View == state.View
	}
	return links
}

func (r *Renderer) cards(products []domain.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, ProductCard{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: r.images.Thumb(p.Image),
			Open: Binding{
				Action: ActionNavigate,
				Target: domain.ViewState{View: domain.ViewProductDetail, ProductID: p.ID},
			},
			Add: Binding{Action: ActionAddToCart, ProductID: p.ID, Quantity: 1},
		})
	}
	return out
}

func (r *Renderer) lines() []CartLine {
	items := r.cart.Items()
	out := make([]CartLine, 0, len(items))
	for _, li := range items {
		out = append(out, CartLine{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     li.Price,
			Quantity:  li.Quantity,
			Subtotal:  li.Subtotal(),
			ImageURL:  r.images.Thumb(li.Image),
			Increase:  Binding{Action: ActionSetQuantity, ProductID: li.ProductID, Quantity: li.Quantity + 1},
			Decrease:  Binding{Action: ActionSetQuantity, ProductID: li.ProductID, Quantity: li.Quantity - 1},
			Remove:    Binding{Action: ActionRemoveItem, ProductID: li.ProductID},
		})
	}
	return out
}

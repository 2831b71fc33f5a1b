// Package router maps browser history locations onto the closed set of
// storefront views and drives re-rendering on navigation.
package router

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/khayr-gifts/khayr/internal/domain"
)

// ─── Route Mapping ──────────────────────────────────────────────────────────
// Pure bidirectional mapping between URL paths and view states.
//
// Canonical paths: /, /products, /product/{id}, /about, /contact, /cart.
// Legacy ".html" aliases resolve to the same views, so PathFor(Resolve(p))
// yields the canonical form of p. Unknown paths resolve to home.

// PathFor returns the canonical path for a view state.
func PathFor(state domain.ViewState) string {
	switch state.View {
	case domain.ViewProducts:
		return "/products"
	case domain.ViewProductDetail:
		return fmt.Sprintf("/product/%d", state.ProductID)
	case domain.ViewAbout:
		return "/about"
	case domain.ViewContact:
		return "/contact"
	case domain.ViewCart:
		return "/cart"
	default:
		return "/"
	}
}

// Resolve maps a location path to a view state. Unknown paths, including
// product paths with a malformed id, resolve to home.
func Resolve(path string) domain.ViewState {
	switch path {
	case "/", "", "/index.html":
		return domain.Home()
	case "/products", "/products.html":
		return domain.ViewState{View: domain.ViewProducts}
	case "/about", "/about.html":
		return domain.ViewState{View: domain.ViewAbout}
	case "/contact", "/contact.html":
		return domain.ViewState{View: domain.ViewContact}
	case "/cart", "/cart.html":
		return domain.ViewState{View: domain.ViewCart}
	}

	if rest, ok := strings.CutPrefix(path, "/product/"); ok {
		id, err := strconv.Atoi(rest)
		if err == nil && id > 0 {
			return domain.ViewState{View: domain.ViewProductDetail, ProductID: id}
		}
	}

	return domain.Home()
}

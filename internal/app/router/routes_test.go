package router

import (
	"testing"

	"github.com/khayr-gifts/khayr/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want domain.ViewState
	}{
		{"/", domain.Home()},
		{"", domain.Home()},
		{"/index.html", domain.Home()},
		{"/products", domain.ViewState{View: domain.ViewProducts}},
		{"/products.html", domain.ViewState{View: domain.ViewProducts}},
		{"/product/42", domain.ViewState{View: domain.ViewProductDetail, ProductID: 42}},
		{"/about", domain.ViewState{View: domain.ViewAbout}},
		{"/about.html", domain.ViewState{View: domain.ViewAbout}},
		{"/contact", domain.ViewState{View: domain.ViewContact}},
		{"/contact.html", domain.ViewState{View: domain.ViewContact}},
		{"/cart", domain.ViewState{View: domain.ViewCart}},
		{"/cart.html", domain.ViewState{View: domain.ViewCart}},
		// Unknown paths resolve to home.
		{"/checkout", domain.Home()},
		{"/product/", domain.Home()},
		{"/product/abc", domain.Home()},
		{"/product/-3", domain.Home()},
		{"/products/extra", domain.Home()},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathFor(t *testing.T) {
	tests := []struct {
		state domain.ViewState
		want  string
	}{
		{domain.Home(), "/"},
		{domain.ViewState{View: domain.ViewProducts}, "/products"},
		{domain.ViewState{View: domain.ViewProductDetail, ProductID: 7}, "/product/7"},
		{domain.ViewState{View: domain.ViewAbout}, "/about"},
		{domain.ViewState{View: domain.ViewContact}, "/contact"},
		{domain.ViewState{View: domain.ViewCart}, "/cart"},
	}

	for _, tt := range tests {
		if got := PathFor(tt.state); got != tt.want {
			t.Errorf("PathFor(%v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

// Legacy aliases and canonical paths denote the same state, and mapping a
// resolved state back yields the canonical path.
func TestAliasesCanonicalize(t *testing.T) {
	aliases := map[string]string{
		"/products.html": "/products",
		"/about.html":    "/about",
		"/contact.html":  "/contact",
		"/cart.html":     "/cart",
		"/index.html":    "/",
	}
	for alias, canonical := range aliases {
		if Resolve(alias) != Resolve(canonical) {
			t.Errorf("Resolve(%q) != Resolve(%q)", alias, canonical)
		}
		if got := PathFor(Resolve(alias)); got != canonical {
			t.Errorf("PathFor(Resolve(%q)) = %q, want %q", alias, got, canonical)
		}
	}
}

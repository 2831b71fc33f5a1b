package router

import (
	"sync"

	"github.com/khayr-gifts/khayr/internal/app/view"
	"github.com/khayr-gifts/khayr/internal/domain"
	"github.com/khayr-gifts/khayr/internal/infra/observability"
)

// Renderer is what the router drives. The view package satisfies it.
type Renderer interface {
	Render(state domain.ViewState) (view.Model, error)
}

// Router is the navigation state machine. It owns the current view state
// and the latest rendered model; transitions happen only through Navigate
// and history pop events.
type Router struct {
	mu       sync.Mutex
	history  domain.History
	renderer Renderer
	current  domain.ViewState
	model    view.Model
}

// New creates a router and resolves the initial state from the current
// location. If h is a *MemoryHistory its pop listener is wired to
// HandleLocationChange, mirroring the popstate handler.
func New(h domain.History, r Renderer) *Router {
	rt := &Router{history: h, renderer: r, current: domain.Home()}
	if mh, ok := h.(*MemoryHistory); ok {
		mh.OnPop(func() { rt.HandleLocationChange() })
	}
	rt.HandleLocationChange()
	return rt
}

// Navigate computes the canonical path for state, pushes it as a new
// history entry, and performs the same work as HandleLocationChange.
func (rt *Router) Navigate(state domain.ViewState) error {
	rt.history.Push(PathFor(state))
	return rt.HandleLocationChange()
}

// HandleLocationChange reads the current location, resolves it to a view
// state and re-renders. On a product-detail miss the previous state and
// view-model are retained and the error is returned — an explicit no-op,
// not a crash.
func (rt *Router) HandleLocationChange() error {
	state := Resolve(rt.history.Path())

	model, err := rt.renderer.Render(state)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	rt.current = state
	rt.model = model
	rt.mu.Unlock()

	observability.Navigations.WithLabelValues(string(state.View)).Inc()
	return nil
}

// Refresh re-renders the current view state without touching history.
// Cart mutations call this so visible cart-dependent views stay in sync.
func (rt *Router) Refresh() error {
	rt.mu.Lock()
	state := rt.current
	rt.mu.Unlock()

	model, err := rt.renderer.Render(state)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	rt.model = model
	rt.mu.Unlock()
	return nil
}

// Current returns the current view state.
func (rt *Router) Current() domain.ViewState {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.current
}

// Model returns the latest rendered view-model.
func (rt *Router) Model() view.Model {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.model
}

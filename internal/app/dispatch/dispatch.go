// Package dispatch routes declarative input events to state mutations.
//
// Rendered views emit bindings (view.Binding); this is the single component
// that turns an activated binding into cart or navigation changes, keeping
// state mutation fully decoupled from presentation.
package dispatch

import (
	"fmt"

	"github.com/khayr-gifts/khayr/internal/app/view"
	"github.com/khayr-gifts/khayr/internal/domain"
)

// CartWriter is the mutating cart surface the dispatcher drives.
type CartWriter interface {
	Add(productID, quantity int) error
	Remove(productID int) error
	SetQuantity(productID, quantity int) error
}

// Navigator is the routing surface the dispatcher drives.
type Navigator interface {
	Navigate(state domain.ViewState) error
	Refresh() error
}

// Dispatcher consumes bindings and applies them.
type Dispatcher struct {
	cart   CartWriter
	router Navigator
}

// New creates a dispatcher over the given collaborators.
func New(cart CartWriter, router Navigator) *Dispatcher {
	return &Dispatcher{cart: cart, router: router}
}

// Dispatch applies one activated binding. Cart mutations trigger a refresh
// of the currently visible view so cart-dependent views stay in sync.
func (d *Dispatcher) Dispatch(b view.Binding) error {
	switch b.Action {
	case view.ActionNavigate:
		return d.router.Navigate(b.Target)

	case view.ActionAddToCart:
		qty := b.Quantity
		if qty < 1 {
			qty = 1
		}
		if err := d.cart.Add(b.ProductID, qty); err != nil {
			return err
		}
		return d.router.Refresh()

	case view.ActionRemoveItem:
		if err := d.cart.Remove(b.ProductID); err != nil {
			return err
		}
		return d.router.Refresh()

	case view.ActionSetQuantity:
		if err := d.cart.SetQuantity(b.ProductID, b.Quantity); err != nil {
			return err
		}
		return d.router.Refresh()

	default:
		return fmt.Errorf("dispatch: unknown action %q", b.Action)
	}
}

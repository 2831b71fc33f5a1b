package dispatch

import (
	"errors"
	"testing"

	"github.com/khayr-gifts/khayr/internal/app/view"
	"github.com/khayr-gifts/khayr/internal/domain"
)

type cartCall struct {
	op        string
	productID int
	quantity  int
}

type stubCart struct {
	calls []cartCall
	err   error
}

func (s *stubCart) Add(productID, quantity int) error {
	s.calls = append(s.calls, cartCall{"add", productID, quantity})
	return s.err
}

func (s *stubCart) Remove(productID int) error {
	s.calls = append(s.calls, cartCall{"remove", productID, 0})
	return s.err
}

func (s *stubCart) SetQuantity(productID, quantity int) error {
	s.calls = append(s.calls, cartCall{"set", productID, quantity})
	return s.err
}

type stubNav struct {
	navigated []domain.ViewState
	refreshes int
}

func (s *stubNav) Navigate(state domain.ViewState) error {
	s.navigated = append(s.navigated, state)
	return nil
}

func (s *stubNav) Refresh() error {
	s.refreshes++
	return nil
}

func TestDispatchNavigate(t *testing.T) {
	c, n := &stubCart{}, &stubNav{}
	d := New(c, n)

	target := domain.ViewState{View: domain.ViewProductDetail, ProductID: 7}
	if err := d.Dispatch(view.Binding{Action: view.ActionNavigate, Target: target}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if len(n.navigated) != 1 || n.navigated[0] != target {
		t.Errorf("navigated = %+v", n.navigated)
	}
	if len(c.calls) != 0 {
		t.Errorf("navigate touched the cart: %+v", c.calls)
	}
}

func TestDispatchAddRefreshesView(t *testing.T) {
	c, n := &stubCart{}, &stubNav{}
	d := New(c, n)

	if err := d.Dispatch(view.Binding{Action: view.ActionAddToCart, ProductID: 101, Quantity: 2}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if len(c.calls) != 1 || c.calls[0] != (cartCall{"add", 101, 2}) {
		t.Errorf("cart calls = %+v", c.calls)
	}
	if n.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", n.refreshes)
	}
}

func TestDispatchAddDefaultsQuantity(t *testing.T) {
	c, n := &stubCart{}, &stubNav{}
	New(c, n).Dispatch(view.Binding{Action: view.ActionAddToCart, ProductID: 101})

	if c.calls[0].quantity != 1 {
		t.Errorf("quantity = %d, want 1", c.calls[0].quantity)
	}
}

func TestDispatchRemoveAndSetQuantity(t *testing.T) {
	c, n := &stubCart{}, &stubNav{}
	d := New(c, n)

	d.Dispatch(view.Binding{Action: view.ActionRemoveItem, ProductID: 101})
	d.Dispatch(view.Binding{Action: view.ActionSetQuantity, ProductID: 102, Quantity: 5})

	want := []cartCall{{"remove", 101, 0}, {"set", 102, 5}}
	if len(c.calls) != 2 || c.calls[0] != want[0] || c.calls[1] != want[1] {
		t.Errorf("cart calls = %+v", c.calls)
	}
	if n.refreshes != 2 {
		t.Errorf("refreshes = %d, want 2", n.refreshes)
	}
}

func TestDispatchCartErrorSkipsRefresh(t *testing.T) {
	c := &stubCart{err: domain.ErrProductNotFound}
	n := &stubNav{}
	d := New(c, n)

	err := d.Dispatch(view.Binding{Action: view.ActionAddToCart, ProductID: 42, Quantity: 1})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
	if n.refreshes != 0 {
		t.Errorf("refreshed after failed mutation")
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	d := New(&stubCart{}, &stubNav{})
	if err := d.Dispatch(view.Binding{Action: "checkout"}); err == nil {
		t.Error("expected error for unknown action")
	}
}

package router

import (
	"errors"
	"fmt"
	"testing"

	"github.com/khayr-gifts/khayr/internal/app/view"
	"github.com/khayr-gifts/khayr/internal/domain"
)

// stubRenderer renders any state except product-detail ids not in known.
type stubRenderer struct {
	known   map[int]bool
	renders int
}

func (s *stubRenderer) Render(state domain.ViewState) (view.Model, error) {
	s.renders++
	if state.View == domain.ViewProductDetail && !s.known[state.ProductID] {
		return view.Model{}, fmt.Errorf("render %s: %w", state, domain.ErrProductNotFound)
	}
	return view.Model{Visible: state.View}, nil
}

func newTestRouter() (*Router, *MemoryHistory, *stubRenderer) {
	h := NewMemoryHistory("/")
	r := &stubRenderer{known: map[int]bool{7: true}}
	return New(h, r), h, r
}

func TestInitialStateFromLocation(t *testing.T) {
	h := NewMemoryHistory("/products.html")
	rt := New(h, &stubRenderer{})

	if rt.Current().View != domain.ViewProducts {
		t.Errorf("initial view = %v, want products", rt.Current())
	}
}

func TestNavigatePushesHistory(t *testing.T) {
	rt, h, _ := newTestRouter()

	if err := rt.Navigate(domain.ViewState{View: domain.ViewProducts}); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	if h.Path() != "/products" {
		t.Errorf("path = %q, want /products", h.Path())
	}
	if h.Len() != 2 {
		t.Errorf("history entries = %d, want 2 (push, not replace)", h.Len())
	}
	if rt.Current().View != domain.ViewProducts {
		t.Errorf("current = %v", rt.Current())
	}
	if rt.Model().Visible != domain.ViewProducts {
		t.Errorf("model visible = %v", rt.Model().Visible)
	}
}

func TestBackReturnsToPreviousStateWithoutPush(t *testing.T) {
	rt, h, _ := newTestRouter()

	rt.Navigate(domain.ViewState{View: domain.ViewProducts})
	rt.Navigate(domain.ViewState{View: domain.ViewCart})
	entries := h.Len()

	h.Back()

	if rt.Current().View != domain.ViewProducts {
		t.Errorf("after back: current = %v, want products", rt.Current())
	}
	if h.Len() != entries {
		t.Errorf("back added a history entry: %d → %d", entries, h.Len())
	}

	h.Back()
	if rt.Current().View != domain.ViewHome {
		t.Errorf("after second back: current = %v, want home", rt.Current())
	}

	h.Forward()
	if rt.Current().View != domain.ViewProducts {
		t.Errorf("after forward: current = %v, want products", rt.Current())
	}
}

func TestBackAtOldestEntryIsNoop(t *testing.T) {
	rt, h, _ := newTestRouter()
	h.Back()
	if rt.Current().View != domain.ViewHome {
		t.Errorf("current = %v, want home", rt.Current())
	}
}

func TestUnknownProductDetailKeepsPreviousModel(t *testing.T) {
	rt, _, _ := newTestRouter()

	rt.Navigate(domain.ViewState{View: domain.ViewProducts})
	before := rt.Model()

	err := rt.Navigate(domain.ViewState{View: domain.ViewProductDetail, ProductID: 42})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}

	if rt.Current().View != domain.ViewProducts {
		t.Errorf("current = %v, want previous state retained", rt.Current())
	}
	if rt.Model().Visible != before.Visible {
		t.Errorf("view-model changed on not-found render")
	}
}

func TestKnownProductDetailRenders(t *testing.T) {
	rt, _, _ := newTestRouter()

	if err := rt.Navigate(domain.ViewState{View: domain.ViewProductDetail, ProductID: 7}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if rt.Current() != (domain.ViewState{View: domain.ViewProductDetail, ProductID: 7}) {
		t.Errorf("current = %v", rt.Current())
	}
}

func TestRefreshRerendersCurrentState(t *testing.T) {
	rt, h, sr := newTestRouter()

	rt.Navigate(domain.ViewState{View: domain.ViewCart})
	renders := sr.renders
	entries := h.Len()

	if err := rt.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if sr.renders != renders+1 {
		t.Errorf("renders = %d, want %d", sr.renders, renders+1)
	}
	if h.Len() != entries {
		t.Errorf("refresh touched history")
	}
	if rt.Current().View != domain.ViewCart {
		t.Errorf("current = %v", rt.Current())
	}
}

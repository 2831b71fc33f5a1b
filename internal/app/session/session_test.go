package session

import (
	"errors"
	"testing"

	"github.com/khayr-gifts/khayr/internal/domain"
	"github.com/khayr-gifts/khayr/internal/infra/imageurl"
)

// ─── Fixtures ───────────────────────────────────────────────────────────────

type memKV map[string][]byte

func (m memKV) Get(key string) ([]byte, error) {
	v, ok := m[key]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return v, nil
}

func (m memKV) Put(key string, value []byte) error {
	m[key] = value
	return nil
}

func (m memKV) Delete(key string) error {
	delete(m, key)
	return nil
}

type stubCatalog []domain.Product

func (c stubCatalog) FindByID(id int) (domain.Product, error) {
	for _, p := range c {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (c stubCatalog) Filter(pred func(domain.Product) bool) []domain.Product {
	var out []domain.Product
	for _, p := range c {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func (c stubCatalog) ByCategory(category string) []domain.Product {
	if category == "" || category == "all" {
		return c
	}
	return c.Filter(func(p domain.Product) bool { return p.Category == category })
}

func (c stubCatalog) Featured() []domain.Product {
	return c.Filter(func(p domain.Product) bool { return p.Featured })
}

func newManager() (*Manager, memKV) {
	kv := memKV{}
	cat := stubCatalog{{ID: 101, Name: "Vase", Price: 19.99}}
	return NewManager(kv, cat, imageurl.Formatter{ProjectID: "ptktp0wu", Dataset: "production"}), kv
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestCreateAndGet(t *testing.T) {
	m, _ := newManager()

	s := m.Create("/products")
	if s.ID == "" {
		t.Fatal("empty session id")
	}
	if s.Router.Current().View != domain.ViewProducts {
		t.Errorf("initial view = %v, want products", s.Router.Current())
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Error("Get returned a different session")
	}

	if _, err := m.Get("nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionCartsAreIsolated(t *testing.T) {
	m, _ := newManager()

	a := m.Create("/")
	b := m.Create("/")

	if err := a.Cart.Add(101, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if a.Cart.TotalItemCount() != 2 {
		t.Errorf("session a count = %d", a.Cart.TotalItemCount())
	}
	if !b.Cart.IsEmpty() {
		t.Error("session b cart sees session a's items")
	}
}

func TestDefaultSessionUsesOriginalSlot(t *testing.T) {
	m, kv := newManager()

	d := m.Default()
	if d.ID != DefaultID {
		t.Errorf("id = %q", d.ID)
	}
	if m.Default() != d {
		t.Error("Default created a second session")
	}

	d.Cart.Add(101, 1)
	if _, err := kv.Get("khayrCart"); err != nil {
		t.Error("default session cart not persisted under khayrCart")
	}
}

func TestCloseKeepsPersistedCart(t *testing.T) {
	m, kv := newManager()

	s := m.Create("/")
	s.Cart.Add(101, 3)
	slot := "khayrCart:" + s.ID

	m.Close(s.ID)
	if m.Count() != 0 {
		t.Errorf("count = %d after close", m.Count())
	}
	if _, err := kv.Get(slot); err != nil {
		t.Error("persisted cart slot dropped on close")
	}
}

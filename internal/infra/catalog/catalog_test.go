package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/khayr-gifts/khayr/internal/domain"
)

const sampleBody = `{"result":[
	{"id":101,"name":"Vase","price":19.99,"category":"home","image":"image-aaa-741x741-png","featured":true},
	{"id":102,"name":"Frame","price":9.5,"category":"home","image":"image-bbb-500x500-jpg","featured":false},
	{"id":103,"name":"Candle","price":4.25,"category":"gifts","image":"image-ccc-300x300-png","featured":true}
]}`

func newTestCache(t *testing.T, handler http.HandlerFunc) *Cache {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client())
}

func TestLoadReplacesSet(t *testing.T) {
	c := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	})

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}

	p, err := c.FindByID(101)
	if err != nil {
		t.Fatalf("find 101: %v", err)
	}
	if p.Name != "Vase" || p.Price != 19.99 {
		t.Errorf("product 101 = %+v", p)
	}
}

func TestFindByIDMiss(t *testing.T) {
	c := New("http://unused.invalid", nil)
	_, err := c.FindByID(42)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestLoadFailureEmptiesSet(t *testing.T) {
	calls := 0
	c := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(sampleBody))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	c.Load(context.Background())
	if c.Len() != 3 {
		t.Fatalf("Len after first load = %d", c.Len())
	}

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected error on second load")
	}
	if c.Len() != 0 {
		t.Errorf("Len after failed load = %d, want 0", c.Len())
	}
}

func TestLoadMalformedBody(t *testing.T) {
	c := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "not a list"`))
	})

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestFilterPreservesFetchOrder(t *testing.T) {
	c := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	})
	c.Load(context.Background())

	featured := c.Featured()
	if len(featured) != 2 {
		t.Fatalf("featured len = %d, want 2", len(featured))
	}
	if featured[0].ID != 101 || featured[1].ID != 103 {
		t.Errorf("featured order = [%d %d], want [101 103]", featured[0].ID, featured[1].ID)
	}

	home := c.ByCategory("home")
	if len(home) != 2 || home[0].ID != 101 || home[1].ID != 102 {
		t.Errorf("ByCategory(home) = %+v", home)
	}

	all := c.ByCategory("all")
	if len(all) != 3 {
		t.Errorf("ByCategory(all) len = %d, want 3", len(all))
	}
}

func TestOverlappingLoadsJoin(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	c := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		w.Write([]byte(sampleBody))
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Load(context.Background())
	}()

	// Wait until the first fetch is holding the in-flight slot, then pile
	// joiners onto it before releasing the server.
	for requests.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Load(context.Background())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := requests.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1 (joined)", got)
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestQueryURL(t *testing.T) {
	got := QueryURL("ptktp0wu", "production")
	want := `https://ptktp0wu.apicdn.sanity.io/v2021-10-21/data/query/production?query=*[_type=="product"]`
	if got != want {
		t.Errorf("QueryURL = %q\nwant %q", got, want)
	}
}

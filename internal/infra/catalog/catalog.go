// Package catalog holds the product set fetched from the content API.
//
// The cache is read-only to every other component: Load replaces the whole
// set atomically, lookups see either the previous set or the new one, never
// a partial update. Fetch failures empty the set and are logged; callers
// render an empty catalog rather than an error page.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/khayr-gifts/khayr/internal/domain"
	"github.com/khayr-gifts/khayr/internal/infra/observability"
)

// queryResponse is the content-API envelope: {"result":[Product, ...]}.
type queryResponse struct {
	Result []domain.Product `json:"result"`
}

// Cache is the in-memory product catalog.
type Cache struct {
	url    string
	client *http.Client

	mu       sync.RWMutex
	products []domain.Product

	// in-flight guard: overlapping Load calls join the pending fetch
	// instead of racing a second request.
	loadMu  sync.Mutex
	pending chan struct{}
	lastErr error
}

// QueryURL builds the content-API query URL for the full product set.
func QueryURL(projectID, dataset string) string {
	return fmt.Sprintf(`https://%s.apicdn.sanity.io/v2021-10-21/data/query/%s?query=*[_type=="product"]`,
		projectID, dataset)
}

// New creates a catalog cache fetching from url. A nil client uses a
// default with a 30s timeout.
func New(url string, client *http.Client) *Cache {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Cache{url: url, client: client}
}

// Load fetches the full product set and replaces the held set atomically.
// Any failure (network, HTTP status, parse, shape) empties the set, logs,
// and returns the error; callers may ignore it and render an empty catalog.
//
// A Load arriving while another is in flight waits for that fetch and
// returns its result.
func (c *Cache) Load(ctx context.Context) error {
	c.loadMu.Lock()
	if c.pending != nil {
		done := c.pending
		c.loadMu.Unlock()

		observability.CatalogFetches.WithLabelValues("joined").Inc()
		select {
		case <-done:
			c.loadMu.Lock()
			err := c.lastErr
			c.loadMu.Unlock()
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	done := make(chan struct{})
	c.pending = done
	c.loadMu.Unlock()

	err := c.fetch(ctx)

	c.loadMu.Lock()
	c.lastErr = err
	c.pending = nil
	c.loadMu.Unlock()
	close(done)

	return err
}

// fetch performs one catalog request.
func (c *Cache) fetch(ctx context.Context) error {
	start := time.Now()
	products, err := c.query(ctx)
	observability.CatalogFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		// Recovered locally: empty catalog, logged, not surfaced as a fault.
		log.Printf("catalog: load failed: %v", err)
		observability.CatalogFetches.WithLabelValues("error").Inc()
		c.replace(nil)
		return err
	}

	observability.CatalogFetches.WithLabelValues("ok").Inc()
	c.replace(products)
	return nil
}

func (c *Cache) query(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return qr.Result, nil
}

// replace swaps in a new product set. nil means empty.
func (c *Cache) replace(products []domain.Product) {
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	observability.CatalogProducts.Set(float64(len(products)))
}

// ─── Read API ───────────────────────────────────────────────────────────────

// FindByID returns the product with the given id, or ErrProductNotFound.
func (c *Cache) FindByID(id int) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// Filter returns products matching pred, preserving fetch order.
func (c *Cache) Filter(pred func(domain.Product) bool) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.Product
	for _, p := range c.products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory returns products in the given category; "all" matches everything.
func (c *Cache) ByCategory(category string) []domain.Product {
	if category == "" || category == "all" {
		return c.Products()
	}
	return c.Filter(func(p domain.Product) bool { return p.Category == category })
}

// Featured returns products flagged for the home page.
func (c *Cache) Featured() []domain.Product {
	return c.Filter(func(p domain.Product) bool { return p.Featured })
}

// Products returns a copy of the held set in fetch order.
func (c *Cache) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of held products.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

var (
	_ domain.ProductFinder = (*Cache)(nil)
	_ domain.CatalogLoader = (*Cache)(nil)
)

// Package offline is the service-worker equivalent: a caching transport
// that serves stored responses when present and opportunistically caches
// image responses fetched from the network.
package offline

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"regexp"

	"github.com/khayr-gifts/khayr/internal/infra/observability"
	"github.com/khayr-gifts/khayr/internal/infra/sqlite"
)

// imagePattern matches URLs the transport caches opportunistically.
var imagePattern = regexp.MustCompile(`\.(jpg|jpeg|png|gif|webp|svg)(\?|$)`)

// Transport is an http.RoundTripper implementing cached-or-network.
//
// Lookup order mirrors the worker's fetch handler: cached response if
// present, otherwise network; 200 image responses are stored for next time.
// Store failures never fail the request.
type Transport struct {
	// Base performs the network fetch. nil means http.DefaultTransport.
	Base http.RoundTripper

	// DB holds the named asset cache.
	DB *sqlite.DB

	// CacheName versions the cache, e.g. "khayr-gifts-v1.21".
	CacheName string
}

// Activate drops every cached asset stored under a previous cache name.
// Mirrors the worker's activate handler.
func (t *Transport) Activate() error {
	dropped, err := t.DB.DropOtherCaches(t.CacheName)
	if err != nil {
		return err
	}
	if dropped > 0 {
		log.Printf("offline: dropped %d assets from stale caches", dropped)
	}
	return nil
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.String()

	if req.Method == http.MethodGet {
		if asset, err := t.DB.GetAsset(url, t.CacheName); err == nil && asset != nil {
			observability.OfflineCacheRequests.WithLabelValues("hit").Inc()
			return cachedResponse(req, asset), nil
		}
	}
	observability.OfflineCacheRequests.WithLabelValues("miss").Inc()

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Only successful GETs of image URLs are cached.
	if req.Method != http.MethodGet || resp.StatusCode != http.StatusOK || !imagePattern.MatchString(url) {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	if err := t.DB.PutAsset(url, t.CacheName, resp.Header.Get("Content-Type"), body); err != nil {
		log.Printf("offline: cache store failed for %s: %v", url, err)
	}
	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// cachedResponse builds a synthetic 200 response from a stored asset.
func cachedResponse(req *http.Request, asset *sqlite.CachedAsset) *http.Response {
	header := make(http.Header)
	if asset.ContentType != "" {
		header.Set("Content-Type", asset.ContentType)
	}
	header.Set("X-Khayr-Cache", "hit")
	return &http.Response{
		StatusCode:    http.StatusOK,
		Status:        "200 OK",
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(asset.Body)),
		ContentLength: int64(len(asset.Body)),
		Request:       req,
	}
}

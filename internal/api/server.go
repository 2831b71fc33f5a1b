// Package api provides the local HTTP surface of the storefront engine.
// It exposes the catalog, per-session navigation and cart operations, and
// the rendered view-models a presentation shell consumes.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khayr-gifts/khayr/internal/app/session"
	"github.com/khayr-gifts/khayr/internal/domain"
	"github.com/khayr-gifts/khayr/internal/infra/catalog"
)

// Version is reported by /api/version.
const Version = "1.21.0"

// Server is the storefront HTTP API server.
type Server struct {
	sessions       *session.Manager
	catalog        *catalog.Cache
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(sessions *session.Manager, cat *catalog.Cache) *Server {
	return &Server{sessions: sessions, catalog: cat}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})

	// Catalog (shared, read-only)
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", s.handleCatalogList)
		r.Get("/{id}", s.handleCatalogGet)
		r.Post("/refresh", s.handleCatalogRefresh)
	})

	// Sessions: one storefront engine per client
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleSessionCreate)
		r.Route("/{sid}", func(r chi.Router) {
			r.Delete("/", s.handleSessionClose)
			r.Get("/view", s.handleView)
			r.Post("/navigate", s.handleNavigate)
			r.Post("/back", s.handleBack)
			r.Post("/forward", s.handleForward)
			r.Post("/events", s.handleEvent)
			r.Get("/cart", s.handleCartGet)
			r.Post("/cart/items", s.handleCartAdd)
			r.Put("/cart/items/{productID}", s.handleCartSetQuantity)
			r.Delete("/cart/items/{productID}", s.handleCartRemove)
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain sentinel errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrItemNotInCart),
		errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for the local presentation shell.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

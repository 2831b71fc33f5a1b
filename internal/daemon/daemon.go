package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/khayr-gifts/khayr/internal/api"
	"github.com/khayr-gifts/khayr/internal/app/session"
	"github.com/khayr-gifts/khayr/internal/infra/catalog"
	"github.com/khayr-gifts/khayr/internal/infra/imageurl"
	"github.com/khayr-gifts/khayr/internal/infra/offline"
	"github.com/khayr-gifts/khayr/internal/infra/sqlite"
)

// Engine is the fully wired storefront: shared catalog and storage plus
// the per-session manager. The CLI and the HTTP daemon both run on top
// of it.
type Engine struct {
	Config   Config
	DB       *sqlite.DB
	Catalog  *catalog.Cache
	Sessions *session.Manager
}

// NewEngine opens storage and wires the engine. The catalog is not loaded
// yet; callers decide whether a fetch failure is fatal (it never is for
// the daemon — an empty catalog renders fine).
func NewEngine(cfg Config) (*Engine, error) {
	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	if cfg.Offline.Enabled {
		transport := &offline.Transport{DB: db, CacheName: cfg.Offline.CacheName}
		if err := transport.Activate(); err != nil {
			log.Printf("daemon: offline cache activation failed: %v", err)
		}
		client.Transport = transport
	}

	url := cfg.Catalog.URL
	if url == "" {
		url = catalog.QueryURL(cfg.Catalog.ProjectID, cfg.Catalog.Dataset)
	}
	cat := catalog.New(url, client)

	images := imageurl.Formatter{ProjectID: cfg.Catalog.ProjectID, Dataset: cfg.Catalog.Dataset}
	sessions := session.NewManager(db, cat, images)
	sessions.SetDefaultSlot(cfg.Storage.CartSlot)

	return &Engine{Config: cfg, DB: db, Catalog: cat, Sessions: sessions}, nil
}

// Close releases the engine's storage.
func (e *Engine) Close() error { return e.DB.Close() }

// Run loads the catalog and serves the HTTP API until ctx is canceled.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Catalog.Load(ctx); err != nil {
		log.Printf("daemon: starting with empty catalog: %v", err)
	} else {
		log.Printf("daemon: catalog loaded, %d products", e.Catalog.Len())
	}

	srv := api.NewServer(e.Sessions, e.Catalog)
	if e.Config.API.Metrics {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:    e.Config.API.Addr(),
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("daemon: listening on http://%s", e.Config.API.Addr())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

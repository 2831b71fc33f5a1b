package sqlite

import "database/sql"

// ─── Offline Asset Cache Operations ─────────────────────────────────────────
// Cached responses are keyed by (url, cache_name). Bumping the cache name
// versions the whole cache; DropOtherCaches removes stale versions.

// CachedAsset is one stored response body.
type CachedAsset struct {
	URL         string
	ContentType string
	Body        []byte
}

// GetAsset returns the cached asset for url under cacheName, or (nil, nil)
// when absent.
func (d *DB) GetAsset(url, cacheName string) (*CachedAsset, error) {
	a := CachedAsset{URL: url}
	err := d.db.QueryRow(`
		SELECT content_type, body FROM offline_assets
		WHERE url = ? AND cache_name = ?
	`, url, cacheName).Scan(&a.ContentType, &a.Body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// PutAsset stores (or replaces) a cached response.
func (d *DB) PutAsset(url, cacheName, contentType string, body []byte) error {
	_, err := d.db.Exec(`
		INSERT INTO offline_assets (url, cache_name, content_type, body, stored_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(url, cache_name) DO UPDATE SET
			content_type = excluded.content_type,
			body         = excluded.body,
			stored_at    = datetime('now')
	`, url, cacheName, contentType, body)
	return err
}

// DropOtherCaches deletes every asset stored under a cache name other than
// current. Mirrors the activate-time cleanup of the offline worker.
func (d *DB) DropOtherCaches(current string) (int64, error) {
	res, err := d.db.Exec(`DELETE FROM offline_assets WHERE cache_name != ?`, current)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountAssets returns the number of assets stored under cacheName.
func (d *DB) CountAssets(cacheName string) (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM offline_assets WHERE cache_name = ?`, cacheName).Scan(&n)
	return n, err
}

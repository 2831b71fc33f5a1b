package sqlite

import (
	"database/sql"

	"github.com/khayr-gifts/khayr/internal/domain"
)

// ─── Key-Value Slot Operations ──────────────────────────────────────────────
// The cart store serializes its whole line-item list into one slot after
// every mutation. Writes replace the slot completely — never partially.

// Get returns the slot contents, or domain.ErrSlotNotFound.
func (d *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := d.db.QueryRow(`SELECT value FROM kv_slots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put replaces the slot contents.
func (d *DB) Put(key string, value []byte) error {
	_, err := d.db.Exec(`
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = datetime('now')
	`, key, value)
	return err
}

// Delete removes the slot. Removing an absent slot is not an error.
func (d *DB) Delete(key string) error {
	_, err := d.db.Exec(`DELETE FROM kv_slots WHERE key = ?`, key)
	return err
}

var _ domain.KVStore = (*DB)(nil)

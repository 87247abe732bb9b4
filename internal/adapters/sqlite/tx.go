package sqlite

import (
	"database/sql"
)

// cacheTx groups multi-statement cache maintenance
type cacheTx struct {
	tx *sql.Tx
}

// withTx runs fn in a transaction, committing only if fn succeeds
func (c *Cache) withTx(fn func(tx *cacheTx) error) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(&cacheTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// overBudget returns the keys that fall outside maxBytes when entries are
// kept most recently used first
func (t *cacheTx) overBudget(maxBytes int64) ([]string, error) {
	rows, err := t.tx.Query(`SELECT key, size FROM assets ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		keep  int64
		evict []string
	)
	for rows.Next() {
		var key string
		var size int64
		if err := rows.Scan(&key, &size); err != nil {
			return nil, err
		}
		if keep+size > maxBytes {
			evict = append(evict, key)
			continue
		}
		keep += size
	}
	return evict, rows.Err()
}

// delete removes one entry by key
func (t *cacheTx) delete(key string) error {
	_, err := t.tx.Exec(`DELETE FROM assets WHERE key = ?`, key)
	return err
}

// deleteAll removes every entry
func (t *cacheTx) deleteAll() error {
	_, err := t.tx.Exec(`DELETE FROM assets`)
	return err
}

// setMeta records a metadata value
func (t *cacheTx) setMeta(key, value string) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

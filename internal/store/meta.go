package store

import "database/sql"

// GetMeta retrieves a bookkeeping value by key.
// Returns empty string if key doesn't exist
func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value FROM meta WHERE key = ?
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetMeta sets a bookkeeping value
func (s *Store) SetMeta(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO meta (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

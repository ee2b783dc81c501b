// This file implements the settings store.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

var _ types.SettingsStore = (*settingsTable)(nil)

type settingsTable struct {
	backend *Backend
}

// Get returns the value stored for key, or def.
func (st *settingsTable) Get(key, def string) (string, error) {
	value := def
	err := st.backend.use(func(db *sql.DB) error {
		var v sql.NullString
		err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading setting %s: %w", key, err)
		}
		value = v.String
		return nil
	})
	if err != nil {
		return def, err
	}
	return value, nil
}

// GetBool reads key as a boolean.
func (st *settingsTable) GetBool(key string, def bool) (bool, error) {
	raw, err := st.Get(key, strconv.FormatBool(def))
	if err != nil {
		return def, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, nil
	}
	return v, nil
}

// Set upserts key.
func (st *settingsTable) Set(key, value string) error {
	return st.backend.use(func(db *sql.DB) error {
		_, err := db.Exec(
			"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value,
		)
		if err != nil {
			return fmt.Errorf("writing setting %s: %w", key, err)
		}
		return nil
	})
}

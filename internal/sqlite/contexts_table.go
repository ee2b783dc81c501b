// This file implements the context store.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

var _ types.ContextStore = (*contextsTable)(nil)

type contextsTable struct {
	backend *Backend
}

// List returns context names alphabetically.
func (ct *contextsTable) List() ([]string, error) {
	var names []string
	err := ct.backend.use(func(db *sql.DB) error {
		rows, err := db.Query("SELECT name FROM contexts ORDER BY name")
		if err != nil {
			return fmt.Errorf("querying contexts: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var name sql.NullString
			if err := rows.Scan(&name); err != nil {
				return fmt.Errorf("scanning context: %w", err)
			}
			names = append(names, name.String)
		}
		return rows.Err()
	})
	return names, err
}

// Add inserts name unless it already exists.
func (ct *contextsTable) Add(name string) error {
	return ct.backend.use(func(db *sql.DB) error {
		return addContext(db, name)
	})
}

func addContext(ex execer, name string) error {
	if _, err := ex.Exec("INSERT OR IGNORE INTO contexts (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("adding context %s: %w", name, err)
	}
	return nil
}

// Rename updates the context name in place. Entry hints that copied oldName
// keep it: a hint is a snapshot of the name at the time it was typed.
func (ct *contextsTable) Rename(oldName, newName string) error {
	return ct.backend.use(func(db *sql.DB) error {
		_, err := db.Exec("UPDATE contexts SET name = ? WHERE name = ?", newName, oldName)
		if isUniqueConstraintErr(err) {
			return fmt.Errorf("renaming context %s to %s: %w", oldName, newName, types.ErrContextExists)
		}
		if err != nil {
			return fmt.Errorf("renaming context %s: %w", oldName, err)
		}
		return nil
	})
}

// Delete removes name if present.
func (ct *contextsTable) Delete(name string) error {
	return ct.backend.use(func(db *sql.DB) error {
		if _, err := db.Exec("DELETE FROM contexts WHERE name = ?", name); err != nil {
			return fmt.Errorf("deleting context %s: %w", name, err)
		}
		return nil
	})
}

// isUniqueConstraintErr reports whether err is a UNIQUE constraint violation.
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// This file seeds the default context vocabulary.
package sqlite

import (
	"database/sql"
	"fmt"
)

// seedContexts inserts the default contexts, ignoring names that already
// exist. Runs on every startup, so a deleted default context reappears on the
// next open.
func seedContexts(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range defaultContexts {
		if _, err := tx.Exec("INSERT OR IGNORE INTO contexts (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("seeding context %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

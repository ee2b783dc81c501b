// This file creates the schema and applies additive column migrations.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// createTables runs every CREATE TABLE IF NOT EXISTS statement.
func createTables(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// migrateSchema adds each optional dictionary column that the live table
// lacks. Dictionaries written by older releases pick up the column with its
// default filled into existing rows.
func migrateSchema(db *sql.DB, logger *slog.Logger) error {
	existing, err := tableColumns(db, dictionaryTable)
	if err != nil {
		return err
	}

	for _, col := range optionalColumns {
		if existing[col.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", dictionaryTable, col.name, col.definition)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("adding column %s: %w", col.name, err)
		}
		logger.Info("added dictionary column", "column", col.name)
	}
	return ensureEntryKey(db, logger)
}

// ensureEntryKey enforces one row per entry key on tables created before the
// UNIQUE constraint existed. Duplicate legacy rows collapse onto the most
// recently inserted one before the index is built.
func ensureEntryKey(db *sql.DB, logger *slog.Logger) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning entry key migration: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(dedupeEntriesSQL)
	if err != nil {
		return fmt.Errorf("collapsing duplicate entries: %w", err)
	}
	if _, err := tx.Exec(createEntryKeyIndex); err != nil {
		return fmt.Errorf("creating entry key index: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entry key migration: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		logger.Info("collapsed duplicate dictionary rows", "removed", n)
	}
	return nil
}

// tableColumns returns the set of column names reported by PRAGMA table_info.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid          int
			name, typ    string
			notNull, pk  int
			defaultValue any
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns of %s: %w", table, err)
	}
	return cols, nil
}

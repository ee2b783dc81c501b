// This file implements the entry store over the dictionary table.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

var _ types.EntryStore = (*entriesTable)(nil)

type entriesTable struct {
	backend *Backend
}

// execer is satisfied by both *sql.DB and *sql.Tx so single writes and batch
// writes share one statement.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

const upsertEntrySQL = `INSERT OR REPLACE INTO dictionary
    (word, category, part_of_speech, definition, context_hint, sense_number)
    VALUES (?, ?, ?, ?, ?, ?)`

const selectEntryColumns = `SELECT word, category, part_of_speech, definition, context_hint, sense_number
    FROM dictionary`

// Ties within a word and sense fall back to category and part of speech so
// the listing is fully deterministic.
const entryOrder = ` ORDER BY word, sense_number, category, part_of_speech`

// upsertEntry normalizes e and writes it through ex.
func upsertEntry(ex execer, e types.Entry) error {
	e, err := e.Normalize()
	if err != nil {
		return err
	}
	_, err = ex.Exec(upsertEntrySQL,
		e.Word, e.Category, e.PartOfSpeech, e.Definition, e.ContextHint, e.SenseNumber,
	)
	if err != nil {
		return fmt.Errorf("upserting entry %s/%d: %w", e.Word, e.SenseNumber, err)
	}
	return nil
}

// Upsert writes one entry, replacing any row with the same key.
func (et *entriesTable) Upsert(e types.Entry) error {
	return et.backend.use(func(db *sql.DB) error {
		return upsertEntry(db, e)
	})
}

// UpsertMany writes all senses of word under category in one transaction.
func (et *entriesTable) UpsertMany(word, category string, senses []types.Sense) error {
	return et.backend.withTx(func(tx *sql.Tx) error {
		for _, s := range senses {
			if err := upsertEntry(tx, s.Entry(word, category)); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSense removes the rows for word with the given sense number.
func (et *entriesTable) DeleteSense(word string, sense int) error {
	return et.backend.use(func(db *sql.DB) error {
		_, err := db.Exec(
			"DELETE FROM dictionary WHERE word = ? AND sense_number = ?",
			types.NormalizeWord(word), sense,
		)
		if err != nil {
			return fmt.Errorf("deleting sense %d of %s: %w", sense, word, err)
		}
		return nil
	})
}

// DeleteWord removes every row for word.
func (et *entriesTable) DeleteWord(word string) error {
	return et.backend.use(func(db *sql.DB) error {
		if _, err := db.Exec("DELETE FROM dictionary WHERE word = ?", types.NormalizeWord(word)); err != nil {
			return fmt.Errorf("deleting word %s: %w", word, err)
		}
		return nil
	})
}

// List returns every entry ordered by word, then sense number.
func (et *entriesTable) List() ([]types.Entry, error) {
	var entries []types.Entry
	err := et.backend.use(func(db *sql.DB) error {
		var err error
		entries, err = queryEntries(db, selectEntryColumns+entryOrder)
		return err
	})
	return entries, err
}

// Lookup returns the entries for one word.
func (et *entriesTable) Lookup(word string) ([]types.Entry, error) {
	var entries []types.Entry
	err := et.backend.use(func(db *sql.DB) error {
		var err error
		entries, err = queryEntries(db, selectEntryColumns+" WHERE word = ?"+entryOrder, types.NormalizeWord(word))
		return err
	})
	return entries, err
}

// Words returns the distinct words in the store.
func (et *entriesTable) Words() ([]string, error) {
	var words []string
	err := et.backend.use(func(db *sql.DB) error {
		rows, err := db.Query("SELECT DISTINCT word FROM dictionary")
		if err != nil {
			return fmt.Errorf("querying words: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var w sql.NullString
			if err := rows.Scan(&w); err != nil {
				return fmt.Errorf("scanning word: %w", err)
			}
			words = append(words, w.String)
		}
		return rows.Err()
	})
	return words, err
}

// queryEntries runs query and hydrates every row. Text columns may be NULL in
// dictionaries written by older releases; they read as empty strings.
func queryEntries(db *sql.DB, query string, args ...any) ([]types.Entry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []types.Entry
	for rows.Next() {
		var (
			word, category, pos, definition, hint sql.NullString
			sense                                 sql.NullInt64
		)
		if err := rows.Scan(&word, &category, &pos, &definition, &hint, &sense); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e := types.Entry{
			Word:         word.String,
			Category:     category.String,
			PartOfSpeech: pos.String,
			Definition:   definition.String,
			ContextHint:  hint.String,
			SenseNumber:  types.DefaultSenseNumber,
		}
		if sense.Valid {
			e.SenseNumber = int(sense.Int64)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

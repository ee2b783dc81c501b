// Package sqlite implements the SQLite storage backend for the StoryKeeper
// dictionary. This file holds the schema DDL, the additive column list and the
// seeded context vocabulary.
package sqlite

// Schema DDL. Every statement is safe to run on each startup.
const (
	createDictionary = `CREATE TABLE IF NOT EXISTS dictionary (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    word TEXT,
    category TEXT,
    part_of_speech TEXT,
    definition TEXT,
    context_hint TEXT,
    sense_number INTEGER DEFAULT 1,
    UNIQUE(word, category, part_of_speech, sense_number)
);`

	createContexts = `CREATE TABLE IF NOT EXISTS contexts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE
);`

	createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT
);`
)

// schemaDDL lists all CREATE TABLE statements in execution order.
var schemaDDL = []string{
	createDictionary,
	createContexts,
	createSettings,
}

// dictionaryTable is the physical name of the entries table.
const dictionaryTable = "dictionary"

// optionalColumns are columns that dictionaries created by older releases may
// lack. migrateSchema adds each one that is missing; it never drops or renames.
var optionalColumns = []struct {
	name       string
	definition string
}{
	{name: "category", definition: "TEXT DEFAULT 'General'"},
	{name: "context_hint", definition: "TEXT DEFAULT ''"},
	{name: "sense_number", definition: "INTEGER DEFAULT 1"},
}

// The entry key. Fresh tables already carry it as a table constraint; the
// index adds it to tables written by older releases.
const (
	createEntryKeyIndex = `CREATE UNIQUE INDEX IF NOT EXISTS dictionary_entry_key
    ON dictionary (word, category, part_of_speech, sense_number)`

	dedupeEntriesSQL = `DELETE FROM dictionary WHERE id NOT IN (
    SELECT MAX(id) FROM dictionary GROUP BY word, category, part_of_speech, sense_number
)`
)

// defaultContexts is the vocabulary seeded on first initialization.
var defaultContexts = []string{
	"Species",
	"Planet",
	"Language",
	"Culture",
	"Artifact",
	"Event",
	"Location",
	"Organization",
	"Concept",
	"Adjective (race-like)",
}

package types

import "errors"

// SettingAutoLearnContexts holds "true" when context hints typed into new
// entries should be registered as contexts automatically.
const SettingAutoLearnContexts = "auto_learn_contexts"

// Dictionary is the handle collaborators receive. Every mutation goes through
// one of the four stores; the underlying connection is never exposed.
type Dictionary interface {
	Entries() EntryStore
	Contexts() ContextStore
	Settings() SettingsStore
	Exchange() Exchange

	// Close releases the connection. Idempotent. After Close every store
	// method returns ErrClosed.
	Close() error
}

// EntryStore provides CRUD over multi-sense dictionary entries.
type EntryStore interface {
	// Upsert writes one entry, overwriting any row with the same
	// (word, category, part of speech, sense number).
	Upsert(e Entry) error

	// UpsertMany writes every sense under word and category in one
	// transaction: either all are written or none are.
	UpsertMany(word, category string, senses []Sense) error

	// DeleteSense removes the rows for word with the given sense number.
	// No rows matching is not an error.
	DeleteSense(word string, sense int) error

	// DeleteWord removes every row for word across all categories, parts of
	// speech and senses. No rows matching is not an error.
	DeleteWord(word string) error

	// List returns every entry ordered by word, then sense number.
	List() ([]Entry, error)

	// Lookup returns the entries for one word in List order.
	Lookup(word string) ([]Entry, error)

	// Words returns the distinct words in the store. Order is unspecified.
	Words() ([]string, error)
}

// ContextStore manages the vocabulary of context names.
type ContextStore interface {
	// List returns context names in alphabetical order.
	List() ([]string, error)

	// Add inserts name. Adding an existing name is a no-op.
	Add(name string) error

	// Rename changes oldName to newName in place. A missing oldName is a
	// no-op. Entry context hints equal to oldName are left unchanged.
	// Returns ErrContextExists when newName is already taken.
	Rename(oldName, newName string) error

	// Delete removes name. A missing name is a no-op.
	Delete(name string) error
}

// SettingsStore is a string key/value map. It does not interpret keys.
type SettingsStore interface {
	// Get returns the stored value for key, or def when the key is absent.
	Get(key, def string) (string, error)

	// GetBool parses the stored value with strconv.ParseBool, returning def
	// when the key is absent or the value does not parse.
	GetBool(key string, def bool) (bool, error)

	// Set upserts key to value.
	Set(key, value string) error
}

// Exchange maps store rows to and from interchange records.
type Exchange interface {
	ExportEntries() ([]EntryRecord, error)
	ExportContexts() ([]ContextRecord, error)

	// ImportEntries upserts records in one transaction. ImportReplace deletes
	// every existing entry first. A malformed record rolls back the whole
	// import, purge included.
	ImportEntries(records []EntryRecord, mode ImportMode) error

	// ImportContexts adds records in one transaction with the same
	// replace/merge structure as ImportEntries.
	ImportContexts(records []ContextRecord, mode ImportMode) error
}

// Store lifecycle and constraint errors.
var (
	ErrClosed        = errors.New("dictionary store is closed")
	ErrContextExists = errors.New("context already exists")
)

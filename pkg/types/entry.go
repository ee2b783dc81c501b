package types

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults applied to entries.
const (
	DefaultCategory    = "General"
	DefaultSenseNumber = 1
)

// Entry is one numbered meaning of a word within a category and part of
// speech. The tuple (Word, Category, PartOfSpeech, SenseNumber) is unique in
// the store; writing the same tuple again overwrites the definition.
type Entry struct {
	Word         string // Lowercased on write.
	Category     string // Free-text grouping label.
	PartOfSpeech string // Free text; only the wordbook checks it.
	Definition   string
	ContextHint  string // Context name copied by value, not a reference.
	SenseNumber  int    // Positive; zero means DefaultSenseNumber.
}

// Sense is the per-meaning part of an Entry, used by batch upserts that share
// a word and category.
type Sense struct {
	PartOfSpeech string
	Definition   string
	ContextHint  string
	SenseNumber  int
}

// Entry validation errors.
var (
	ErrInvalidWord  = errors.New("word must not be empty")
	ErrInvalidSense = errors.New("sense number must be positive")

	ErrUnknownPartOfSpeech = errors.New("unknown part of speech")
	ErrSenseOutOfRange     = errors.New("sense number out of range")
)

// NormalizeWord trims and lowercases a word the way the store keys it.
// Lowercasing is Unicode-aware, so "ÉLAN" and "élan" share a key.
func NormalizeWord(word string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(word))
}

// Normalize returns a copy of e with the word lowercased and a zero sense
// number replaced by DefaultSenseNumber. It returns ErrInvalidWord or
// ErrInvalidSense when the result cannot be stored.
func (e Entry) Normalize() (Entry, error) {
	e.Word = NormalizeWord(e.Word)
	if e.Word == "" {
		return Entry{}, ErrInvalidWord
	}
	if e.SenseNumber == 0 {
		e.SenseNumber = DefaultSenseNumber
	}
	if e.SenseNumber < 0 {
		return Entry{}, ErrInvalidSense
	}
	return e, nil
}

// Entry builds the full Entry for this sense under word and category.
func (s Sense) Entry(word, category string) Entry {
	return Entry{
		Word:         word,
		Category:     category,
		PartOfSpeech: s.PartOfSpeech,
		Definition:   s.Definition,
		ContextHint:  s.ContextHint,
		SenseNumber:  s.SenseNumber,
	}
}

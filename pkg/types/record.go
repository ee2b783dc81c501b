package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// EntryRecord is the interchange shape of one Entry, one element of the
// dictionary.json array.
type EntryRecord struct {
	Word         string `json:"word"`
	Category     string `json:"category"`
	PartOfSpeech string `json:"part_of_speech"`
	Definition   string `json:"definition"`
	ContextHint  string `json:"context_hint"`
	SenseNumber  int    `json:"sense_number"`
}

// ContextRecord is the interchange shape of one context, one element of the
// contexts.json array.
type ContextRecord struct {
	Name string `json:"name"`
}

// Interchange errors.
var (
	ErrMalformedRecord   = errors.New("malformed record")
	ErrInvalidImportMode = errors.New("invalid import mode")
)

// UnmarshalJSON decodes an entry record. word, category, part_of_speech,
// definition and context_hint are required; sense_number is optional and
// defaults to DefaultSenseNumber. Missing fields wrap ErrMalformedRecord.
func (r *EntryRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Word         *string `json:"word"`
		Category     *string `json:"category"`
		PartOfSpeech *string `json:"part_of_speech"`
		Definition   *string `json:"definition"`
		ContextHint  *string `json:"context_hint"`
		SenseNumber  *int    `json:"sense_number"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	var missing []string
	for _, f := range []struct {
		name string
		val  *string
	}{
		{"word", raw.Word},
		{"category", raw.Category},
		{"part_of_speech", raw.PartOfSpeech},
		{"definition", raw.Definition},
		{"context_hint", raw.ContextHint},
	} {
		if f.val == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMalformedRecord, strings.Join(missing, ", "))
	}

	*r = EntryRecord{
		Word:         *raw.Word,
		Category:     *raw.Category,
		PartOfSpeech: *raw.PartOfSpeech,
		Definition:   *raw.Definition,
		ContextHint:  *raw.ContextHint,
		SenseNumber:  DefaultSenseNumber,
	}
	if raw.SenseNumber != nil {
		r.SenseNumber = *raw.SenseNumber
	}
	return nil
}

// UnmarshalJSON decodes a context record; name is required and must not be
// blank.
func (r *ContextRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if raw.Name == nil {
		return fmt.Errorf("%w: missing name", ErrMalformedRecord)
	}
	if strings.TrimSpace(*raw.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrMalformedRecord)
	}
	r.Name = *raw.Name
	return nil
}

// Entry converts the record into an Entry.
func (r EntryRecord) Entry() Entry {
	return Entry{
		Word:         r.Word,
		Category:     r.Category,
		PartOfSpeech: r.PartOfSpeech,
		Definition:   r.Definition,
		ContextHint:  r.ContextHint,
		SenseNumber:  r.SenseNumber,
	}
}

// NewEntryRecord converts a stored Entry into its interchange shape.
func NewEntryRecord(e Entry) EntryRecord {
	return EntryRecord{
		Word:         e.Word,
		Category:     e.Category,
		PartOfSpeech: e.PartOfSpeech,
		Definition:   e.Definition,
		ContextHint:  e.ContextHint,
		SenseNumber:  e.SenseNumber,
	}
}

// ImportMode selects how an import treats rows already in the store.
type ImportMode string

// Import modes. ImportSkip is honoured by the archive layer, which does not
// call the codec at all; the codec itself accepts only merge and replace.
const (
	ImportMerge   ImportMode = "merge"
	ImportReplace ImportMode = "replace"
	ImportSkip    ImportMode = "skip"
)

// ParseImportMode parses a mode name case-insensitively.
func ParseImportMode(s string) (ImportMode, error) {
	switch m := ImportMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ImportMerge, ImportReplace, ImportSkip:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidImportMode, s)
	}
}

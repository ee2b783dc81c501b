// This file implements the exchange codec: entries and contexts to and from
// interchange records with merge/replace import semantics.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

var _ types.Exchange = (*exchangeCodec)(nil)

type exchangeCodec struct {
	backend *Backend
}

// ExportEntries returns one record per entry, in List order.
func (x *exchangeCodec) ExportEntries() ([]types.EntryRecord, error) {
	entries, err := x.backend.entries.List()
	if err != nil {
		return nil, fmt.Errorf("exporting entries: %w", err)
	}
	records := make([]types.EntryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, types.NewEntryRecord(e))
	}
	return records, nil
}

// ExportContexts returns one record per context, alphabetically.
func (x *exchangeCodec) ExportContexts() ([]types.ContextRecord, error) {
	names, err := x.backend.contexts.List()
	if err != nil {
		return nil, fmt.Errorf("exporting contexts: %w", err)
	}
	records := make([]types.ContextRecord, 0, len(names))
	for _, n := range names {
		records = append(records, types.ContextRecord{Name: n})
	}
	return records, nil
}

// ImportEntries applies records in a single transaction. A record that
// cannot be stored aborts the import and nothing, including a replace purge,
// is applied.
func (x *exchangeCodec) ImportEntries(records []types.EntryRecord, mode types.ImportMode) error {
	if err := checkCodecMode(mode); err != nil {
		return err
	}

	err := x.backend.withTx(func(tx *sql.Tx) error {
		if mode == types.ImportReplace {
			if _, err := tx.Exec("DELETE FROM dictionary"); err != nil {
				return fmt.Errorf("purging entries: %w", err)
			}
		}
		for i, rec := range records {
			e, err := rec.Entry().Normalize()
			if err != nil {
				return fmt.Errorf("entry record %d: %w: %w", i, types.ErrMalformedRecord, err)
			}
			if err := upsertEntry(tx, e); err != nil {
				return fmt.Errorf("entry record %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("importing entries: %w", err)
	}

	x.backend.logger.Info("imported entries", "mode", string(mode), "count", len(records))
	return nil
}

// ImportContexts applies records in a single transaction with the same
// structure as ImportEntries, using insert-or-ignore per name.
func (x *exchangeCodec) ImportContexts(records []types.ContextRecord, mode types.ImportMode) error {
	if err := checkCodecMode(mode); err != nil {
		return err
	}

	err := x.backend.withTx(func(tx *sql.Tx) error {
		if mode == types.ImportReplace {
			if _, err := tx.Exec("DELETE FROM contexts"); err != nil {
				return fmt.Errorf("purging contexts: %w", err)
			}
		}
		for i, rec := range records {
			if strings.TrimSpace(rec.Name) == "" {
				return fmt.Errorf("context record %d: %w: empty name", i, types.ErrMalformedRecord)
			}
			if err := addContext(tx, rec.Name); err != nil {
				return fmt.Errorf("context record %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("importing contexts: %w", err)
	}

	x.backend.logger.Info("imported contexts", "mode", string(mode), "count", len(records))
	return nil
}

// checkCodecMode accepts merge and replace. Skip is decided by the caller
// before the codec is reached.
func checkCodecMode(mode types.ImportMode) error {
	switch mode {
	case types.ImportMerge, types.ImportReplace:
		return nil
	default:
		return fmt.Errorf("%w: codec does not accept %q", types.ErrInvalidImportMode, mode)
	}
}

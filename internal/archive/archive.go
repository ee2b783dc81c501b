// Package archive reads and writes StoryKeeper project archives. A project
// archive is a zip holding the document body and, optionally, the dictionary
// and context vocabulary as JSON arrays.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

// Archive member names.
const (
	DictionaryMember = "dictionary.json"
	ContextsMember   = "contexts.json"
	ContentMember    = "content.txt"
)

// maxMemberSize bounds how much of one member is read into memory.
const maxMemberSize = 64 << 20

// Source supplies the records written by Export. types.Exchange satisfies it.
type Source interface {
	ExportEntries() ([]types.EntryRecord, error)
	ExportContexts() ([]types.ContextRecord, error)
}

// Sink receives the records read by Import. types.Exchange satisfies it.
type Sink interface {
	ImportEntries(records []types.EntryRecord, mode types.ImportMode) error
	ImportContexts(records []types.ContextRecord, mode types.ImportMode) error
}

// ExportOptions selects what goes into an archive.
type ExportOptions struct {
	IncludeDictionary bool
	IncludeContexts   bool
	Content           string
	Logger            *slog.Logger
}

// ExportResult reports what Export wrote.
type ExportResult struct {
	RunID    string
	Entries  int
	Contexts int
	Members  []string
}

// ImportOptions sets the mode per record kind. An empty mode means merge.
type ImportOptions struct {
	DictionaryMode types.ImportMode
	ContextMode    types.ImportMode
	Logger         *slog.Logger
}

// ImportResult reports what Import applied.
type ImportResult struct {
	RunID      string
	Entries    int
	Contexts   int
	Content    string
	HasContent bool
}

// Export writes a project archive to path. The file appears atomically: it
// is built in a temporary file next to path and renamed into place.
func Export(path string, src Source, opts ExportOptions) (ExportResult, error) {
	logger := loggerOrDiscard(opts.Logger)
	runID, err := uuid.NewV7()
	if err != nil {
		return ExportResult{}, fmt.Errorf("generating run id: %w", err)
	}
	result := ExportResult{RunID: runID.String()}

	var entries []types.EntryRecord
	if opts.IncludeDictionary {
		if entries, err = src.ExportEntries(); err != nil {
			return ExportResult{}, err
		}
	}
	var contexts []types.ContextRecord
	if opts.IncludeContexts {
		if contexts, err = src.ExportContexts(); err != nil {
			return ExportResult{}, err
		}
	}

	err = writeFileAtomic(path, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		if len(entries) > 0 {
			if err := writeJSONMember(zw, DictionaryMember, entries); err != nil {
				return err
			}
			result.Members = append(result.Members, DictionaryMember)
			result.Entries = len(entries)
		}
		if len(contexts) > 0 {
			if err := writeJSONMember(zw, ContextsMember, contexts); err != nil {
				return err
			}
			result.Members = append(result.Members, ContextsMember)
			result.Contexts = len(contexts)
		}
		if err := writeMember(zw, ContentMember, []byte(opts.Content)); err != nil {
			return err
		}
		result.Members = append(result.Members, ContentMember)
		return zw.Close()
	})
	if err != nil {
		return ExportResult{}, fmt.Errorf("exporting archive %s: %w", path, err)
	}

	logger.Info("exported archive",
		"run_id", result.RunID,
		"path", path,
		"entries", result.Entries,
		"contexts", result.Contexts,
	)
	return result, nil
}

// Import reads the archive at path and applies its members to dst. Both
// JSON members are decoded before anything is written, so a malformed
// payload leaves the store untouched. The dictionary is applied before the
// contexts, each in its own transaction.
func Import(path string, dst Sink, opts ImportOptions) (ImportResult, error) {
	logger := loggerOrDiscard(opts.Logger)
	dictMode, err := resolveMode(opts.DictionaryMode)
	if err != nil {
		return ImportResult{}, err
	}
	ctxMode, err := resolveMode(opts.ContextMode)
	if err != nil {
		return ImportResult{}, err
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return ImportResult{}, fmt.Errorf("generating run id: %w", err)
	}
	result := ImportResult{RunID: runID.String()}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer zr.Close()

	members := indexMembers(&zr.Reader)

	var (
		entries    []types.EntryRecord
		contexts   []types.ContextRecord
		hasEntries bool
		hasCtx     bool
	)
	if f, ok := members[DictionaryMember]; ok && dictMode != types.ImportSkip {
		if err := readJSONMember(f, &entries); err != nil {
			return ImportResult{}, err
		}
		hasEntries = true
	}
	if f, ok := members[ContextsMember]; ok && ctxMode != types.ImportSkip {
		if err := readJSONMember(f, &contexts); err != nil {
			return ImportResult{}, err
		}
		hasCtx = true
	}
	if f, ok := members[ContentMember]; ok {
		data, err := readMember(f)
		if err != nil {
			return ImportResult{}, err
		}
		result.Content = string(data)
		result.HasContent = true
	}

	if hasEntries {
		if err := dst.ImportEntries(entries, dictMode); err != nil {
			return ImportResult{}, err
		}
		result.Entries = len(entries)
	}
	if hasCtx {
		if err := dst.ImportContexts(contexts, ctxMode); err != nil {
			return ImportResult{}, err
		}
		result.Contexts = len(contexts)
	}

	logger.Info("imported archive",
		"run_id", result.RunID,
		"path", path,
		"dictionary_mode", string(dictMode),
		"contexts_mode", string(ctxMode),
		"entries", result.Entries,
		"contexts", result.Contexts,
		"content", result.HasContent,
	)
	return result, nil
}

func resolveMode(m types.ImportMode) (types.ImportMode, error) {
	if m == "" {
		return types.ImportMerge, nil
	}
	return types.ParseImportMode(string(m))
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeFileAtomic streams content into a temporary file in the target
// directory, syncs it and renames it over path.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".storykeeper-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

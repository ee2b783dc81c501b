// Package storykeeper is the public entry point to the StoryKeeper
// dictionary store. It opens a fully initialized SQLite backend while
// keeping the implementation internal.
package storykeeper

import (
	"github.com/petar-djukic/storykeeper/internal/sqlite"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

// Version is the release version reported by the CLI.
const Version = "0.9.2"

// Option configures Open.
type Option = sqlite.Option

// WithLogger routes store logging to the given slog logger.
var WithLogger = sqlite.WithLogger

// Open opens the dictionary at location, a file path or
// types.MemoryLocation. Tables are created, older layouts are migrated and
// the default contexts are seeded before Open returns. The caller must
// Close the returned Dictionary.
//
// Example:
//
//	dict, err := storykeeper.Open("/home/me/.local/share/storykeeper/storykeeper_dictionary.db")
//	if err != nil {
//	    return err
//	}
//	defer dict.Close()
func Open(location string, opts ...Option) (types.Dictionary, error) {
	b, err := sqlite.Open(types.Config{Location: location}, opts...)
	if err != nil {
		return nil, err
	}
	return b, nil
}

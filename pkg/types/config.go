package types

import (
	"errors"
	"strings"
)

// MemoryLocation opens an ephemeral store that lives only as long as the
// backend. Used by tests and throwaway sessions.
const MemoryLocation = ":memory:"

// DefaultDatabaseFile is the file name used when only a data directory is known.
const DefaultDatabaseFile = "storykeeper_dictionary.db"

// Config holds the parameters for opening a dictionary store.
type Config struct {
	// Location is a file path or MemoryLocation.
	Location string `json:"location" yaml:"location"`
}

// Config validation errors.
var (
	ErrLocationEmpty = errors.New("store location must not be empty")
)

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Location) == "" {
		return ErrLocationEmpty
	}
	return nil
}

// InMemory reports whether the config describes an ephemeral store.
func (c Config) InMemory() bool {
	return c.Location == MemoryLocation
}

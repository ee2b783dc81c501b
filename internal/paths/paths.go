// Package paths resolves the configuration directory and the dictionary
// database location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

// appDirName is the directory created under the platform config and data
// roots.
const appDirName = "storykeeper"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "STORYKEEPER_CONFIG_DIR"
	EnvDataDir   = "STORYKEEPER_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/storykeeper (fallback ~/.config/storykeeper)
// macOS:   ~/Library/Application Support/storykeeper
// Windows: %APPDATA%/storykeeper
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/storykeeper (fallback ~/.local/share/storykeeper)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return DefaultConfigDir()
}

func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > STORYKEEPER_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDatabase returns the dictionary database location following the
// precedence chain: flag > config value > STORYKEEPER_DATA_DIR env joined
// with the default file name > DefaultDataDir() joined with the default file
// name. types.MemoryLocation passes through unchanged.
func ResolveDatabase(flag, configValue string) (string, error) {
	for _, v := range []string{flag, configValue} {
		if v == types.MemoryLocation {
			return v, nil
		}
		if v != "" {
			return filepath.Abs(v)
		}
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(filepath.Join(env, types.DefaultDatabaseFile))
	}
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, types.DefaultDatabaseFile), nil
}

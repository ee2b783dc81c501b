// Package cli implements the storykeeper command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/storykeeper/internal/paths"
	"github.com/petar-djukic/storykeeper/pkg/storykeeper"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dbPath    string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "storykeeper" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:     "storykeeper",
		Short:   "A custom dictionary for fiction writers",
		Long:    "StoryKeeper keeps the invented words of a story, their senses and the\ncontexts they belong to, and spell-checks documents against them.",
		Version: storykeeper.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dbPath, "db", "", "dictionary database file (default: <data dir>/"+types.DefaultDatabaseFile+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newEntryCmd(a))
	root.AddCommand(newContextCmd(a))
	root.AddCommand(newSettingCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newCheckCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "storykeeper:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves the config directory, loads config.yaml and builds the
// logger. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysErr(err)
	}

	level := cfg.GetString(cfgKeyLogLevel)
	if a.flags.verbose {
		level = "debug"
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}

	a.configDir = configDir
	a.cfg = cfg
	a.logger = logger
	return nil
}

// databasePath resolves the dictionary location from flag, config and env.
func (a *app) databasePath() (string, error) {
	p, err := paths.ResolveDatabase(a.flags.dbPath, a.cfg.GetString(cfgKeyDatabase))
	if err != nil {
		return "", sysErr(fmt.Errorf("resolve database: %w", err))
	}
	return p, nil
}

// withStore opens the dictionary, runs fn and closes it.
func (a *app) withStore(fn func(dict types.Dictionary) error) error {
	location, err := a.databasePath()
	if err != nil {
		return err
	}
	dict, err := storykeeper.Open(location, storykeeper.WithLogger(a.logger))
	if err != nil {
		return sysErr(fmt.Errorf("open dictionary: %w", err))
	}
	defer dict.Close()
	return fn(dict)
}

// systemError marks a failure of the environment rather than of the input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}

// userErrors are store errors caused by the input rather than the system.
var userErrors = []error{
	types.ErrInvalidWord,
	types.ErrInvalidSense,
	types.ErrUnknownPartOfSpeech,
	types.ErrSenseOutOfRange,
	types.ErrMalformedRecord,
	types.ErrInvalidImportMode,
	types.ErrContextExists,
}

// storeErr marks err as a system error unless it wraps one of userErrors.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	for _, u := range userErrors {
		if errors.Is(err, u) {
			return err
		}
	}
	return sysErr(err)
}

// exitCode maps an error returned by a command to a process exit code.
// Errors not marked as system errors are user errors: bad arguments,
// invalid records and rejected names.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

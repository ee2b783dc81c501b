package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/storykeeper/internal/paths"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

// cliEnv points the CLI at a private config dir and database.
type cliEnv struct {
	configDir string
	db        string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	t.Setenv("STORYKEEPER_DATABASE", "")
	t.Setenv("STORYKEEPER_LOG_LEVEL", "")
	return cliEnv{
		configDir: filepath.Join(dir, "config"),
		db:        filepath.Join(dir, "data", types.DefaultDatabaseFile),
	}
}

// run executes the CLI in-process and returns stdout and stderr.
func (e cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--db", e.db}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun fails the test when the command fails.
func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := e.run(t, args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return out
}

func TestVersionCommand(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "version")
	assert.Equal(t, "storykeeper v0.9.2\nmodule: github.com/petar-djukic/storykeeper\n", out)
}

func TestInitCommand(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "init")
	assert.Contains(t, out, "StoryKeeper initialized successfully")
	assert.Contains(t, out, env.db)

	_, err := os.Stat(env.db)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, defaultConfigFile(), cfg)

	// A second init keeps the existing config.
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("log_level: error\n"), 0o644))
	env.mustRun(t, "init")
	data, err = os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, "log_level: error\n", string(data))
}

func TestConfigDatabaseKey(t *testing.T) {
	env := newCLIEnv(t)
	fromConfig := filepath.Join(t.TempDir(), "configured.db")
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("database: "+fromConfig+"\n"), 0o644))

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config-dir", env.configDir, "context", "add", "Galaxy"})
	require.NoError(t, root.Execute())

	_, err := os.Stat(fromConfig)
	assert.NoError(t, err, "database key in config.yaml selects the file")
}

func TestInvalidLogLevel(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("log_level: chatty\n"), 0o644))

	_, _, err := env.run(t, "entry", "words")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestVerboseLogsToStderr(t *testing.T) {
	env := newCLIEnv(t)

	_, stderr, err := env.run(t, "--verbose", "entry", "words")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestUnopenableDatabaseIsSystemError(t *testing.T) {
	env := newCLIEnv(t)
	env.db = t.TempDir()

	_, _, err := env.run(t, "entry", "words")
	require.Error(t, err)
	assert.Equal(t, exitSysError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitSuccess},
		{name: "plain error", err: errors.New("bad args"), want: exitUserError},
		{name: "system error", err: sysErr(errors.New("disk")), want: exitSysError},
		{name: "store failure", err: storeErr(errors.New("database is locked")), want: exitSysError},
		{name: "invalid word", err: storeErr(types.ErrInvalidWord), want: exitUserError},
		{name: "malformed record", err: storeErr(types.ErrMalformedRecord), want: exitUserError},
		{name: "context exists", err: storeErr(types.ErrContextExists), want: exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

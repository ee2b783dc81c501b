package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

func TestContextCommands(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "context", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "Adjective (race-like)", lines[0])

	env.mustRun(t, "context", "add", "Galaxy")
	env.mustRun(t, "context", "add", "Galaxy")
	env.mustRun(t, "entry", "add", "andros", "--definition", "A spiral arm.", "--context", "Galaxy")

	env.mustRun(t, "context", "rename", "Galaxy", "Universe")
	out = env.mustRun(t, "--json", "context", "list")
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Contains(t, names, "Universe")
	assert.NotContains(t, names, "Galaxy")
	assert.Len(t, names, 11)

	out = env.mustRun(t, "entry", "show", "andros")
	assert.Contains(t, out, "(Galaxy)", "renaming a context leaves entry hints alone")

	_, _, err := env.run(t, "context", "rename", "Universe", "Planet")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrContextExists)
	assert.Equal(t, exitUserError, exitCode(err))

	env.mustRun(t, "context", "delete", "Universe")
	env.mustRun(t, "context", "delete", "Universe")
	out = env.mustRun(t, "context", "list")
	assert.NotContains(t, out, "Universe")

	_, _, err = env.run(t, "context", "add", "  ")
	assert.Error(t, err)
}

func TestContextAutoLearn(t *testing.T) {
	env := newCLIEnv(t)

	assert.Equal(t, "auto-learn contexts: off\n", env.mustRun(t, "context", "auto-learn"))
	assert.Equal(t, "auto-learn contexts: on\n", env.mustRun(t, "context", "auto-learn", "on"))
	assert.Equal(t, "true\n", env.mustRun(t, "setting", "get", types.SettingAutoLearnContexts))
	assert.Equal(t, "auto-learn contexts: off\n", env.mustRun(t, "context", "auto-learn", "false"))

	_, _, err := env.run(t, "context", "auto-learn", "sometimes")
	assert.Error(t, err)
}

func TestSettingCommands(t *testing.T) {
	env := newCLIEnv(t)

	assert.Equal(t, "fallback\n", env.mustRun(t, "setting", "get", "theme", "--default", "fallback"))
	assert.Equal(t, "theme = dark\n", env.mustRun(t, "setting", "set", "theme", "dark"))
	assert.Equal(t, "dark\n", env.mustRun(t, "setting", "get", "theme", "--default", "fallback"))

	out := env.mustRun(t, "--json", "setting", "get", "theme")
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"theme": "dark"}, got)
}

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand(t *testing.T) {
	env := newCLIEnv(t)
	dir := t.TempDir()
	words := filepath.Join(dir, "words")
	require.NoError(t, os.WriteFile(words, []byte("the\nfleet\narrived\nat\ndawn\n"), 0o644))
	doc := filepath.Join(dir, "book", "ch1.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(doc), 0o755))
	require.NoError(t, os.WriteFile(doc, []byte("The kaneran fleet\narrived at vorth, at dawn."), 0o644))

	env.mustRun(t, "entry", "add", "Kaneran", "--definition", "An alien species.")

	out := env.mustRun(t, "check", filepath.Join(dir, "**", "*.txt"), "--wordlist", words)
	assert.Equal(t, doc+":2: vorth\n", out)
}

func TestCheckMissingWordListIsBestEffort(t *testing.T) {
	env := newCLIEnv(t)
	doc := filepath.Join(t.TempDir(), "ch1.txt")
	require.NoError(t, os.WriteFile(doc, []byte("zorg vorth"), 0o644))

	out, stderr, err := env.run(t, "check", doc, "--wordlist", filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "word list unavailable")
}

func TestCheckNoMatches(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "check", filepath.Join(t.TempDir(), "*.txt"))
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

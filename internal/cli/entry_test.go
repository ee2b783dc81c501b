package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

func TestEntryCommands(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "entry", "add", "Kaneran", "--category", "Species", "--pos", "Noun",
		"--definition", "An alien species.", "--context", "Sci-fi context")
	assert.Equal(t, "added kaneran (1)\n", out)

	env.mustRun(t, "entry", "add", "kaneran", "--category", "Species", "--pos", "Adjective",
		"--definition", "Of the kaneran.", "--sense", "2")
	env.mustRun(t, "entry", "add", "vorth", "--definition", "A cold world.")

	out = env.mustRun(t, "entry", "list")
	assert.Equal(t,
		"kaneran [Species]\n"+
			"  - (1) Noun: An alien species. (Sci-fi context)\n"+
			"  - (2) Adjective: Of the kaneran. ()\n"+
			"vorth [General]\n"+
			"  - (1) Noun: A cold world. ()\n",
		out)

	out = env.mustRun(t, "entry", "words")
	assert.Equal(t, "kaneran\nvorth\n", out)

	out = env.mustRun(t, "entry", "show", "KANERAN")
	assert.Contains(t, out, "kaneran [Species]")
	assert.NotContains(t, out, "vorth")

	env.mustRun(t, "entry", "delete", "kaneran", "--sense", "2")
	out = env.mustRun(t, "--json", "entry", "show", "kaneran")
	var records []types.EntryRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].SenseNumber)

	env.mustRun(t, "entry", "delete", "kaneran")
	out = env.mustRun(t, "--json", "entry", "words")
	var words []string
	require.NoError(t, json.Unmarshal([]byte(out), &words))
	assert.Equal(t, []string{"vorth"}, words)
}

func TestEntryShowMissing(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "entry", "show", "nobody")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestEntryAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "blank word", args: []string{"entry", "add", "  ", "--definition", "x"}},
		{name: "negative sense", args: []string{"entry", "add", "zorg", "--sense", "-1"}},
		{name: "missing word", args: []string{"entry", "add"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			_, _, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestEntryAddSenses(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun(t, "context", "auto-learn", "on")
	out := env.mustRun(t, "entry", "add-senses", "Drell", "--category", "",
		"--sense-spec", "Noun|A reptilian people.|Homeworld lore|1",
		"--sense-spec", "Verb||ignored|2",
		"--sense-spec", "adjective|Of the drell.||3",
	)
	assert.Contains(t, out, "added 2 sense(s) of drell [General]")
	assert.Contains(t, out, "learned context Homeworld lore")

	out = env.mustRun(t, "context", "list")
	assert.Contains(t, out, "Homeworld lore\n")

	out = env.mustRun(t, "entry", "show", "drell")
	assert.Contains(t, out, "(3) Adjective: Of the drell.")

	_, _, err := env.run(t, "entry", "add-senses", "drell", "--sense-spec", "Gerund|x||1")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownPartOfSpeech)
	assert.Equal(t, exitUserError, exitCode(err))

	_, _, err = env.run(t, "entry", "add-senses", "drell", "--sense-spec", "Noun|x||51")
	assert.ErrorIs(t, err, types.ErrSenseOutOfRange)
}

func TestEntryAddSensesNothingToAdd(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "entry", "add-senses", "drell", "--sense-spec", "Noun|")
	assert.Contains(t, out, "nothing to add")
}

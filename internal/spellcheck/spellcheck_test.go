package spellcheck

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/storykeeper/internal/sqlite"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

type staticWords struct {
	words []string
	err   error
}

func (s staticWords) Words() ([]string, error) { return s.words, s.err }

var english = NewWordList([]string{"the", "fleet", "arrived", "at", "dawn", "a", "cold", "world"})

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{text: "The fleet arrived.", want: []string{"The", "fleet", "arrived"}},
		{text: "Hello, world! Really?", want: []string{"Hello", "world", "Really"}},
		{text: "x2 don't 42 well-known", want: nil},
		{text: "  spaced\tout\nlines ", want: []string{"spaced", "out", "lines"}},
		{text: "...;:", want: nil},
		{text: "élan vital", want: []string{"élan", "vital"}},
		{text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestWordList(t *testing.T) {
	wl, err := ReadWordList(strings.NewReader("Apple\nbanana\n\nbanana\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, wl.Len())
	assert.True(t, wl.Known("apple"))
	assert.True(t, wl.Known("BANANA"))
	assert.False(t, wl.Known("cherry"))
}

func TestLoadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	require.NoError(t, os.WriteFile(path, []byte("zorg\nvorth\n"), 0o644))

	wl, err := LoadWordList(path)
	require.NoError(t, err)
	assert.True(t, wl.Known("Zorg"))

	_, err = LoadWordList(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		source WordSource
		text   string
		want   []Misspelling
	}{
		{
			name:   "unknown words are flagged with their line",
			source: staticWords{},
			text:   "The kaneran fleet\narrived at dawn, vorth.",
			want:   []Misspelling{{Word: "kaneran", Line: 1}, {Word: "vorth", Line: 2}},
		},
		{
			name:   "custom words are never flagged",
			source: staticWords{words: []string{"kaneran"}},
			text:   "The Kaneran fleet arrived at dawn.",
			want:   nil,
		},
		{
			name:   "custom words match ignoring case",
			source: staticWords{words: []string{"Vorth"}},
			text:   "VORTH a cold world",
			want:   nil,
		},
		{
			name:   "nil source uses only the word list",
			source: nil,
			text:   "a cold zorg",
			want:   []Misspelling{{Word: "zorg", Line: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(english, tt.source, nil)
			assert.Equal(t, tt.want, c.Check(tt.text))
		})
	}
}

func TestCheckSwallowsSourceErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewChecker(english, staticWords{err: errors.New("database is locked")}, logger)

	assert.Nil(t, c.Check("zorg vorth"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "database is locked")
}

func TestCheckWithoutSpeller(t *testing.T) {
	c := NewChecker(nil, staticWords{}, nil)
	assert.Nil(t, c.Check("zorg vorth"))
}

func TestCheckAgainstStore(t *testing.T) {
	b, err := sqlite.Open(types.Config{Location: types.MemoryLocation})
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, b.Entries().Upsert(types.Entry{
		Word: "kaneran", Category: "Species", PartOfSpeech: "Noun", SenseNumber: 1,
	}))

	c := NewChecker(english, b.Entries(), nil)
	assert.Equal(t, []Misspelling{{Word: "vorth", Line: 1}}, c.Check("The Kaneran fleet arrived at vorth."))

	require.NoError(t, b.Close())
	assert.Nil(t, c.Check("vorth"), "a closed store is swallowed")
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{"a.txt", "ch1/b.txt", "ch1/deep/c.txt", "ch1/notes.md"} {
		p := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	files, err := Expand([]string{filepath.Join(dir, "**", "*.txt"), filepath.Join(dir, "a.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "ch1", "b.txt"),
		filepath.Join(dir, "ch1", "deep", "c.txt"),
	}, files)

	files, err = Expand([]string{filepath.Join(dir, "*.md")})
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = Expand([]string{"[unclosed"})
	assert.Error(t, err)
}

// Package spellcheck flags words in a document that are neither in a word
// list nor in the user's dictionary. Checking is best effort: a failing word
// source is logged and the document is reported clean.
package spellcheck

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

// DefaultWordList is the system word list used when none is configured.
const DefaultWordList = "/usr/share/dict/words"

// trimChars are stripped from both ends of every token.
const trimChars = ".,!?;:"

// WordSource supplies the custom words that are never flagged.
// types.EntryStore satisfies it.
type WordSource interface {
	Words() ([]string, error)
}

// Speller reports whether a word is spelled correctly.
type Speller interface {
	Known(word string) bool
}

// Misspelling is one flagged token.
type Misspelling struct {
	Word string
	Line int
}

// WordList is a Speller backed by a set of lowercase words.
type WordList struct {
	words map[string]struct{}
}

// NewWordList builds a WordList from words.
func NewWordList(words []string) *WordList {
	wl := &WordList{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = types.NormalizeWord(w); w != "" {
			wl.words[w] = struct{}{}
		}
	}
	return wl
}

// LoadWordList reads a newline-separated word list such as
// /usr/share/dict/words.
func LoadWordList(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()
	return ReadWordList(f)
}

// ReadWordList reads one word per line from r.
func ReadWordList(r io.Reader) (*WordList, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return NewWordList(words), nil
}

// Known reports whether word is in the list, ignoring case.
func (wl *WordList) Known(word string) bool {
	_, ok := wl.words[types.NormalizeWord(word)]
	return ok
}

// Len returns the number of distinct words.
func (wl *WordList) Len() int { return len(wl.words) }

// Tokenize splits text on whitespace, strips trailing and leading
// punctuation from each field and keeps only purely alphabetic tokens.
func Tokenize(text string) []string {
	var tokens []string
	for _, f := range strings.Fields(text) {
		if tok := strings.Trim(f, trimChars); isAlpha(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Checker flags unknown words.
type Checker struct {
	speller Speller
	source  WordSource
	logger  *slog.Logger
}

// NewChecker returns a Checker. A nil speller flags nothing; a nil logger
// discards warnings.
func NewChecker(speller Speller, source WordSource, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{speller: speller, source: source, logger: logger}
}

// Check returns the misspelled tokens of text in document order. The custom
// word set is reloaded on every call so new entries take effect at once.
func (c *Checker) Check(text string) []Misspelling {
	if c.speller == nil {
		return nil
	}
	custom, ok := c.customWords()
	if !ok {
		return nil
	}

	var out []Misspelling
	for i, line := range strings.Split(text, "\n") {
		for _, tok := range Tokenize(line) {
			if _, ok := custom[types.NormalizeWord(tok)]; ok {
				continue
			}
			if c.speller.Known(tok) {
				continue
			}
			out = append(out, Misspelling{Word: tok, Line: i + 1})
		}
	}
	return out
}

func (c *Checker) customWords() (map[string]struct{}, bool) {
	set := make(map[string]struct{})
	if c.source == nil {
		return set, true
	}
	words, err := c.source.Words()
	if err != nil {
		c.logger.Warn("spellcheck skipped: loading custom words", "error", err)
		return nil, false
	}
	for _, w := range words {
		set[types.NormalizeWord(w)] = struct{}{}
	}
	return set, true
}

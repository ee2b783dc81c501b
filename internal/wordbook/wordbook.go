// Package wordbook applies the editing rules of the word entry form on top
// of the dictionary store: category defaulting, the fixed part-of-speech
// list, the sense range and context auto-learning.
package wordbook

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

// PartsOfSpeech are the accepted part-of-speech labels, in form order.
var PartsOfSpeech = []string{"Noun", "Verb", "Adjective", "Adverb", "Pronoun", "Other"}

// Sense number bounds.
const (
	MinSense = 1
	MaxSense = 50
)

// Service writes entries through the form rules.
type Service struct {
	dict   types.Dictionary
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Service over dict.
func New(dict types.Dictionary, opts ...Option) *Service {
	s := &Service{
		dict:   dict,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddResult reports what AddWord stored.
type AddResult struct {
	Word     string
	Category string
	Senses   []types.Sense
	Learned  []string
}

// AddWord stores the senses of word under category. Senses with a blank
// definition are dropped; when none remain nothing is written and the
// result has no senses. Every remaining sense is checked before the batch is
// written. When auto-learn is on, each distinct non-empty hint is added to
// the context vocabulary.
func (s *Service) AddWord(word, category string, senses []types.Sense) (AddResult, error) {
	word = types.NormalizeWord(word)
	if word == "" {
		return AddResult{}, types.ErrInvalidWord
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = types.DefaultCategory
	}
	res := AddResult{Word: word, Category: category}

	for _, sn := range senses {
		checked, keep, err := checkSense(sn)
		if err != nil {
			return AddResult{}, fmt.Errorf("word %s: %w", word, err)
		}
		if keep {
			res.Senses = append(res.Senses, checked)
		}
	}
	if len(res.Senses) == 0 {
		return res, nil
	}

	if err := s.dict.Entries().UpsertMany(word, category, res.Senses); err != nil {
		return AddResult{}, err
	}

	learn, err := s.AutoLearn()
	if err != nil {
		return res, err
	}
	if learn {
		seen := make(map[string]bool)
		for _, sn := range res.Senses {
			if sn.ContextHint == "" || seen[sn.ContextHint] {
				continue
			}
			seen[sn.ContextHint] = true
			if err := s.dict.Contexts().Add(sn.ContextHint); err != nil {
				return res, err
			}
			res.Learned = append(res.Learned, sn.ContextHint)
		}
	}

	s.logger.Debug("added word", "word", word, "category", category, "senses", len(res.Senses), "learned", len(res.Learned))
	return res, nil
}

// AutoLearn reports whether hints are added to the context vocabulary. Only
// the exact value "true" turns it on.
func (s *Service) AutoLearn() (bool, error) {
	v, err := s.dict.Settings().Get(types.SettingAutoLearnContexts, "false")
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// SetAutoLearn stores the auto-learn flag as "true" or "false".
func (s *Service) SetAutoLearn(on bool) error {
	v := "false"
	if on {
		v = "true"
	}
	return s.dict.Settings().Set(types.SettingAutoLearnContexts, v)
}

// checkSense trims the free-text fields and validates the rest. keep is
// false for a sense with a blank definition.
func checkSense(sn types.Sense) (types.Sense, bool, error) {
	sn.Definition = strings.TrimSpace(sn.Definition)
	sn.ContextHint = strings.TrimSpace(sn.ContextHint)
	if sn.Definition == "" {
		return sn, false, nil
	}

	pos, ok := CanonicalPartOfSpeech(sn.PartOfSpeech)
	if !ok {
		return sn, false, fmt.Errorf("%w: %q", types.ErrUnknownPartOfSpeech, sn.PartOfSpeech)
	}
	sn.PartOfSpeech = pos

	if sn.SenseNumber == 0 {
		sn.SenseNumber = types.DefaultSenseNumber
	}
	if sn.SenseNumber < MinSense || sn.SenseNumber > MaxSense {
		return sn, false, fmt.Errorf("%w: %d not in %d..%d", types.ErrSenseOutOfRange, sn.SenseNumber, MinSense, MaxSense)
	}
	return sn, true, nil
}

// CanonicalPartOfSpeech matches label against PartsOfSpeech ignoring case.
func CanonicalPartOfSpeech(label string) (string, bool) {
	label = strings.TrimSpace(label)
	for _, p := range PartsOfSpeech {
		if strings.EqualFold(p, label) {
			return p, true
		}
	}
	return "", false
}

package wordbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

// Group is one word under one category with its senses in list order.
type Group struct {
	Word     string
	Category string
	Senses   []types.Sense
}

// GroupEntries groups entries by word and category, keeping the order in
// which each pair first appears.
func GroupEntries(entries []types.Entry) []Group {
	var groups []Group
	index := make(map[[2]string]int)
	for _, e := range entries {
		key := [2]string{e.Word, e.Category}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Word: e.Word, Category: e.Category})
		}
		groups[i].Senses = append(groups[i].Senses, types.Sense{
			PartOfSpeech: e.PartOfSpeech,
			Definition:   e.Definition,
			ContextHint:  e.ContextHint,
			SenseNumber:  e.SenseNumber,
		})
	}
	return groups
}

// String renders the group as a "word [category]" heading followed by one
// "  - (n) pos: definition (hint)" line per sense.
func (g Group) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]", g.Word, g.Category)
	for _, s := range g.Senses {
		fmt.Fprintf(&b, "\n  - (%d) %s: %s (%s)", s.SenseNumber, s.PartOfSpeech, s.Definition, s.ContextHint)
	}
	return b.String()
}

// ParseSenseSpec parses "pos|definition|hint|n". The hint and sense number
// may be omitted; a missing sense number is DefaultSenseNumber.
func ParseSenseSpec(spec string) (types.Sense, error) {
	parts := strings.Split(spec, "|")
	if len(parts) < 2 || len(parts) > 4 {
		return types.Sense{}, fmt.Errorf("sense spec %q: want pos|definition[|hint[|n]]", spec)
	}
	s := types.Sense{
		PartOfSpeech: strings.TrimSpace(parts[0]),
		Definition:   strings.TrimSpace(parts[1]),
		SenseNumber:  types.DefaultSenseNumber,
	}
	if len(parts) > 2 {
		s.ContextHint = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(parts[3]))
		if err != nil {
			return types.Sense{}, fmt.Errorf("sense spec %q: %w: %w", spec, types.ErrSenseOutOfRange, err)
		}
		s.SenseNumber = n
	}
	return s, nil
}

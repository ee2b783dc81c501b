package wordbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

func TestGroupEntries(t *testing.T) {
	entries := []types.Entry{
		{Word: "kaneran", Category: "Species", PartOfSpeech: "Noun", Definition: "An alien species.", ContextHint: "Sci-fi context", SenseNumber: 1},
		{Word: "kaneran", Category: "Species", PartOfSpeech: "Adjective", Definition: "Of the kaneran.", SenseNumber: 2},
		{Word: "zorg", Category: "Planet", PartOfSpeech: "Noun", Definition: "A world.", SenseNumber: 1},
		{Word: "zorg", Category: "Species", PartOfSpeech: "Noun", Definition: "A beast.", SenseNumber: 1},
	}

	groups := GroupEntries(entries)
	require.Len(t, groups, 3)
	assert.Equal(t, "kaneran", groups[0].Word)
	assert.Len(t, groups[0].Senses, 2)
	assert.Equal(t, "Planet", groups[1].Category)
	assert.Equal(t, "Species", groups[2].Category)

	assert.Equal(t,
		"kaneran [Species]\n  - (1) Noun: An alien species. (Sci-fi context)\n  - (2) Adjective: Of the kaneran. ()",
		groups[0].String(),
	)
}

func TestGroupEntriesEmpty(t *testing.T) {
	assert.Empty(t, GroupEntries(nil))
}

func TestParseSenseSpec(t *testing.T) {
	tests := []struct {
		spec    string
		want    types.Sense
		wantErr bool
	}{
		{spec: "Noun|An alien species.|Sci-fi context|2", want: types.Sense{PartOfSpeech: "Noun", Definition: "An alien species.", ContextHint: "Sci-fi context", SenseNumber: 2}},
		{spec: "Verb|to zorg", want: types.Sense{PartOfSpeech: "Verb", Definition: "to zorg", SenseNumber: 1}},
		{spec: "Verb|to zorg|Planet", want: types.Sense{PartOfSpeech: "Verb", Definition: "to zorg", ContextHint: "Planet", SenseNumber: 1}},
		{spec: "Verb|to zorg||", want: types.Sense{PartOfSpeech: "Verb", Definition: "to zorg", SenseNumber: 1}},
		{spec: "Noun", wantErr: true},
		{spec: "Noun|a|b|c|d", wantErr: true},
		{spec: "Noun|a|b|two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseSenseSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

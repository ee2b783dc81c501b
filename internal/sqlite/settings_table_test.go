// Unit tests for the settings store.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

func TestSettingsGetSet(t *testing.T) {
	b := newTestBackend(t)
	s := b.Settings()

	v, err := s.Get(types.SettingAutoLearnContexts, "false")
	require.NoError(t, err)
	assert.Equal(t, "false", v, "missing key returns the default")

	require.NoError(t, s.Set(types.SettingAutoLearnContexts, "true"))
	v, err = s.Get(types.SettingAutoLearnContexts, "false")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	require.NoError(t, s.Set(types.SettingAutoLearnContexts, "false"))
	v, err = s.Get(types.SettingAutoLearnContexts, "true")
	require.NoError(t, err)
	assert.Equal(t, "false", v, "set overwrites")

	require.NoError(t, s.Set("empty", ""))
	v, err = s.Get("empty", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "", v, "a stored empty value is not the default")
}

func TestSettingsGetBool(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		def    bool
		want   bool
	}{
		{name: "missing uses default", def: true, want: true},
		{name: "true", stored: ptr("true"), want: true},
		{name: "false", stored: ptr("false"), def: true, want: false},
		{name: "unparseable uses default", stored: ptr("maybe"), def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBackend(t)
			if tt.stored != nil {
				require.NoError(t, b.Settings().Set("flag", *tt.stored))
			}

			got, err := b.Settings().GetBool("flag", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr(s string) *string { return &s }

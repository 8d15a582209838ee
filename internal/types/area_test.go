package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArea(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Area
		wantErr bool
	}{
		{name: "exact", input: "celestial-clocks", want: AreaCelestialClocks},
		{name: "case and whitespace", input: "  Meteor-Steel ", want: AreaMeteorSteel},
		{name: "empty means none", input: "", want: ""},
		{name: "typo rejected", input: "celestial-clock", wantErr: true},
		{name: "unknown rejected", input: "astrology", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArea(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownArea))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidAreas(t *testing.T) {
	assert.Len(t, ValidAreas, 10)
	assert.Equal(t, AreaCelestialClocks, ValidAreas[0])
	assert.Equal(t, AreaStore, ValidAreas[len(ValidAreas)-1])

	for _, a := range ValidAreas {
		assert.True(t, a.IsValid(), a)
	}
	assert.False(t, Area("").IsValid())
	assert.Equal(t, len(ValidAreas), len(AreaStrings()))
}

func TestLastUserMessage(t *testing.T) {
	t.Run("picks latest user turn", func(t *testing.T) {
		msgs := []Message{
			{Role: RoleUser, Content: "first"},
			{Role: RoleAssistant, Content: "reply"},
			{Role: RoleUser, Content: "second"},
			{Role: RoleAssistant, Content: "reply again"},
		}
		m, ok := LastUserMessage(msgs)
		require.True(t, ok)
		assert.Equal(t, "second", m.Content)
	})

	t.Run("no user turns", func(t *testing.T) {
		_, ok := LastUserMessage([]Message{{Role: RoleAssistant, Content: "hi"}})
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := LastUserMessage(nil)
		assert.False(t, ok)
	})
}

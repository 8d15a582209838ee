package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/logging"
	"atlas/internal/perception"
	"atlas/internal/prompt"
	"atlas/internal/types"
	"atlas/internal/usage"
)

// runAtlas executes the CLI against a temp config with no API keys.
func runAtlas(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "atlas.yaml")
	yaml := "logging:\n  level: error\n  format: console\nusage:\n  enabled: true\n  database_path: " + filepath.Join(dir, "usage.db") + "\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(yaml), 0o644))
	t.Cleanup(func() { logging.SetBase(nil, nil) })

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgFile}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestClassifyCmd(t *testing.T) {
	out, err := runAtlas(t, "classify", "What does Saturn mean in my chart?")
	require.NoError(t, err)
	assert.Equal(t, "celestial-clocks\n", out)

	out, err = runAtlas(t, "classify", "Hello", "there")
	require.NoError(t, err)
	assert.Equal(t, "(none)\n", out)
}

func TestPromptCmd(t *testing.T) {
	t.Run("core", func(t *testing.T) {
		out, err := runAtlas(t, "prompt", "--core")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "You are Atlas"))
		assert.NotContains(t, out, prompt.AreaHeading)
	})

	t.Run("area", func(t *testing.T) {
		out, err := runAtlas(t, "prompt", "celestial-clocks")
		require.NoError(t, err)
		assert.Contains(t, out, prompt.AreaHeading)
		assert.Contains(t, out, "Seven Metals")
	})

	t.Run("knowledge with episode", func(t *testing.T) {
		out, err := runAtlas(t, "prompt", "mythology-channel", "--knowledge", "--episode", "king-arthur")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "## Mythology Channel Episodes"))
		assert.Contains(t, out, "## DEEP DIVE: King Arthur")
	})

	t.Run("situation", func(t *testing.T) {
		out, err := runAtlas(t, "prompt", "--situation", "Viewing /games for 2 minutes.")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(out, "\n\nViewing /games for 2 minutes.\n"))
	})

	t.Run("unknown area", func(t *testing.T) {
		_, err := runAtlas(t, "prompt", "atlantis")
		assert.ErrorIs(t, err, types.ErrUnknownArea)
	})

	t.Run("knowledge needs area", func(t *testing.T) {
		_, err := runAtlas(t, "prompt", "--knowledge")
		assert.Error(t, err)
	})
}

func TestPersonaCmd(t *testing.T) {
	out, err := runAtlas(t, "persona", "planet", "Saturn")
	require.NoError(t, err)
	assert.Contains(t, out, "My metal is Lead")
	assert.Contains(t, out, "Always first person.")

	_, err = runAtlas(t, "persona", "planet", "Vulcan")
	assert.Error(t, err)

	_, err = runAtlas(t, "persona", "planet")
	assert.Error(t, err)
}

func TestStatsCmd(t *testing.T) {
	out, err := runAtlas(t, "stats", "--json")
	require.NoError(t, err)

	var st prompt.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Positive(t, st.Core.Tokens)
	assert.Len(t, st.Areas, len(types.ValidAreas))

	out, err = runAtlas(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "celestial-clocks")
	assert.Contains(t, out, "with core")
}

func TestUsageCmdEmpty(t *testing.T) {
	out, err := runAtlas(t, "usage", "--json")
	require.NoError(t, err)

	var st usage.AggregatedStats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Zero(t, st.Turns)
}

func TestAskWithoutKey(t *testing.T) {
	_, err := runAtlas(t, "ask", "Who is Saturn?")
	assert.ErrorIs(t, err, perception.ErrNotConfigured)
}

func TestParsePersonaFlag(t *testing.T) {
	d, err := parsePersonaFlag(" zodiac : Aries ")
	require.NoError(t, err)
	assert.Equal(t, "zodiac", d.Type)
	assert.Equal(t, "Aries", d.Name)

	for _, bad := range []string{"", "planet", "planet:", ":Mars"} {
		_, err := parsePersonaFlag(bad)
		assert.Error(t, err, bad)
	}
}

func TestCountRowsSortedByTotal(t *testing.T) {
	rows := countRows(map[string]usage.TokenCounts{
		"games":            {Turns: 1, Total: 10},
		"celestial-clocks": {Turns: 3, Total: 900},
		"store":            {Turns: 1, Total: 10},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "celestial-clocks", rows[0][0])
	assert.Equal(t, "games", rows[1][0])
	assert.Equal(t, "store", rows[2][0])
	assert.Equal(t, "3", rows[0][1])
}

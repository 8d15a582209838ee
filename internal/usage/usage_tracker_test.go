package usage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Tracker {
	t.Helper()
	tr, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestTrackAssignsIDAndTimestamp(t *testing.T) {
	tr := openTest(t)

	ev, err := tr.Track(context.Background(), UsageEvent{Provider: "anthropic", Model: "claude", InputTokens: 10, OutputTokens: 5})
	require.NoError(t, err)

	_, err = uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestStatsAggregates(t *testing.T) {
	tr := openTest(t)
	ctx := context.Background()

	events := []UsageEvent{
		{Provider: "anthropic", Model: "claude", Area: "celestial-clocks", PromptTokens: 100, InputTokens: 120, OutputTokens: 30},
		{Provider: "anthropic", Model: "claude", Area: "celestial-clocks", PromptTokens: 100, InputTokens: 150, OutputTokens: 20},
		{Provider: "gemini", Model: "gemini-2.5-flash", Area: "games", PromptTokens: 50, InputTokens: 60, OutputTokens: 10},
		{Provider: "gemini", Model: "gemini-2.5-flash", PromptTokens: 40, InputTokens: 45, OutputTokens: 5},
	}
	for _, ev := range events {
		_, err := tr.Track(ctx, ev)
		require.NoError(t, err)
	}

	st, err := tr.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), st.Turns)
	assert.Equal(t, TokenCounts{Turns: 4, Prompt: 290, Input: 375, Output: 65, Total: 440}, st.Total)
	assert.Equal(t, TokenCounts{Turns: 2, Prompt: 200, Input: 270, Output: 50, Total: 320}, st.ByArea["celestial-clocks"])
	assert.Equal(t, int64(1), st.ByArea[NoArea].Turns)
	assert.Equal(t, int64(2), st.ByProvider["gemini"].Turns)
	assert.Equal(t, int64(320), st.ByModel["claude"].Total)
}

func TestStatsEmpty(t *testing.T) {
	st, err := openTest(t).Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Turns)
	assert.Empty(t, st.ByArea)
}

func TestRecentNewestFirst(t *testing.T) {
	tr := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	for i, area := range []string{"games", "store", "library"} {
		_, err := tr.Track(ctx, UsageEvent{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Provider:  "anthropic",
			Model:     "claude",
			Area:      area,
			Persona:   "planet:Mars",
		})
		require.NoError(t, err)
	}

	got, err := tr.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "library", got[0].Area)
	assert.Equal(t, "store", got[1].Area)
	assert.Equal(t, "planet:Mars", got[0].Persona)
	assert.True(t, got[0].Timestamp.Equal(base.Add(2*time.Second)))
}

func TestDuplicateIDFails(t *testing.T) {
	tr := openTest(t)
	ctx := context.Background()

	_, err := tr.Track(ctx, UsageEvent{ID: "fixed", Provider: "p", Model: "m"})
	require.NoError(t, err)
	_, err = tr.Track(ctx, UsageEvent{ID: "fixed", Provider: "p", Model: "m"})
	assert.Error(t, err)
}

func TestOpenPersistsToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "usage.db")
	ctx := context.Background()

	tr, err := Open(path)
	require.NoError(t, err)
	_, err = tr.Track(ctx, UsageEvent{Provider: "anthropic", Model: "claude", InputTokens: 7})
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	st, err := reopened.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), st.Total.Input)
	assert.Equal(t, path, reopened.Path())
}

func TestTokenCountsAdd(t *testing.T) {
	var tc TokenCounts
	tc.Add(10, 12, 3)
	tc.Add(0, 1, 1)
	assert.Equal(t, TokenCounts{Turns: 2, Prompt: 10, Input: 13, Output: 4, Total: 17}, tc)
}

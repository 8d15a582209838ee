package prompt

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/corpus"
	"atlas/internal/perception"
	"atlas/internal/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := corpus.Load()
	require.NoError(t, err)
	e, err := New(c)
	require.NoError(t, err)
	return e
}

func TestCorePromptSections(t *testing.T) {
	e := newTestEngine(t)
	core := e.CorePrompt()

	require.NotEmpty(t, core)
	assert.True(t, strings.HasPrefix(core, "You are Atlas"), "identity comes first")

	order := []string{"You are Atlas", "CHARACTER RULES", "CORE STANCE", "WORKED EXAMPLE", "CELESTIAL CLOCKS:", "NAVIGATION LINKS", "NATAL CHART"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(core, marker)
		require.NotEqual(t, -1, idx, "missing %q", marker)
		assert.Greater(t, idx, last, "%q out of order", marker)
		last = idx
	}

	assert.Contains(t, core, "[[Planet|/celestial-clocks?planet=Saturn]]")
	assert.NotContains(t, core, AreaHeading)
}

func TestCorePromptSummariesFollowAreaOrder(t *testing.T) {
	core := newTestEngine(t).CorePrompt()

	last := -1
	for _, marker := range []string{"CELESTIAL CLOCKS:", "METEOR STEEL:", "FALLEN STARLIGHT:", "STORY FORGE:", "MYTHOLOGY CHANNEL:", "GAMES:", "MYTHIC EARTH:", "LIBRARY:", "THE STORY OF STORIES:", "STORE:"} {
		idx := strings.Index(core, marker)
		require.NotEqual(t, -1, idx, "missing %q", marker)
		assert.Greater(t, idx, last, "%q out of order", marker)
		last = idx
	}
}

func TestSystemPromptWithoutAreaIsCore(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, e.CorePrompt(), e.SystemPrompt("", AreaContext{}))
	assert.Equal(t, e.CorePrompt(), e.SystemPrompt("", AreaContext{Episode: "king-arthur"}))
}

func TestSystemPromptUnknownAreaIsCore(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "", e.AreaKnowledge(types.Area("atlantis"), AreaContext{}))
	assert.Equal(t, e.CorePrompt(), e.SystemPrompt(types.Area("atlantis"), AreaContext{}))
	assert.Zero(t, e.cache.Len(), "unknown areas are not cached")
}

func TestSystemPromptCelestialClocks(t *testing.T) {
	e := newTestEngine(t)
	core := e.CorePrompt()

	first := e.SystemPrompt(types.AreaCelestialClocks, AreaContext{})
	second := e.SystemPrompt(types.AreaCelestialClocks, AreaContext{})

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, core+"\n\n---\n\n"+AreaHeading+"\n\n"))
	assert.Contains(t, first, "Seven Metals")
	assert.Greater(t, len(first), len(core)+1000, "area block should add substantially")
	assert.Equal(t, 1, e.cache.Len())
}

func TestSaturnChatEndToEnd(t *testing.T) {
	e := newTestEngine(t)

	area, ok := perception.DetectAreaFromMessages([]types.Message{
		{Role: types.RoleUser, Content: "What does Saturn mean in my chart?"},
	})
	require.True(t, ok)
	require.Equal(t, types.AreaCelestialClocks, area)

	p := e.SystemPrompt(area, AreaContext{})
	assert.Contains(t, p, "## Seven Metals")
	assert.Contains(t, p, "Saturn")
}

func TestAreaKnowledgeEveryAreaNonEmpty(t *testing.T) {
	e := newTestEngine(t)
	for _, area := range types.ValidAreas {
		t.Run(string(area), func(t *testing.T) {
			s := e.AreaKnowledge(area, AreaContext{})
			assert.NotEmpty(t, s)
			assert.True(t, strings.HasPrefix(s, "## "))
			assert.NotContains(t, s, "\n\n\n", "empty blocks are filtered")
		})
	}
}

func TestAreaKnowledgeOrder(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		area     types.Area
		headings []string
	}{
		{types.AreaCelestialClocks, []string{
			"## Seven Metals", "## Chakras and the Body", "## Planet Names Across Cultures",
			"## Archetypes of the Seven Sins", "## Hebrew and Kabbalah", "## Theology of Sins and Virtues",
			"## Planets in Modern Life", "## Zodiac", "## Cardinal Points", "## Mythic Calendar",
		}},
		{types.AreaMeteorSteel, []string{
			"## Monomyth Stages", "## Theorists by Stage", "## Journey Models",
			"## Meteor Steel Process", "## Mythic Figures", "## Natural Cycles",
		}},
		{types.AreaFallenStarlight, []string{"## Fallen Starlight", "## Monomyth Stages"}},
		{types.AreaStoryForge, []string{"## Story Forge Prompts", "## Character Archetypes", "## Journey Models"}},
		{types.AreaStoryOfStories, []string{"## Fallen Starlight"}},
		{types.AreaLibrary, []string{"## Library"}},
		{types.AreaGames, []string{"## Ancient Games"}},
		{types.AreaMythicEarth, []string{"## Sacred Sites"}},
		{types.AreaStore, []string{"## Store"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.area), func(t *testing.T) {
			s := e.AreaKnowledge(tt.area, AreaContext{})
			last := -1
			for _, h := range tt.headings {
				idx := strings.Index(s, h)
				require.NotEqual(t, -1, idx, "missing %q", h)
				assert.Greater(t, idx, last, "%q out of order", h)
				last = idx
			}
		})
	}
}

func TestMythologyChannelDeepDive(t *testing.T) {
	e := newTestEngine(t)

	without := e.AreaKnowledge(types.AreaMythologyChannel, AreaContext{})
	assert.NotContains(t, without, "DEEP DIVE:")

	with := e.AreaKnowledge(types.AreaMythologyChannel, AreaContext{Episode: "king-arthur"})
	assert.Contains(t, with, "## DEEP DIVE: King Arthur")
	assert.True(t, strings.HasPrefix(with, without+"\n\n"))

	noDive := e.AreaKnowledge(types.AreaMythologyChannel, AreaContext{Episode: "prometheus"})
	assert.Equal(t, without, noDive, "episodes without a deep dive add nothing")

	assert.ElementsMatch(t,
		[]string{"mythology-channel", "mythology-channel:king-arthur", "mythology-channel:prometheus"},
		e.cache.Keys())
}

func TestEpisodeIgnoredOutsideMythologyChannel(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t,
		e.AreaKnowledge(types.AreaGames, AreaContext{}),
		e.AreaKnowledge(types.AreaGames, AreaContext{Episode: "king-arthur"}))
	assert.Equal(t, []string{"games"}, e.cache.Keys())
}

func TestUnknownEpisodesShareTheAreaEntry(t *testing.T) {
	e := newTestEngine(t)
	plain := e.SystemPrompt(types.AreaMythologyChannel, AreaContext{})

	for i := 0; i < 50; i++ {
		ep := fmt.Sprintf("junk-%d", i)
		assert.Equal(t, plain, e.SystemPrompt(types.AreaMythologyChannel, AreaContext{Episode: ep}))
		e.SystemPrompt(types.AreaCelestialClocks, AreaContext{Episode: ep})
	}

	assert.ElementsMatch(t, []string{"mythology-channel", "celestial-clocks"}, e.cache.Keys())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "games", cacheKey(types.AreaGames, AreaContext{}))
	assert.Equal(t, "games", cacheKey(types.AreaGames, AreaContext{Episode: "  "}))
	assert.Equal(t, "mythology-channel:ragnarok", cacheKey(types.AreaMythologyChannel, AreaContext{Episode: "ragnarok"}))
	assert.Equal(t, "games", cacheKey(types.AreaGames, AreaContext{Episode: "ragnarok"}))
}

func TestSystemPromptWithSituation(t *testing.T) {
	e := newTestEngine(t)
	base := e.SystemPrompt(types.AreaStore, AreaContext{})

	got := e.SystemPromptWithSituation(types.AreaStore, AreaContext{}, "The visitor is on /store and has been there 3 minutes.")
	assert.Equal(t, base+"\n\nThe visitor is on /store and has been there 3 minutes.", got)

	assert.Equal(t, base, e.SystemPromptWithSituation(types.AreaStore, AreaContext{}, "   "))
}

func TestConcurrentSystemPrompt(t *testing.T) {
	e := newTestEngine(t)
	want := e.SystemPrompt(types.AreaMeteorSteel, AreaContext{})

	fresh := NewWithAtoms(e.corpus, e.atoms)
	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = fresh.SystemPrompt(types.AreaMeteorSteel, AreaContext{})
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestWarm(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Warm(context.Background()))
	assert.Equal(t, len(types.ValidAreas), e.cache.Len())
}

func TestWarmCancelled(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Warm(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	e := newTestEngine(t)
	st := e.Stats()

	assert.Equal(t, len(e.CorePrompt()), st.Core.Chars)
	assert.Equal(t, EstimateTokens(e.CorePrompt()), st.Core.Tokens)
	assert.Equal(t, len(e.Atoms()), st.Atoms)
	require.Len(t, st.Areas, len(types.ValidAreas))
	for i, a := range types.ValidAreas {
		assert.Equal(t, string(a), st.Areas[i].Name)
		assert.Positive(t, st.Areas[i].Tokens)
	}
}

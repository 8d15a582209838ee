package prompt

import (
	"strings"

	"atlas/internal/compact"
	"atlas/internal/corpus"
	"atlas/internal/types"
)

// AreaContext narrows an area block. Only the Mythology Channel reads it.
type AreaContext struct {
	Episode string `json:"episode,omitempty"`
}

// scopeContext drops the episode unless area is the Mythology Channel and
// the corpus knows it, so caller input cannot mint new cache keys.
func scopeContext(c *corpus.Corpus, area types.Area, ctx AreaContext) AreaContext {
	ep := strings.TrimSpace(ctx.Episode)
	if area != types.AreaMythologyChannel || ep == "" {
		return AreaContext{}
	}
	if _, ok := c.Episode(ep); !ok {
		return AreaContext{}
	}
	return AreaContext{Episode: ep}
}

// cacheKey is the area, or "area:episode" for a Mythology Channel episode.
func cacheKey(area types.Area, ctx AreaContext) string {
	if ep := strings.TrimSpace(ctx.Episode); ep != "" && area == types.AreaMythologyChannel {
		return string(area) + ":" + ep
	}
	return string(area)
}

// areaKnowledge concatenates the compacted blocks for area in their fixed
// order. Unknown areas yield "".
func areaKnowledge(c *corpus.Corpus, area types.Area, ctx AreaContext) string {
	switch area {
	case types.AreaCelestialClocks:
		return compact.Join(
			compact.CompactSevenMetals(c.SevenMetals),
			compact.CompactChakras(c.SevenMetals),
			compact.CompactPlanetCultures(c.PlanetCultures),
			compact.CompactArchetypes(c.Archetypes),
			compact.CompactHebrew(c.Hebrew),
			compact.CompactTheology(c.Theology),
			compact.CompactModernLife(c.ModernLife),
			compact.CompactZodiac(c.Zodiac),
			compact.CompactCardinals(c.Cardinals),
			compact.CompactCalendar(c.Calendar),
		)
	case types.AreaMeteorSteel:
		return compact.Join(
			compact.CompactMonomyth(c.Monomyth),
			compact.CompactTheorists(c.Theorists),
			compact.CompactMonomythModels(c.MonomythModels),
			compact.CompactSteelProcess(c.SteelProcess),
			compact.CompactFigures(c.Figures),
			compact.CompactCycles(c.Cycles),
		)
	case types.AreaFallenStarlight:
		return compact.Join(
			compact.CompactFallenStarlight(c.FallenStarlight),
			compact.CompactMonomyth(c.Monomyth),
		)
	case types.AreaStoryForge:
		return compact.Join(
			compact.CompactStoryForge(c.StoryForge),
			compact.CompactCharacterArchetypes(c.CharacterArchetypes),
			compact.CompactMonomythModels(c.MonomythModels),
		)
	case types.AreaMythologyChannel:
		blocks := []string{compact.CompactEpisodes(c.Episodes)}
		if ep := strings.TrimSpace(ctx.Episode); ep != "" {
			blocks = append(blocks, compact.CompactEpisodeDeepDive(c.Episodes, ep))
		}
		return compact.Join(blocks...)
	case types.AreaGames:
		return compact.Join(compact.CompactGames(c.Games))
	case types.AreaMythicEarth:
		return compact.Join(compact.CompactSites(c.Sites))
	case types.AreaLibrary:
		return compact.Join(
			compact.CompactLibrary(c.Library),
			compact.CompactVaultEntries("library"),
		)
	case types.AreaStoryOfStories:
		return compact.Join(
			compact.CompactStoryOfStories(c.StoryOfStories),
			compact.CompactFallenStarlight(c.FallenStarlight),
		)
	case types.AreaStore:
		return compact.Join(compact.CompactStore(c.Store))
	default:
		return ""
	}
}

// Package perception turns raw chat input into something the prompt engine
// can act on: which area of the corpus a message is about, and the LLM
// clients that answer it.
package perception

import (
	"regexp"
	"strings"

	"atlas/internal/logging"
	"atlas/internal/types"
)

// AreaRule pairs an area with the keyword pattern that selects it.
type AreaRule struct {
	Area    types.Area
	Pattern *regexp.Regexp
}

// AreaRules is evaluated in order; the first matching rule wins. Precedence
// is deliberate: "zodiac course" is a celestial-clocks question, not a store
// question, because celestial-clocks comes first.
var AreaRules = []AreaRule{
	{types.AreaCelestialClocks, regexp.MustCompile(
		`\b(celestial|planets?|planetary|zodiac|horoscopes?|astrolog\w*|natal|birth ?chart|my chart|chakras?|metals?|sun|moon|mercury|venus|mars|jupiter|saturn|` +
			`aries|taurus|gemini|cancer|leo|virgo|libra|scorpio|sagittarius|capricorn|aquarius|pisces|` +
			`solstices?|equinox(es)?|calendar|kabbalah|sephir\w*|sins?|virtues?)\b`)},
	{types.AreaMeteorSteel, regexp.MustCompile(
		`\b(meteors?|meteorites?|steel|monomyth|hero'?s journey|campbell|jung|vogler|quench\w*|temper(ing)?|(black)?smith\w*|metallurg\w*|iron|blades?|swords?)\b`)},
	{types.AreaFallenStarlight, regexp.MustCompile(
		`fallen starlight|\b(starlight|mira)\b`)},
	{types.AreaStoryForge, regexp.MustCompile(
		`story ?forge|\b(write|writing|my story|character arc|plot|screenplay|outline my)\b`)},
	{types.AreaMythologyChannel, regexp.MustCompile(
		`mythology channel|\b(episodes?|channel|watch|video|king arthur|arthur|ragnarok|gilgamesh|persephone|prometheus)\b`)},
	{types.AreaGames, regexp.MustCompile(
		`\b(games?|board ?games?|senet|ur|mehen|hnefatafl|tafl|patolli|pachisi|dice)\b`)},
	{types.AreaMythicEarth, regexp.MustCompile(
		`mythic earth|\b(sites?|map|stonehenge|newgrange|delphi|karnak|chichen itza|uluru|kailash|temples?|shrines?|pilgrimage)\b`)},
	{types.AreaLibrary, regexp.MustCompile(
		`\b(library|books?|reading list|shelf|shelves|bibliography|recommend\w*)\b`)},
	{types.AreaStoryOfStories, regexp.MustCompile(
		`story of stories|\b(premise|chapters?)\b`)},
	{types.AreaStore, regexp.MustCompile(
		`\b(store|shop|buy|purchase|price|prices|cost|costs|courses?|membership|merch)\b`)},
}

// DetectArea classifies a single message text, or returns false when no
// rule matches.
func DetectArea(text string) (types.Area, bool) {
	lower := strings.ToLower(text)
	for _, rule := range AreaRules {
		if rule.Pattern.MatchString(lower) {
			return rule.Area, true
		}
	}
	return "", false
}

// DetectAreaFromMessages classifies the most recent user message. It returns
// false when there is no user message or nothing matches.
func DetectAreaFromMessages(messages []types.Message) (types.Area, bool) {
	msg, ok := types.LastUserMessage(messages)
	if !ok {
		return "", false
	}
	area, ok := DetectArea(msg.Content)
	if ok {
		logging.Get(logging.CategoryPerception).Debug("Detected area %s", area)
	}
	return area, ok
}

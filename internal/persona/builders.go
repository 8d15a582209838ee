package persona

import (
	"fmt"
	"strings"
)

// BuildPlanet renders the persona for one of the seven planets. It returns
// false when the planet is not in the seven metals table.
func (b *Builder) BuildPlanet(name string) (string, bool) {
	m, ok := b.corpus.Metal(name)
	if !ok {
		return "", false
	}
	planet := m.Planet

	var s sheet
	s.line(fmt.Sprintf("You are %s, one of the seven wandering lights, speaking from inside the Atlas mythology system.", planet))
	s.line(planetTones[planet])

	s.section("YOUR NAMES ACROSS CULTURES", b.planetNames(planet))

	nature := fmt.Sprintf("My metal is %s. My day is %s. My shadow is %s and my light is %s.", m.Metal, m.Day, m.Sin, m.Virtue)
	if m.Astrology != "" {
		nature += "\n" + m.Astrology
	}
	s.section("YOUR NATURE", nature)

	s.section("YOUR ARCHETYPE", joinLines(
		b.archetypeFor(m.Sin),
		b.hebrewFor(planet),
		b.theologyFor(m.Sin),
	))

	var body []string
	if m.Body.Chakra != "" {
		body = append(body, fmt.Sprintf("I live in the %s chakra.", m.Body.Chakra))
	}
	if m.Body.Organ != "" {
		body = append(body, fmt.Sprintf("My organ is the %s.", strings.ToLower(m.Body.Organ)))
	}
	if m.Body.Gland != "" {
		body = append(body, fmt.Sprintf("My gland is the %s.", strings.ToLower(m.Body.Gland)))
	}
	s.section("YOUR BODY", strings.Join(body, " "))

	deities := make([]string, 0, len(m.Deities))
	for _, d := range m.Deities {
		deities = append(deities, fmt.Sprintf("%s (%s)", d.Name, d.Culture))
	}
	s.section("YOUR DEITIES", strings.Join(deities, ", "))

	modern, _ := b.corpus.ModernLife.Get(planet)
	s.section("YOUR THEMES TODAY", modern)

	s.rules(
		firstPersonRule,
		"Open your first reply by naming yourself in several cultures.",
		fmt.Sprintf("Stay in character as %s and never describe yourself from the outside.", planet),
		"You may speak of the other planets as your siblings and rivals.",
		navigationRule,
	)
	return s.String(), true
}

func (b *Builder) planetNames(planet string) string {
	cultures, ok := b.corpus.PlanetCultures.Get(planet)
	if !ok {
		return ""
	}
	items := make([]string, 0, len(cultures))
	for _, c := range cultures {
		item := c.Key + ": " + c.Value.Name
		if c.Value.Description != "" {
			item += ". " + c.Value.Description
		}
		items = append(items, item)
	}
	return bulletList(items)
}

func (b *Builder) archetypeFor(sin string) string {
	for _, a := range b.corpus.Archetypes {
		if strings.EqualFold(a.Sin, sin) {
			return fmt.Sprintf("I am %s. In shadow, %s: %s In light: %s",
				a.Archetype, strings.ToLower(a.Sin), a.Shadow, a.Light)
		}
	}
	return ""
}

func (b *Builder) hebrewFor(planet string) string {
	for _, h := range b.corpus.Hebrew {
		if strings.EqualFold(h.Planet, planet) {
			return fmt.Sprintf("On the Tree of Life I am %s, the letter %s, watched over by %s. %s",
				h.Sephira, h.Letter, h.Angel, h.Description)
		}
	}
	return ""
}

func (b *Builder) theologyFor(sin string) string {
	for _, t := range b.corpus.Theology {
		if strings.EqualFold(t.Sin, sin) {
			return fmt.Sprintf("%s wrote of %s and %s: %q", t.Father, strings.ToLower(t.Sin), strings.ToLower(t.Virtue), t.Commentary)
		}
	}
	return ""
}

// BuildZodiac renders the persona for a zodiac sign. It returns false when
// the sign is unknown.
func (b *Builder) BuildZodiac(name string) (string, bool) {
	sign, ok := b.corpus.Sign(name)
	if !ok {
		return "", false
	}

	var s sheet
	s.line(fmt.Sprintf("You are %s, the %s, a %s sign of %s modality in the Atlas zodiac.",
		sign.Sign, sign.Symbol, strings.ToLower(sign.Element), strings.ToLower(sign.Modality)))
	s.line(joinSentences(elementTones[sign.Element], modalityTones[sign.Modality]))

	nature := fmt.Sprintf("I am %s. My season runs %s. In the body I govern the %s.",
		sign.Archetype, sign.Dates, strings.ToLower(sign.BodyPart))
	if sign.Description != "" {
		nature += "\n" + sign.Description
	}
	s.section("YOUR NATURE", nature)

	if ruler, ok := b.corpus.Metal(sign.Ruler); ok {
		s.section("YOUR RULER", fmt.Sprintf(
			"%s rules me. Through that planet I carry %s, the day %s, and the struggle between %s and %s.",
			ruler.Planet, strings.ToLower(ruler.Metal), ruler.Day, strings.ToLower(ruler.Sin), strings.ToLower(ruler.Virtue)))
	}

	s.section("YOUR NAMES ACROSS CULTURES", culturesList(sign.Cultures))

	if stage, ok := b.corpus.Monomyth.Get(sign.Stage); ok {
		s.section("YOUR PLACE IN THE JOURNEY", fmt.Sprintf("I stand at the %s stage of the monomyth. %s", stage.Title, stage.Summary))
	}

	s.rules(
		firstPersonRule,
		"Open your first reply by naming your symbol and your ruling planet.",
		fmt.Sprintf("Stay in character as %s; let your element and modality shape every answer.", sign.Sign),
		"You may speak of the other signs as your neighbors on the wheel.",
		navigationRule,
	)
	return s.String(), true
}

// BuildCardinal renders the persona for a solstice or equinox. id is the
// data key ("winter-solstice"); labels such as "Winter Solstice" also match.
func (b *Builder) BuildCardinal(id string) (string, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "-")
	c, ok := b.corpus.Cardinals.Get(key)
	if !ok {
		return "", false
	}

	var s sheet
	s.line(fmt.Sprintf("You are the %s, the %s gate of the year, arriving on %s.", c.Label, strings.ToLower(c.Direction), c.Date))

	nature := joinLines(
		fmt.Sprintf("My season is %s. My theme is %s.", strings.ToLower(c.Season), strings.ToLower(c.Theme)),
		c.Description,
	)
	s.section("YOUR NATURE", nature)
	s.section("YOUR FACES ACROSS CULTURES", culturesList(c.Cultures))

	s.rules(
		firstPersonRule,
		"Speak as a turning point of the year, not as a person or a god.",
		"Open your first reply by describing the light on your day.",
		"You may speak of the other three cardinal points as the corners of your house.",
		navigationRule,
	)
	return s.String(), true
}

func joinLines(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

func joinSentences(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

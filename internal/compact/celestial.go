package compact

import (
	"fmt"
	"strings"

	"atlas/internal/corpus"
)

// CompactSevenMetals renders the planet/metal/day/sin/virtue table.
func CompactSevenMetals(metals []corpus.Metal) string {
	lines := make([]string, 0, len(metals))
	for _, m := range metals {
		deities := make([]string, 0, len(m.Deities))
		for _, d := range m.Deities {
			deities = append(deities, joinNonEmpty(" ", d.Name, parens(d.Culture)))
		}
		lines = append(lines, labeled(m.Planet, joinFields(
			field{"metal", m.Metal},
			field{"day", m.Day},
			field{"sin", m.Sin},
			field{"virtue", m.Virtue},
			field{"deities", strings.Join(deities, ", ")},
			field{"astrology", Truncate(m.Astrology, 160)},
		)))
	}
	return block("Seven Metals", lines)
}

// CompactChakras renders each planet's bodily correspondences.
func CompactChakras(metals []corpus.Metal) string {
	lines := make([]string, 0, len(metals))
	for _, m := range metals {
		body := joinFields(
			field{"chakra", m.Body.Chakra},
			field{"organ", m.Body.Organ},
			field{"gland", m.Body.Gland},
		)
		if body == "" {
			continue
		}
		lines = append(lines, labeled(m.Planet, body))
	}
	return block("Chakras and the Body", lines)
}

// CompactPlanetCultures renders each planet's names across cultures.
func CompactPlanetCultures(cultures corpus.PlanetCultures) string {
	lines := make([]string, 0, len(cultures))
	for _, planet := range cultures {
		names := make([]string, 0, len(planet.Value))
		for _, c := range planet.Value {
			names = append(names, joinNonEmpty(" ",
				c.Key+": "+c.Value.Name,
				parens(Truncate(c.Value.Description, 80)),
			))
		}
		lines = append(lines, labeled(planet.Key, strings.Join(names, "; ")))
	}
	return block("Planet Names Across Cultures", lines)
}

// CompactArchetypes renders the sin archetypes with shadow and light.
func CompactArchetypes(archetypes []corpus.Archetype) string {
	lines := make([]string, 0, len(archetypes))
	for _, a := range archetypes {
		lines = append(lines, labeled(a.Sin, joinFields(
			field{"", a.Archetype},
			field{"shadow", Truncate(a.Shadow, 100)},
			field{"light", Truncate(a.Light, 100)},
		)))
	}
	return block("Archetypes of the Seven Sins", lines)
}

// CompactHebrew renders the Kabbalah correspondences.
func CompactHebrew(hebrew []corpus.HebrewCorrespondence) string {
	lines := make([]string, 0, len(hebrew))
	for _, h := range hebrew {
		lines = append(lines, labeled(h.Planet, joinFields(
			field{"sephira", h.Sephira},
			field{"letter", h.Letter},
			field{"angel", h.Angel},
			field{"", Truncate(h.Description, 100)},
		)))
	}
	return block("Hebrew and Kabbalah", lines)
}

// CompactTheology renders patristic commentary on each sin and virtue.
func CompactTheology(theology []corpus.Theology) string {
	lines := make([]string, 0, len(theology))
	for _, t := range theology {
		key := joinNonEmpty(" / ", t.Sin, t.Virtue)
		if t.Father != "" {
			key += " " + parens(t.Father)
		}
		lines = append(lines, labeled(key, Truncate(t.Commentary, 150)))
	}
	return block("Theology of Sins and Virtues", lines)
}

// CompactModernLife renders each planet's modern reframing.
func CompactModernLife(modern corpus.Ordered[string]) string {
	lines := make([]string, 0, len(modern))
	for _, e := range modern {
		if text := Truncate(e.Value, 150); text != "" {
			lines = append(lines, labeled(e.Key, text))
		}
	}
	return block("Planets in Modern Life", lines)
}

// CompactZodiac renders the twelve signs.
func CompactZodiac(signs []corpus.Sign) string {
	lines := make([]string, 0, len(signs))
	for _, s := range signs {
		key := s.Sign
		if s.Symbol != "" {
			key += " " + parens(s.Symbol)
		}
		lines = append(lines, labeled(key, joinFields(
			field{"", joinNonEmpty(" ", s.Element, s.Modality)},
			field{"ruler", s.Ruler},
			field{"dates", s.Dates},
			field{"archetype", s.Archetype},
			field{"body", s.BodyPart},
			field{"stage", s.Stage},
			field{"cultures", culturesLine(s.Cultures, 60)},
			field{"", Truncate(s.Description, 120)},
		)))
	}
	return block("Zodiac", lines)
}

// CompactCardinals renders the solstices and equinoxes.
func CompactCardinals(cardinals corpus.Ordered[corpus.Cardinal]) string {
	lines := make([]string, 0, len(cardinals))
	for _, e := range cardinals {
		c := e.Value
		key := joinNonEmpty(" ", c.Label, parens(c.Date))
		lines = append(lines, labeled(key, joinFields(
			field{"season", c.Season},
			field{"direction", c.Direction},
			field{"theme", c.Theme},
			field{"", Truncate(c.Description, 150)},
			field{"cultures", culturesLine(c.Cultures, 60)},
		)))
	}
	return block("Cardinal Points", lines)
}

// CompactCalendar renders the mythic calendar.
func CompactCalendar(months []corpus.Month) string {
	lines := make([]string, 0, len(months))
	for _, m := range months {
		lines = append(lines, labeled(m.Month, joinFields(
			field{"stone", m.Stone},
			field{"flower", m.Flower},
			field{"deity", m.Deity},
			field{"festivals", strings.Join(m.Festivals, ", ")},
		)))
	}
	return block("Mythic Calendar", lines)
}

func culturesLine(cultures corpus.Ordered[string], max int) string {
	parts := make([]string, 0, len(cultures))
	for _, c := range cultures {
		if v := Truncate(c.Value, max); v != "" {
			parts = append(parts, fmt.Sprintf("%s %s", c.Key, v))
		}
	}
	return strings.Join(parts, "; ")
}

func parens(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

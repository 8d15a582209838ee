package compact

import (
	"fmt"
	"strings"

	"atlas/internal/corpus"
)

// CompactEpisodes renders the Mythology Channel episode list.
func CompactEpisodes(episodes []corpus.Episode) string {
	lines := make([]string, 0, len(episodes))
	for _, e := range episodes {
		lines = append(lines, labeled(e.ID, joinFields(
			field{"", e.Title},
			field{"", Truncate(e.Description, 150)},
			field{"themes", strings.Join(e.Themes, ", ")},
		)))
	}
	return block("Mythology Channel Episodes", lines)
}

// CompactEpisodeDeepDive renders the long-form material for one episode, or
// "" when the episode is unknown or has none.
func CompactEpisodeDeepDive(episodes []corpus.Episode, id string) string {
	for _, e := range episodes {
		if e.ID != id {
			continue
		}
		if e.DeepDive == nil {
			return ""
		}
		d := e.DeepDive
		lines := []string{}
		if s := strings.TrimSpace(d.Summary); s != "" {
			lines = append(lines, s)
		}
		if len(d.Figures) > 0 {
			lines = append(lines, "Figures: "+strings.Join(d.Figures, ", "))
		}
		if len(d.Motifs) > 0 {
			lines = append(lines, "Motifs: "+strings.Join(d.Motifs, ", "))
		}
		if len(d.Sources) > 0 {
			lines = append(lines, "Sources: "+strings.Join(d.Sources, "; "))
		}
		title := e.Title
		if title == "" {
			title = e.ID
		}
		return block("DEEP DIVE: "+title, lines)
	}
	return ""
}

// CompactGames renders the ancient board games and their rules.
func CompactGames(games []corpus.Game) string {
	lines := make([]string, 0, len(games))
	for _, g := range games {
		players := ""
		if g.Players != "" {
			players = g.Players + " players"
		}
		rules := make([]string, 0, len(g.Rules))
		for _, r := range g.Rules {
			rules = append(rules, Truncate(r, 80))
		}
		key := joinNonEmpty(" ", g.Name, parens(joinNonEmpty(", ", g.Origin, g.Era, players)))
		lines = append(lines, labeled(key, joinFields(
			field{"", Truncate(g.Description, 120)},
			field{"rules", joinNonEmpty("; ", rules...)},
		)))
	}
	return block("Ancient Games", lines)
}

// CompactSites renders the sacred sites.
func CompactSites(sites []corpus.Site) string {
	lines := make([]string, 0, len(sites))
	for _, s := range sites {
		key := joinNonEmpty(" ", s.Name, parens(joinNonEmpty(", ", s.Region, s.Country)))
		lines = append(lines, labeled(key, joinFields(
			field{"", s.Category},
			field{"", Truncate(s.Description, 120)},
			field{"pantheons", strings.Join(s.Pantheons, ", ")},
		)))
	}
	return block("Sacred Sites", lines)
}

// CompactLibrary renders the shelves and their books.
func CompactLibrary(lib corpus.Library) string {
	lines := []string{}
	for _, shelf := range lib.Shelves {
		if len(shelf.Books) == 0 {
			continue
		}
		lines = append(lines, "### "+shelf.Name)
		for _, b := range shelf.Books {
			key := joinNonEmpty(", ", b.Title, b.Author)
			if y := formatYear(b.Year); y != "" {
				key += " " + parens(y)
			}
			lines = append(lines, "- "+labeled(key, Truncate(b.Note, 100)))
		}
	}
	return block("Library", lines)
}

// CompactStoryOfStories renders the book outline.
func CompactStoryOfStories(book corpus.StoryOfStories) string {
	lines := []string{}
	if book.Meta.Premise != "" {
		lines = append(lines, "Premise: "+Truncate(book.Meta.Premise, 200))
	}
	for _, c := range book.Chapters {
		lines = append(lines, labeled(fmt.Sprintf("%d. %s", c.Number, c.Title), Truncate(c.Summary, 150)))
	}
	title := book.Meta.Title
	if title == "" {
		title = "The Story of Stories"
	}
	return block(title, lines)
}

// CompactStore renders the store catalog.
func CompactStore(products []corpus.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		price := ""
		if p.Price > 0 {
			price = fmt.Sprintf("$%d", p.Price)
		}
		key := joinNonEmpty(" ", p.Name, parens(joinNonEmpty(", ", p.Kind, price)))
		lines = append(lines, labeled(key, joinFields(
			field{"", Truncate(p.Description, 120)},
			field{"includes", strings.Join(p.Includes, ", ")},
		)))
	}
	return block("Store", lines)
}

func formatYear(y int) string {
	switch {
	case y < 0:
		return fmt.Sprintf("%d BCE", -y)
	case y > 0:
		return fmt.Sprintf("%d", y)
	default:
		return ""
	}
}

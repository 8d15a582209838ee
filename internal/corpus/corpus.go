// Package corpus holds the static mythological reference data Atlas draws on.
// The JSON sources are baked into the binary and decoded once at startup;
// nothing mutates them afterwards.
package corpus

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"atlas/internal/logging"
)

//go:embed data/*.json
var embeddedData embed.FS

// Corpus is every DataSource, decoded.
type Corpus struct {
	SevenMetals         []Metal
	PlanetCultures      PlanetCultures
	Archetypes          []Archetype
	Hebrew              []HebrewCorrespondence
	Theology            []Theology
	ModernLife          Ordered[string]
	Zodiac              []Sign
	Cardinals           Ordered[Cardinal]
	Calendar            []Month
	Monomyth            Ordered[Stage]
	Theorists           Ordered[Ordered[string]]
	MonomythModels      []Model
	SteelProcess        Ordered[SteelStep]
	Figures             []Figure
	Cycles              Ordered[Ordered[string]]
	FallenStarlight     Ordered[Chapter]
	StoryForge          Ordered[ForgePrompt]
	CharacterArchetypes []CharacterArchetype
	Episodes            []Episode
	Games               []Game
	Sites               []Site
	Library             Library
	StoryOfStories      StoryOfStories
	Store               []Product
}

// sources binds each embedded file to its destination field.
func (c *Corpus) sources() []struct {
	file string
	dst  any
} {
	return []struct {
		file string
		dst  any
	}{
		{"seven_metals.json", &c.SevenMetals},
		{"planet_cultures.json", &c.PlanetCultures},
		{"archetypes.json", &c.Archetypes},
		{"hebrew.json", &c.Hebrew},
		{"theology.json", &c.Theology},
		{"modern_life.json", &c.ModernLife},
		{"zodiac.json", &c.Zodiac},
		{"cardinals.json", &c.Cardinals},
		{"calendar.json", &c.Calendar},
		{"monomyth.json", &c.Monomyth},
		{"theorists.json", &c.Theorists},
		{"monomyth_models.json", &c.MonomythModels},
		{"steel_process.json", &c.SteelProcess},
		{"figures.json", &c.Figures},
		{"cycles.json", &c.Cycles},
		{"fallen_starlight.json", &c.FallenStarlight},
		{"story_forge.json", &c.StoryForge},
		{"character_archetypes.json", &c.CharacterArchetypes},
		{"episodes.json", &c.Episodes},
		{"games.json", &c.Games},
		{"sites.json", &c.Sites},
		{"library.json", &c.Library},
		{"story_of_stories.json", &c.StoryOfStories},
		{"store.json", &c.Store},
	}
}

// Load decodes every embedded DataSource and checks cross-source invariants.
func Load() (*Corpus, error) {
	timer := logging.StartTimer(logging.CategoryCorpus, "Load")
	defer timer.Stop()

	c := &Corpus{}
	for _, src := range c.sources() {
		data, err := embeddedData.ReadFile("data/" + src.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.file, err)
		}
		if err := json.Unmarshal(data, src.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", src.file, err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	logging.Get(logging.CategoryCorpus).Info("Loaded %d data sources (%d planets, %d signs, %d episodes)",
		len(c.sources()), len(c.SevenMetals), len(c.Zodiac), len(c.Episodes))
	return c, nil
}

// MustLoad is Load for process startup; malformed embedded data is a build
// defect, not a runtime condition.
func MustLoad() *Corpus {
	c, err := Load()
	if err != nil {
		panic(fmt.Sprintf("corpus: %v", err))
	}
	return c
}

// Validate checks the invariants compactors and persona builders rely on.
func (c *Corpus) Validate() error {
	var errs []error

	planets := make(map[string]bool, len(c.SevenMetals))
	for _, m := range c.SevenMetals {
		if m.Planet == "" {
			errs = append(errs, errors.New("seven_metals: record without planet"))
			continue
		}
		if planets[m.Planet] {
			errs = append(errs, fmt.Errorf("seven_metals: duplicate planet %q", m.Planet))
		}
		planets[m.Planet] = true
	}

	for _, s := range c.Zodiac {
		if !planets[s.Ruler] {
			errs = append(errs, fmt.Errorf("zodiac: %s ruler %q missing from seven_metals", s.Sign, s.Ruler))
		}
	}

	episodes := make(map[string]bool, len(c.Episodes))
	for _, e := range c.Episodes {
		if e.ID == "" || episodes[e.ID] {
			errs = append(errs, fmt.Errorf("episodes: empty or duplicate id %q", e.ID))
		}
		episodes[e.ID] = true
	}

	return errors.Join(errs...)
}

// Metal returns the seven-metals record for planet (case-insensitive).
func (c *Corpus) Metal(planet string) (Metal, bool) {
	for _, m := range c.SevenMetals {
		if strings.EqualFold(m.Planet, planet) {
			return m, true
		}
	}
	return Metal{}, false
}

// Sign returns the zodiac record for name (case-insensitive).
func (c *Corpus) Sign(name string) (Sign, bool) {
	for _, s := range c.Zodiac {
		if strings.EqualFold(s.Sign, name) {
			return s, true
		}
	}
	return Sign{}, false
}

// Episode returns the Mythology Channel episode with id.
func (c *Corpus) Episode(id string) (Episode, bool) {
	for _, e := range c.Episodes {
		if e.ID == id {
			return e, true
		}
	}
	return Episode{}, false
}

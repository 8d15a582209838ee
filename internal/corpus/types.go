package corpus

// =============================================================================
// CELESTIAL CLOCKS
// =============================================================================

// Metal is one row of the seven planetary metals table.
type Metal struct {
	Planet    string  `json:"planet"`
	Metal     string  `json:"metal"`
	Day       string  `json:"day"`
	Sin       string  `json:"sin"`
	Virtue    string  `json:"virtue"`
	Astrology string  `json:"astrology"`
	Body      Body    `json:"body"`
	Deities   []Deity `json:"deities"`
}

// Body holds a planet's bodily correspondences.
type Body struct {
	Chakra string `json:"chakra"`
	Organ  string `json:"organ"`
	Gland  string `json:"gland"`
}

// Deity is a god associated with a planet.
type Deity struct {
	Name    string `json:"name"`
	Culture string `json:"culture"`
}

// CultureName is a planet's name and story in one culture.
type CultureName struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlanetCultures maps planet -> culture -> name.
type PlanetCultures = Ordered[Ordered[CultureName]]

// Archetype frames a sin as the shadow of a character type.
type Archetype struct {
	Sin       string `json:"sin"`
	Archetype string `json:"archetype"`
	Shadow    string `json:"shadow"`
	Light     string `json:"light"`
}

// HebrewCorrespondence links a planet to the Kabbalistic tree.
type HebrewCorrespondence struct {
	Planet      string `json:"planet"`
	Sephira     string `json:"sephira"`
	Letter      string `json:"letter"`
	Angel       string `json:"angel"`
	Description string `json:"description"`
}

// Theology is patristic commentary on one sin/virtue pair.
type Theology struct {
	Sin        string `json:"sin"`
	Virtue     string `json:"virtue"`
	Father     string `json:"father"`
	Commentary string `json:"commentary"`
}

// Sign is one zodiac sign.
type Sign struct {
	Sign        string          `json:"sign"`
	Symbol      string          `json:"symbol"`
	Element     string          `json:"element"`
	Modality    string          `json:"modality"`
	Ruler       string          `json:"ruler"`
	Dates       string          `json:"dates"`
	Archetype   string          `json:"archetype"`
	BodyPart    string          `json:"body_part"`
	Stage       string          `json:"stage"`
	Description string          `json:"description"`
	Cultures    Ordered[string] `json:"cultures"`
}

// Cardinal is a solstice or equinox.
type Cardinal struct {
	Label       string          `json:"label"`
	Date        string          `json:"date"`
	Season      string          `json:"season"`
	Direction   string          `json:"direction"`
	Theme       string          `json:"theme"`
	Description string          `json:"description"`
	Cultures    Ordered[string] `json:"cultures"`
}

// Month is one month of the mythic calendar.
type Month struct {
	Month     string   `json:"month"`
	Stone     string   `json:"stone"`
	Flower    string   `json:"flower"`
	Deity     string   `json:"deity"`
	Festivals []string `json:"festivals"`
}

// =============================================================================
// METEOR STEEL
// =============================================================================

// Stage is one monomyth stage seen through several lenses.
type Stage struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Mythology  string `json:"mythology"`
	Psychology string `json:"psychology"`
	Film       string `json:"film"`
	Steel      string `json:"steel"`
}

// Model is a named journey model and its stage list.
type Model struct {
	Theorist string   `json:"theorist"`
	Model    string   `json:"model"`
	Stages   []string `json:"stages"`
}

// SteelStep is the metallurgy behind one stage.
type SteelStep struct {
	Process    string `json:"process"`
	Metallurgy string `json:"metallurgy"`
}

// Figure is a mythic figure placed on a stage.
type Figure struct {
	Name    string `json:"name"`
	Culture string `json:"culture"`
	Stage   string `json:"stage"`
	Story   string `json:"story"`
}

// =============================================================================
// STORIES
// =============================================================================

// Chapter is one chapter of Fallen Starlight.
type Chapter struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ForgePrompt is a Story Forge writing prompt for a stage.
type ForgePrompt struct {
	Prompt   string   `json:"prompt"`
	Examples []string `json:"examples"`
}

// CharacterArchetype is a story role.
type CharacterArchetype struct {
	Name        string `json:"name"`
	Function    string `json:"function"`
	Description string `json:"description"`
}

// Episode is a Mythology Channel episode.
type Episode struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Themes      []string  `json:"themes"`
	DeepDive    *DeepDive `json:"deep_dive,omitempty"`
}

// DeepDive is the long-form material for an episode.
type DeepDive struct {
	Summary string   `json:"summary"`
	Figures []string `json:"figures"`
	Motifs  []string `json:"motifs"`
	Sources []string `json:"sources"`
}

// StoryOfStories is the book outline.
type StoryOfStories struct {
	Meta     BookMeta      `json:"meta"`
	Chapters []BookChapter `json:"chapters"`
}

// BookMeta describes the book.
type BookMeta struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Premise string `json:"premise"`
}

// BookChapter is one chapter of the book outline.
type BookChapter struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// =============================================================================
// GAMES, PLACES, SHELVES, STORE
// =============================================================================

// Game is an ancient board game.
type Game struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Origin      string   `json:"origin"`
	Era         string   `json:"era"`
	Players     string   `json:"players"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
}

// Site is a sacred place on the mythic earth map.
type Site struct {
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	Region      string   `json:"region"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Pantheons   []string `json:"pantheons"`
}

// Library is the reading room.
type Library struct {
	Shelves []Shelf `json:"shelves"`
}

// Shelf groups books by topic.
type Shelf struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Books []Book `json:"books"`
}

// Book is a library entry. Negative years are BCE.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Note   string `json:"note"`
}

// Product is a store item. Price is in whole US dollars.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Price       int      `json:"price"`
	Description string   `json:"description"`
	Includes    []string `json:"includes"`
}

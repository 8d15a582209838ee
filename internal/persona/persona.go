// Package persona renders first-person character sheets for the planets,
// zodiac signs and cardinal points, cross-referencing the corpus.
package persona

import (
	"fmt"
	"strings"

	"atlas/internal/corpus"
	"atlas/internal/logging"
)

// Type is a persona family.
type Type string

const (
	TypePlanet   Type = "planet"
	TypeZodiac   Type = "zodiac"
	TypeCardinal Type = "cardinal"
)

// Descriptor selects a persona.
type Descriptor struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// IsZero reports whether the descriptor selects nothing.
func (d Descriptor) IsZero() bool {
	return d.Type == "" && d.Name == ""
}

// Builder renders persona prompts from a corpus.
type Builder struct {
	corpus *corpus.Corpus
}

// NewBuilder creates a Builder over c.
func NewBuilder(c *corpus.Corpus) *Builder {
	return &Builder{corpus: c}
}

// Prompt dispatches d to its family builder. It returns false when d is
// incomplete, names an unknown family, or names an entity the corpus lacks.
func (b *Builder) Prompt(d Descriptor) (string, bool) {
	if d.Type == "" || d.Name == "" {
		return "", false
	}

	var (
		out string
		ok  bool
	)
	switch Type(strings.ToLower(d.Type)) {
	case TypePlanet:
		out, ok = b.BuildPlanet(d.Name)
	case TypeZodiac:
		out, ok = b.BuildZodiac(d.Name)
	case TypeCardinal:
		out, ok = b.BuildCardinal(d.Name)
	default:
		logging.Get(logging.CategoryPersona).Debug("Unknown persona type %q", d.Type)
		return "", false
	}

	if !ok {
		logging.Get(logging.CategoryPersona).Debug("No %s persona named %q", d.Type, d.Name)
	}
	return out, ok
}

// sheet accumulates titled sections. Sections with an empty body are left
// out so a missing cross-reference leaves no dangling heading.
type sheet struct {
	sb strings.Builder
}

func (s *sheet) line(text string) {
	if text == "" {
		return
	}
	if s.sb.Len() > 0 {
		s.sb.WriteString("\n\n")
	}
	s.sb.WriteString(text)
}

func (s *sheet) section(title, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	s.line(title + "\n" + body)
}

func (s *sheet) rules(rules ...string) {
	s.line("RULES OF CHARACTER\n" + strings.Join(rules, "\n"))
}

func (s *sheet) String() string {
	return s.sb.String()
}

// firstPersonRule is the fixed opening rule for every persona.
const firstPersonRule = "Always first person."

// navigationRule permits the link mini-protocol the UI renders as buttons.
const navigationRule = "You may offer navigation links in the exact form [[Label|/path]] when a page would help."

func bulletList(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, "- "+it)
		}
	}
	return strings.Join(out, "\n")
}

func culturesList(cultures corpus.Ordered[string]) string {
	items := make([]string, 0, len(cultures))
	for _, c := range cultures {
		items = append(items, fmt.Sprintf("%s: %s", c.Key, c.Value))
	}
	return bulletList(items)
}

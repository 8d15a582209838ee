package compact

import (
	"strings"

	"atlas/internal/corpus"
)

// CompactMonomyth renders the eight stages through each lens.
func CompactMonomyth(stages corpus.Ordered[corpus.Stage]) string {
	lines := make([]string, 0, len(stages))
	for _, e := range stages {
		s := e.Value
		lines = append(lines, labeled(e.Key, joinFields(
			field{"", s.Title},
			field{"", Truncate(s.Summary, 150)},
			field{"myth", Truncate(s.Mythology, 120)},
			field{"psyche", Truncate(s.Psychology, 100)},
			field{"film", Truncate(s.Film, 100)},
			field{"steel", Truncate(s.Steel, 100)},
		)))
	}
	return block("Monomyth Stages", lines)
}

// CompactTheorists renders what each theorist says about each stage.
func CompactTheorists(theorists corpus.Ordered[corpus.Ordered[string]]) string {
	lines := make([]string, 0, len(theorists))
	for _, stage := range theorists {
		views := make([]string, 0, len(stage.Value))
		for _, v := range stage.Value {
			if text := Truncate(v.Value, 100); text != "" {
				views = append(views, v.Key+": "+text)
			}
		}
		if len(views) == 0 {
			continue
		}
		lines = append(lines, labeled(stage.Key, strings.Join(views, "; ")))
	}
	return block("Theorists by Stage", lines)
}

// CompactMonomythModels renders each journey model as its stage sequence.
func CompactMonomythModels(models []corpus.Model) string {
	lines := make([]string, 0, len(models))
	for _, m := range models {
		key := joinNonEmpty(" ", m.Model, parens(m.Theorist))
		lines = append(lines, labeled(key, strings.Join(m.Stages, " > ")))
	}
	return block("Journey Models", lines)
}

// CompactSteelProcess renders the metallurgy behind each stage.
func CompactSteelProcess(steps corpus.Ordered[corpus.SteelStep]) string {
	lines := make([]string, 0, len(steps))
	for _, e := range steps {
		lines = append(lines, labeled(e.Key, joinFields(
			field{"", e.Value.Process},
			field{"", Truncate(e.Value.Metallurgy, 150)},
		)))
	}
	return block("Meteor Steel Process", lines)
}

// CompactFigures renders mythic figures and the stage they embody.
func CompactFigures(figures []corpus.Figure) string {
	lines := make([]string, 0, len(figures))
	for _, f := range figures {
		key := joinNonEmpty(" ", f.Name, parens(joinNonEmpty(", ", f.Culture, f.Stage)))
		lines = append(lines, labeled(key, Truncate(f.Story, 120)))
	}
	return block("Mythic Figures", lines)
}

// CompactCycles renders each natural cycle mapped onto the stages.
func CompactCycles(cycles corpus.Ordered[corpus.Ordered[string]]) string {
	lines := make([]string, 0, len(cycles))
	for _, cycle := range cycles {
		phases := make([]string, 0, len(cycle.Value))
		for _, p := range cycle.Value {
			if p.Value != "" {
				phases = append(phases, p.Key+"="+p.Value)
			}
		}
		lines = append(lines, labeled(cycle.Key, strings.Join(phases, ", ")))
	}
	return block("Natural Cycles", lines)
}

// CompactFallenStarlight renders the novel chapter by chapter.
func CompactFallenStarlight(chapters corpus.Ordered[corpus.Chapter]) string {
	lines := make([]string, 0, len(chapters))
	for _, e := range chapters {
		lines = append(lines, labeled(e.Key, joinFields(
			field{"", e.Value.Title},
			field{"", Truncate(e.Value.Text, 200)},
		)))
	}
	return block("Fallen Starlight", lines)
}

// CompactStoryForge renders the writing prompt for each stage.
func CompactStoryForge(prompts corpus.Ordered[corpus.ForgePrompt]) string {
	lines := make([]string, 0, len(prompts))
	for _, e := range prompts {
		examples := make([]string, 0, len(e.Value.Examples))
		for _, ex := range e.Value.Examples {
			examples = append(examples, Truncate(ex, 60))
		}
		lines = append(lines, labeled(e.Key, joinFields(
			field{"", Truncate(e.Value.Prompt, 150)},
			field{"examples", joinNonEmpty("; ", examples...)},
		)))
	}
	return block("Story Forge Prompts", lines)
}

// CompactCharacterArchetypes renders the story roles.
func CompactCharacterArchetypes(archetypes []corpus.CharacterArchetype) string {
	lines := make([]string, 0, len(archetypes))
	for _, a := range archetypes {
		lines = append(lines, labeled(a.Name, joinFields(
			field{"", a.Function},
			field{"", Truncate(a.Description, 120)},
		)))
	}
	return block("Character Archetypes", lines)
}

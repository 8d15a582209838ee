package prompt

import (
	"sort"
	"strings"

	"atlas/internal/logging"
)

// FinalAssembler joins prompt atoms into the core prompt.
type FinalAssembler struct {
	// categoryOrder defines the sequence of categories in the final prompt
	categoryOrder []AtomCategory

	// sectionSeparator is inserted between sections
	sectionSeparator string

	// atomSeparator is inserted between atoms within a section
	atomSeparator string
}

// NewFinalAssembler creates an assembler with the default category order.
func NewFinalAssembler() *FinalAssembler {
	return &FinalAssembler{
		categoryOrder:    AllCategories(),
		sectionSeparator: "\n\n",
		atomSeparator:    "\n\n",
	}
}

// Assemble combines atoms into a single prompt string. Atoms are grouped by
// category in categoryOrder; within a category higher priority comes first,
// ties broken by ID. Categories outside categoryOrder are dropped.
func (a *FinalAssembler) Assemble(atoms []*PromptAtom) string {
	timer := logging.StartTimer(logging.CategoryPrompt, "FinalAssembler.Assemble")
	defer timer.Stop()

	if len(atoms) == 0 {
		return ""
	}

	byCategory := make(map[AtomCategory][]*PromptAtom)
	for _, atom := range atoms {
		byCategory[atom.Category] = append(byCategory[atom.Category], atom)
	}

	var sections []string
	for _, cat := range a.categoryOrder {
		inCat := byCategory[cat]
		if len(inCat) == 0 {
			continue
		}
		sort.SliceStable(inCat, func(i, j int) bool {
			if inCat[i].Priority != inCat[j].Priority {
				return inCat[i].Priority > inCat[j].Priority
			}
			return inCat[i].ID < inCat[j].ID
		})

		parts := make([]string, 0, len(inCat))
		for _, atom := range inCat {
			parts = append(parts, atom.Content)
		}
		sections = append(sections, strings.Join(parts, a.atomSeparator))
	}

	prompt := strings.Join(sections, a.sectionSeparator)
	logging.Get(logging.CategoryPrompt).Debug(
		"Assembled prompt: %d sections, %d chars, ~%d tokens",
		len(sections), len(prompt), EstimateTokens(prompt),
	)
	return prompt
}

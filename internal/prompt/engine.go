package prompt

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"atlas/internal/corpus"
	"atlas/internal/logging"
	"atlas/internal/types"
)

// AreaHeading introduces the area block in a system prompt.
const AreaHeading = "DEEP KNOWLEDGE — CURRENT AREA"

const areaSeparator = "\n\n---\n\n" + AreaHeading + "\n\n"

// Engine builds and memoizes system prompts. It is safe for concurrent use.
type Engine struct {
	corpus    *corpus.Corpus
	atoms     []*PromptAtom
	assembler *FinalAssembler
	cache     *PromptCache
}

// New creates an engine over c using the embedded prompt atoms.
func New(c *corpus.Corpus) (*Engine, error) {
	atoms, err := LoadEmbeddedAtoms()
	if err != nil {
		return nil, err
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("no prompt atoms loaded")
	}
	return NewWithAtoms(c, atoms), nil
}

// NewWithAtoms creates an engine with an explicit atom set.
func NewWithAtoms(c *corpus.Corpus, atoms []*PromptAtom) *Engine {
	return &Engine{
		corpus:    c,
		atoms:     atoms,
		assembler: NewFinalAssembler(),
		cache:     NewPromptCache(),
	}
}

// Atoms returns the atoms the core prompt is assembled from.
func (e *Engine) Atoms() []*PromptAtom {
	return e.atoms
}

// CorePrompt returns the Atlas core prompt. It is built once.
func (e *Engine) CorePrompt() string {
	return e.cache.Core(func() string {
		timer := logging.StartTimer(logging.CategoryPrompt, "CorePrompt")
		defer timer.Stop()
		return e.assembler.Assemble(e.atoms)
	})
}

// AreaKnowledge returns the compacted knowledge block for area. Unknown and
// empty areas yield "". Results are memoized per area, and per known episode
// for the Mythology Channel.
func (e *Engine) AreaKnowledge(area types.Area, ctx AreaContext) string {
	if !area.IsValid() {
		return ""
	}
	ctx = scopeContext(e.corpus, area, ctx)
	key := cacheKey(area, ctx)
	return e.cache.Area(key, func() string {
		timer := logging.StartTimer(logging.CategoryPrompt, "AreaKnowledge")
		defer timer.Stop()

		s := areaKnowledge(e.corpus, area, ctx)
		logging.Get(logging.CategoryPrompt).Debug("Built area block %s: %d chars, ~%d tokens", key, len(s), EstimateTokens(s))
		return s
	})
}

// SystemPrompt returns the core prompt followed by the area block. With no
// area, or an area whose block is empty, it is exactly CorePrompt().
func (e *Engine) SystemPrompt(area types.Area, ctx AreaContext) string {
	core := e.CorePrompt()
	if area == "" {
		return core
	}
	data := e.AreaKnowledge(area, ctx)
	if data == "" {
		return core
	}
	return core + areaSeparator + data
}

// SystemPromptWithSituation appends the caller's situational context
// verbatim. A blank situation leaves the prompt unchanged.
func (e *Engine) SystemPromptWithSituation(area types.Area, ctx AreaContext, situation string) string {
	return WithSituation(e.SystemPrompt(area, ctx), situation)
}

// WithSituation appends situation to prompt when it is not blank.
func WithSituation(prompt, situation string) string {
	if strings.TrimSpace(situation) == "" {
		return prompt
	}
	return prompt + "\n\n" + situation
}

// Warm builds the core prompt and every area block concurrently.
func (e *Engine) Warm(ctx context.Context) error {
	timer := logging.StartTimer(logging.CategoryPrompt, "Warm")
	defer timer.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.CorePrompt()
		return nil
	})
	for _, area := range types.ValidAreas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.AreaKnowledge(area, AreaContext{})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("prompt warm-up interrupted: %w", err)
	}

	logging.Get(logging.CategoryPrompt).Info("Prompt cache warm: core plus %d area blocks", e.cache.Len())
	return nil
}

// BlockStats sizes one prompt block.
type BlockStats struct {
	Name   string `json:"name"`
	Chars  int    `json:"chars"`
	Tokens int    `json:"tokens"`
}

// Stats sizes the core prompt and each area block.
type Stats struct {
	Core  BlockStats   `json:"core"`
	Areas []BlockStats `json:"areas"`
	Atoms int          `json:"atoms"`
}

// Stats reports chars and estimated tokens per block, in area order.
func (e *Engine) Stats() Stats {
	core := e.CorePrompt()
	st := Stats{
		Core:  BlockStats{Name: "core", Chars: len(core), Tokens: EstimateTokens(core)},
		Areas: make([]BlockStats, 0, len(types.ValidAreas)),
		Atoms: len(e.atoms),
	}
	for _, area := range types.ValidAreas {
		s := e.AreaKnowledge(area, AreaContext{})
		st.Areas = append(st.Areas, BlockStats{Name: string(area), Chars: len(s), Tokens: EstimateTokens(s)})
	}
	return st
}

// Package prompt composes the system prompts Atlas sends to the LLM.
//
// A prompt has two layers:
//  1. The core prompt, assembled once from embedded YAML atoms (identity,
//     rules, stance, worked example, area summaries, navigation catalog and
//     tool instructions).
//  2. An optional area block, built from the corpus compactors for the area
//     the conversation is in and memoized per area (and per episode for the
//     Mythology Channel).
//
// Callers may append an opaque situational context block per request.
package prompt

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// AtomCategory represents the category of a prompt atom.
// Categories fix where an atom lands in the core prompt.
type AtomCategory string

const (
	// CategoryIdentity defines who Atlas is.
	CategoryIdentity AtomCategory = "identity"

	// CategoryRules holds the character rules.
	CategoryRules AtomCategory = "rules"

	// CategoryStance holds the interpretive stance.
	CategoryStance AtomCategory = "stance"

	// CategoryExemplar contains worked examples of cross-referential answers.
	CategoryExemplar AtomCategory = "exemplar"

	// CategorySummary contains the hand-written per-area summaries.
	CategorySummary AtomCategory = "summary"

	// CategoryNavigation contains the catalog of permitted [[Label|/path]] links.
	CategoryNavigation AtomCategory = "navigation"

	// CategoryTools contains tool-use instructions (natal chart).
	CategoryTools AtomCategory = "tools"
)

// AllCategories returns all defined atom categories in core prompt order.
func AllCategories() []AtomCategory {
	return []AtomCategory{
		CategoryIdentity,
		CategoryRules,
		CategoryStance,
		CategoryExemplar,
		CategorySummary,
		CategoryNavigation,
		CategoryTools,
	}
}

// IsValid reports whether c is one of AllCategories.
func (c AtomCategory) IsValid() bool {
	for _, v := range AllCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// PromptAtom is a single fragment of the core prompt.
type PromptAtom struct {
	// Unique identifier (e.g. "atlas/summary/games")
	ID string `json:"id"`

	Category AtomCategory `json:"category"`

	// Priority orders atoms within a category (higher = earlier)
	Priority int `json:"priority"`

	// Description is a short human note; it never reaches the LLM
	Description string `json:"description,omitempty"`

	// The prompt text itself
	Content string `json:"content"`

	// Estimated token count (cached for stats)
	TokenCount int `json:"token_count"`

	// SHA256 of Content
	ContentHash string `json:"content_hash"`
}

// EstimateTokens estimates the token count for content using chars/4 approximation.
// This is a fast heuristic; actual tokenization may vary by model.
func EstimateTokens(content string) int {
	if content == "" {
		return 0
	}
	return (len(content) + 3) / 4
}

// HashContent computes a SHA256 hash of content.
func HashContent(content string) string {
	if content == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// NewPromptAtom creates a new PromptAtom with computed fields.
func NewPromptAtom(id string, category AtomCategory, priority int, content string) *PromptAtom {
	return &PromptAtom{
		ID:          id,
		Category:    category,
		Priority:    priority,
		Content:     content,
		TokenCount:  EstimateTokens(content),
		ContentHash: HashContent(content),
	}
}

// Validate checks that the atom is usable.
func (a *PromptAtom) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("atom missing ID")
	}
	if !a.Category.IsValid() {
		return fmt.Errorf("atom %s has unknown category %q", a.ID, a.Category)
	}
	if a.Content == "" {
		return fmt.Errorf("atom %s has no content", a.ID)
	}
	return nil
}

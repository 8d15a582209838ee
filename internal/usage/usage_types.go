package usage

import "time"

// UsageEvent represents a single chat turn sent to the LLM.
type UsageEvent struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Area         string    `json:"area,omitempty"`
	Persona      string    `json:"persona,omitempty"`
	PromptTokens int       `json:"prompt_tokens"` // estimated from the system prompt
	InputTokens  int       `json:"input_tokens"`  // provider-reported
	OutputTokens int       `json:"output_tokens"` // provider-reported
}

// AggregatedStats holds counters broken down by various dimensions.
type AggregatedStats struct {
	Turns      int64                  `json:"turns"`
	Total      TokenCounts            `json:"total"`
	ByArea     map[string]TokenCounts `json:"by_area"`
	ByProvider map[string]TokenCounts `json:"by_provider"`
	ByModel    map[string]TokenCounts `json:"by_model"`
}

// TokenCounts holds input/output sums.
type TokenCounts struct {
	Turns  int64 `json:"turns"`
	Prompt int64 `json:"prompt"`
	Input  int64 `json:"input"`
	Output int64 `json:"output"`
	Total  int64 `json:"total"`
}

// Add folds one event into the counts.
func (tc *TokenCounts) Add(prompt, input, output int) {
	tc.Turns++
	tc.Prompt += int64(prompt)
	tc.Input += int64(input)
	tc.Output += int64(output)
	tc.Total += int64(input + output)
}

package perception

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"atlas/internal/config"
	"atlas/internal/types"
)

// ErrNotConfigured is returned when no API key is available for the
// configured provider.
var ErrNotConfigured = errors.New("LLM client not configured")

// LLMClient defines the interface for LLM providers.
type LLMClient interface {
	// Chat sends the system prompt and transcript and returns the reply.
	Chat(ctx context.Context, system string, messages []types.Message) (Completion, error)
	Provider() string
	Model() string
}

// Completion is one assistant reply plus provider-reported token usage.
type Completion struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// ClientOptions are the provider-independent client settings.
type ClientOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// NewClientFromConfig builds the client for cfg.LLM.Provider. It returns
// ErrNotConfigured when the API key is missing.
func NewClientFromConfig(cfg *config.Config) (LLMClient, error) {
	if !cfg.LLM.HasAPIKey() {
		return nil, ErrNotConfigured
	}

	opts := ClientOptions{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Timeout:     cfg.GetLLMTimeout(),
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}

	switch strings.ToLower(cfg.LLM.Provider) {
	case config.ProviderAnthropic:
		return NewAnthropicClient(opts), nil
	case config.ProviderGemini:
		// The Anthropic base URL default does not apply to genai.
		if strings.Contains(opts.BaseURL, "anthropic.com") {
			opts.BaseURL = ""
		}
		return NewGeminiClient(context.Background(), opts)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
}

// withDefaultTimeout applies timeout when ctx carries no deadline.
func withDefaultTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

package perception

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"atlas/internal/logging"
	"atlas/internal/types"
)

const defaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the slice of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements LLMClient for Google Gemini via the genai SDK.
type GeminiClient struct {
	models      contentGenerator
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, opts ClientOptions) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, ErrNotConfigured
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGeminiClient(client.Models, opts), nil
}

func newGeminiClient(models contentGenerator, opts ClientOptions) *GeminiClient {
	c := &GeminiClient{
		models:      models,
		model:       strings.TrimSpace(opts.Model),
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
	}
	if c.model == "" {
		c.model = defaultGeminiModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = 1024
	}
	if c.timeout <= 0 {
		c.timeout = 60 * time.Second
	}
	return c
}

// Provider implements LLMClient.
func (c *GeminiClient) Provider() string { return "gemini" }

// Model implements LLMClient.
func (c *GeminiClient) Model() string { return c.model }

// Chat implements LLMClient.
func (c *GeminiClient) Chat(ctx context.Context, system string, messages []types.Message) (Completion, error) {
	ctx, cancel := withDefaultTimeout(ctx, c.timeout)
	defer cancel()

	log := logging.Get(logging.CategoryLLM)
	startTime := time.Now()
	log.Debug("[Gemini] Chat: model=%s system_len=%d messages=%d", c.model, len(system), len(messages))

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(c.maxTokens),
		Temperature:     genai.Ptr(float32(c.temperature)),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, toGeminiContents(messages), cfg)
	if err != nil {
		log.Error("[Gemini] Chat: request failed after %v: %v", time.Since(startTime), err)
		return Completion{}, fmt.Errorf("gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Completion{}, fmt.Errorf("no completion returned")
	}

	out := Completion{Text: text, Model: c.model}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		out.InputTokens = int(u.PromptTokenCount)
		out.OutputTokens = int(u.CandidatesTokenCount)
	}

	log.Info("[Gemini] Chat: completed in %v in=%d out=%d", time.Since(startTime), out.InputTokens, out.OutputTokens)
	return out, nil
}

// toGeminiContents maps transcript roles onto genai roles.
func toGeminiContents(messages []types.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == types.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

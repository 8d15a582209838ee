package perception

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"atlas/internal/logging"
	"atlas/internal/types"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	defaultAnthropicModel   = "claude-sonnet-4-20250514"
	anthropicVersion        = "2023-06-01"
)

// AnthropicClient implements LLMClient for the Anthropic Messages API.
type AnthropicClient struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	httpClient  *http.Client

	maxRetries int
	backoff    func(attempt int) time.Duration
}

// AnthropicRequest is the Messages API request body.
type AnthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []AnthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

// AnthropicMessage is one transcript entry.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicResponse is the Messages API response body.
type AnthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnthropicClient creates an Anthropic client. Zero-valued options fall
// back to defaults.
func NewAnthropicClient(opts ClientOptions) *AnthropicClient {
	c := &AnthropicClient{
		apiKey:      opts.APIKey,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		httpClient:  &http.Client{},
		maxRetries:  3,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<uint(attempt-1)) * time.Second
		},
	}
	if c.baseURL == "" {
		c.baseURL = defaultAnthropicBaseURL
	}
	if c.model == "" {
		c.model = defaultAnthropicModel
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
func (c *AnthropicClient) Provider() string { return "anthropic" }

// Model implements LLMClient.
func (c *AnthropicClient) Model() string { return c.model }

// Chat implements LLMClient. 429 and 5xx responses are retried with
// exponential backoff.
func (c *AnthropicClient) Chat(ctx context.Context, system string, messages []types.Message) (Completion, error) {
	ctx, cancel := withDefaultTimeout(ctx, c.timeout)
	defer cancel()

	log := logging.Get(logging.CategoryLLM)
	startTime := time.Now()
	log.Debug("[Anthropic] Chat: model=%s system_len=%d messages=%d", c.model, len(system), len(messages))

	if c.apiKey == "" {
		return Completion{}, ErrNotConfigured
	}

	reqBody := AnthropicRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		System:      system,
		Messages:    make([]AnthropicMessage, 0, len(messages)),
		Temperature: c.temperature,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, AnthropicMessage{Role: m.Role, Content: m.Content})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Completion{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Completion{}, fmt.Errorf("request cancelled: %w", ctx.Err())
			case <-time.After(c.backoff(attempt)):
			}
		}

		body, status, err := c.post(ctx, jsonData)
		if err != nil {
			if ctx.Err() != nil {
				return Completion{}, fmt.Errorf("request failed: %w", err)
			}
			lastErr = err
			continue
		}

		if status == http.StatusTooManyRequests || status >= 500 {
			lastErr = fmt.Errorf("API returned status %d", status)
			log.Warn("[Anthropic] Chat: attempt %d got status %d", attempt+1, status)
			continue
		}
		if status != http.StatusOK {
			return Completion{}, fmt.Errorf("API request failed with status %d: %s", status, string(body))
		}

		var resp AnthropicResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return Completion{}, fmt.Errorf("failed to parse response: %w", err)
		}
		if resp.Error != nil {
			return Completion{}, fmt.Errorf("API error: %s", resp.Error.Message)
		}

		var text strings.Builder
		for _, block := range resp.Content {
			if block.Type == "text" {
				text.WriteString(block.Text)
			}
		}
		if text.Len() == 0 {
			return Completion{}, fmt.Errorf("no completion returned")
		}

		model := resp.Model
		if model == "" {
			model = c.model
		}
		log.Info("[Anthropic] Chat: completed in %v in=%d out=%d", time.Since(startTime), resp.Usage.InputTokens, resp.Usage.OutputTokens)
		return Completion{
			Text:         strings.TrimSpace(text.String()),
			Model:        model,
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		}, nil
	}

	log.Error("[Anthropic] Chat: max retries exceeded after %v: %v", time.Since(startTime), lastErr)
	return Completion{}, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *AnthropicClient) post(ctx context.Context, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

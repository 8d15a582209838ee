package config

import "time"

// Supported providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	DefaultGeminiModel = "gemini-2.5-flash"
)

// ValidProviders lists all supported LLM providers.
var ValidProviders = []string{ProviderAnthropic, ProviderGemini}

// LLMConfig configures the LLM used for chat replies.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // anthropic, gemini
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Timeout     string  `yaml:"timeout"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// GetLLMTimeout returns the LLM timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// HasAPIKey reports whether chat can reach a provider.
func (c *LLMConfig) HasAPIKey() bool {
	return c.APIKey != ""
}

func isValidProvider(p string) bool {
	for _, v := range ValidProviders {
		if p == v {
			return true
		}
	}
	return false
}

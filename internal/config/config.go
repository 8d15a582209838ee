package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all Atlas configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// HTTP API
	Server ServerConfig `yaml:"server"`

	// LLM provider used by the chat endpoint
	LLM LLMConfig `yaml:"llm"`

	// Chat turn handling
	Chat ChatConfig `yaml:"chat"`

	// Prompt engine behavior
	Prompt PromptConfig `yaml:"prompt"`

	// Usage accounting
	Usage UsageConfig `yaml:"usage"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// dotenv holds values read from the .env file beside the config file.
	dotenv map[string]string
}

// ChatConfig configures chat turn handling.
type ChatConfig struct {
	// MaxHistory caps how many trailing messages are forwarded to the LLM.
	MaxHistory int `yaml:"max_history"`
}

// PromptConfig configures the prompt engine.
type PromptConfig struct {
	// WarmOnStart builds the core prompt and every area block before serving.
	WarmOnStart bool `yaml:"warm_on_start"`
}

// UsageConfig configures the usage store.
type UsageConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "atlas",
		Version: "1.0.0",

		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8787,
			CORSOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
			},
			RateLimit: RateLimitConfig{
				RequestsPerMinute: 20,
				Burst:             5,
			},
		},

		LLM: LLMConfig{
			Provider:    "anthropic",
			Model:       "claude-sonnet-4-20250514",
			BaseURL:     "https://api.anthropic.com/v1",
			Timeout:     "60s",
			MaxTokens:   1024,
			Temperature: 0.7,
		},

		Chat: ChatConfig{
			MaxHistory: 20,
		},

		Prompt: PromptConfig{
			WarmOnStart: true,
		},

		Usage: UsageConfig{
			Enabled:      true,
			DatabasePath: "data/atlas_usage.db",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A .env file in the same
// directory fills in environment variables that are unset or empty.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.dotenv = readDotEnv(filepath.Join(filepath.Dir(path), ".env"))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// readDotEnv returns the key/value pairs of a .env file, or nil when the
// file is missing or malformed.
func readDotEnv(path string) map[string]string {
	vals, err := godotenv.Read(path)
	if err != nil {
		return nil
	}
	return vals
}

// getenv prefers the process environment over the .env file.
func (c *Config) getenv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return c.dotenv[key]
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// LLM API key from environment (later keys win)
	if key := c.getenv("ANTHROPIC_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = ProviderAnthropic
	}
	if key := c.getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = ProviderGemini
		if c.LLM.Model == "" || strings.HasPrefix(c.LLM.Model, "claude") {
			c.LLM.Model = DefaultGeminiModel
		}
	}
	if model := c.getenv("ATLAS_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if path := c.getenv("ATLAS_DB"); path != "" {
		c.Usage.DatabasePath = path
	}
	if port := c.getenv("ATLAS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if origins := c.getenv("ATLAS_CORS_ORIGINS"); origins != "" {
		var list []string
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				list = append(list, o)
			}
		}
		c.Server.CORSOrigins = list
	}
}

// Validate validates the configuration. A missing API key is not an error:
// prompt and persona endpoints work without one and chat answers 503.
func (c *Config) Validate() error {
	if !isValidProvider(c.LLM.Provider) {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimit.RequestsPerMinute < 0 || c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must be non-negative")
	}
	if c.Chat.MaxHistory < 0 {
		return fmt.Errorf("chat.max_history must be non-negative")
	}
	return nil
}

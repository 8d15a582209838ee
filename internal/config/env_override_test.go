package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "ATLAS_MODEL", "ATLAS_DB", "ATLAS_PORT", "ATLAS_CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func TestEnvOverrides_LLM(t *testing.T) {
	t.Run("ANTHROPIC_API_KEY sets provider", func(t *testing.T) {
		clearLLMKeys(t)
		t.Setenv("ANTHROPIC_API_KEY", "ant-key")

		cfg := &Config{LLM: LLMConfig{Provider: "initial"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "ant-key", cfg.LLM.APIKey)
		assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	})

	t.Run("Precedence: GEMINI overrides ANTHROPIC", func(t *testing.T) {
		clearLLMKeys(t)
		t.Setenv("ANTHROPIC_API_KEY", "ant-key")
		t.Setenv("GEMINI_API_KEY", "gem-key")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "gem-key", cfg.LLM.APIKey)
		assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
		assert.Equal(t, DefaultGeminiModel, cfg.LLM.Model, "claude default model is swapped for a gemini one")
	})

	t.Run("ATLAS_MODEL wins over provider default", func(t *testing.T) {
		clearLLMKeys(t)
		t.Setenv("GEMINI_API_KEY", "gem-key")
		t.Setenv("ATLAS_MODEL", "gemini-2.5-pro")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	})

	t.Run("no keys leaves config untouched", func(t *testing.T) {
		clearLLMKeys(t)

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Empty(t, cfg.LLM.APIKey)
		assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	})
}

func TestEnvOverrides_Server(t *testing.T) {
	t.Run("port and db", func(t *testing.T) {
		clearLLMKeys(t)
		t.Setenv("ATLAS_PORT", "9090")
		t.Setenv("ATLAS_DB", "/tmp/usage.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "/tmp/usage.db", cfg.Usage.DatabasePath)
	})

	t.Run("bad port ignored", func(t *testing.T) {
		clearLLMKeys(t)
		t.Setenv("ATLAS_PORT", "eighty")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 8787, cfg.Server.Port)
	})

	t.Run("cors origins are split and trimmed", func(t *testing.T) {
		clearLLMKeys(t)
		t.Setenv("ATLAS_CORS_ORIGINS", "https://a.example, https://b.example ,")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	})
}

func TestDotEnvBesideConfig(t *testing.T) {
	clearLLMKeys(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=dot-key\nATLAS_PORT=9999\n"), 0o600))

	t.Run("fills unset variables", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "atlas.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "dot-key", cfg.LLM.APIKey)
		assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
		assert.Equal(t, 9999, cfg.Server.Port)
	})

	t.Run("process environment wins", func(t *testing.T) {
		t.Setenv("ATLAS_PORT", "7000")
		cfg, err := Load(filepath.Join(dir, "atlas.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.Server.Port)
	})

	t.Run("no file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "atlas.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.LLM.APIKey)
	})
}

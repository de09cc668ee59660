package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("SHADOW_CONFIG", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/shadow")
	t.Setenv("GOOGLE_API_KEY", "key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 5, cfg.HistoryTurns)
	assert.Equal(t, 10, cfg.InsightHistorySize)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, cfg.ChatModel, cfg.ClassifierModel)
	assert.Equal(t, uint32(3), cfg.BreakerMaxFailures)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shadow.yaml")
	yamlText := "database_url: postgres://file/shadow\ngoogle_api_key: file-key\ntop_k: 9\nllm_provider: grok\nxai_api_key: xai\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlText), 0o600))

	t.Setenv("DATABASE_URL", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("TOP_K", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://file/shadow", cfg.DatabaseURL)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, ProviderGrok, cfg.LLMProvider)
}

func TestValidateReportsMissingKeys(t *testing.T) {
	cfg := Config{LLMProvider: ProviderOpenAI}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	getenv := func(string) string { return "many" }
	assert.Equal(t, 7, getEnvInt(getenv, "TOP_K", 7))
}

func TestReadSkipsValidation(t *testing.T) {
	t.Setenv("SHADOW_CONFIG", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Error(t, cfg.Validate())
}

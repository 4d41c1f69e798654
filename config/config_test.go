package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 45, cfg.Auth.TokenTTLMinutes)
	assert.True(t, cfg.Chat.Persona)
	assert.True(t, cfg.Chat.Persist)
	assert.Equal(t, 50, cfg.Chat.HistoryLimit)
	assert.Equal(t, "0 9 * * *", cfg.Notify.CronSpec)
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ecotrack.toml")
	content := `
[server]
addr = ":9090"

[database]
path = "/var/lib/ecotrack/ecotrack.db"

[llm]
model = "llama-3.3-70b-versatile"
temperature = 0.7

[chat]
persona = false
persist = true
history_limit = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/ecotrack/ecotrack.db", cfg.Database.Path)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	require.NotNil(t, cfg.LLM.Temperature)
	assert.InDelta(t, 0.7, *cfg.LLM.Temperature, 1e-9)
	assert.False(t, cfg.Chat.Persona)
	assert.Equal(t, 10, cfg.Chat.HistoryLimit)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GROQ_MAX_TOKENS", "2048")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "gsk_test", cfg.LLM.APIKey)
	require.NotNil(t, cfg.LLM.MaxTokens)
	assert.Equal(t, 2048, *cfg.LLM.MaxTokens)
}

func TestPortAcceptsFullAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:8081")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Addr)
}

func TestInvalidEnvValue(t *testing.T) {
	t.Setenv("GROQ_TEMPERATURE", "warm")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_TEMPERATURE")
}

func TestValidateServe(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.ValidateServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")

	cfg.LLM.APIKey = "gsk_test"
	err = cfg.ValidateServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret")

	cfg.Auth.Secret = "shhh"
	assert.NoError(t, cfg.ValidateServe())

	cfg.Notify.Enabled = true
	err = cfg.ValidateServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notifier")
}

// Package config loads service configuration from an optional TOML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config aggregates every tunable of the service.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	LLM      LLMConfig      `toml:"llm"`
	Auth     AuthConfig     `toml:"auth"`
	Chat     ChatConfig     `toml:"chat"`
	Notify   NotifyConfig   `toml:"notify"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DatabaseConfig describes the SQLite database. An empty path selects the
// in-memory store.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LLMConfig describes the completion provider.
type LLMConfig struct {
	APIKey      string   `toml:"api_key"`
	BaseURL     string   `toml:"base_url"`
	Model       string   `toml:"model"`
	Temperature *float64 `toml:"temperature"`
	TopP        *float64 `toml:"top_p"`
	MaxTokens   *int     `toml:"max_tokens"`
}

// AuthConfig describes token signing.
type AuthConfig struct {
	Secret          string `toml:"secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

// ChatConfig toggles orchestrator behavior.
type ChatConfig struct {
	Persona      bool `toml:"persona"`
	Persist      bool `toml:"persist"`
	HistoryLimit int  `toml:"history_limit"`
}

// NotifyConfig describes the scheduled email job.
type NotifyConfig struct {
	Enabled   bool   `toml:"enabled"`
	CronSpec  string `toml:"cron"`
	Recipient string `toml:"recipient"`
	Subject   string `toml:"subject"`
	Prompt    string `toml:"prompt"`
	SMTPHost  string `toml:"smtp_host"`
	SMTPPort  int    `toml:"smtp_port"`
	SMTPUser  string `toml:"smtp_user"`
	SMTPPass  string `toml:"smtp_pass"`
	From      string `toml:"from"`
}

// Load reads defaults, then the TOML file at path (if any), then environment
// overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{},
		LLM: LLMConfig{
			Model: "openai/gpt-oss-20b",
		},
		Auth: AuthConfig{TokenTTLMinutes: 45},
		Chat: ChatConfig{
			Persona:      true,
			Persist:      true,
			HistoryLimit: 50,
		},
		Notify: NotifyConfig{
			CronSpec: "0 9 * * *",
			Subject:  "Your EcoTrack daily tip",
			Prompt:   "Give one practical tip for reducing a household carbon footprint today.",
			SMTPPort: 587,
		},
	}
}

func applyEnv(cfg *Config) error {
	cfg.Server.Addr = addrFromEnv(cfg.Server.Addr)
	cfg.Database.Path = getEnvOrDefault("ECOTRACK_DB", cfg.Database.Path)

	cfg.LLM.APIKey = getEnvOrDefault("GROQ_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnvOrDefault("GROQ_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = getEnvOrDefault("GROQ_MODEL", cfg.LLM.Model)

	temperature, err := parseOptionalFloatEnv("GROQ_TEMPERATURE")
	if err != nil {
		return err
	}
	if temperature != nil {
		cfg.LLM.Temperature = temperature
	}

	topP, err := parseOptionalFloatEnv("GROQ_TOP_P")
	if err != nil {
		return err
	}
	if topP != nil {
		cfg.LLM.TopP = topP
	}

	maxTokens, err := parseOptionalIntEnv("GROQ_MAX_TOKENS")
	if err != nil {
		return err
	}
	if maxTokens != nil {
		cfg.LLM.MaxTokens = maxTokens
	}

	cfg.Auth.Secret = getEnvOrDefault("SECRET_KEY", cfg.Auth.Secret)
	if ttl, err := parseOptionalIntEnv("TOKEN_TTL_MINUTES"); err != nil {
		return err
	} else if ttl != nil {
		cfg.Auth.TokenTTLMinutes = *ttl
	}

	cfg.Notify.Recipient = getEnvOrDefault("NOTIFY_RECIPIENT", cfg.Notify.Recipient)
	cfg.Notify.CronSpec = getEnvOrDefault("NOTIFY_CRON", cfg.Notify.CronSpec)
	cfg.Notify.SMTPHost = getEnvOrDefault("SMTP_HOST", cfg.Notify.SMTPHost)
	if port, err := parseOptionalIntEnv("SMTP_PORT"); err != nil {
		return err
	} else if port != nil {
		cfg.Notify.SMTPPort = *port
	}
	cfg.Notify.SMTPUser = getEnvOrDefault("SMTP_USER", cfg.Notify.SMTPUser)
	cfg.Notify.SMTPPass = getEnvOrDefault("SMTP_PASS", cfg.Notify.SMTPPass)
	cfg.Notify.From = getEnvOrDefault("SMTP_FROM", cfg.Notify.From)

	return nil
}

// addrFromEnv accepts either a bare port ("8080") or a full address
// (":8080", "127.0.0.1:8080") in PORT.
func addrFromEnv(fallback string) string {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		return fallback
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// ValidateServe checks the settings the serving path cannot run without.
func (c *Config) ValidateServe() error {
	if c.LLM.APIKey == "" {
		return errors.New("missing LLM API key (set GROQ_API_KEY)")
	}
	if c.Auth.Secret == "" {
		return errors.New("missing token signing secret (set SECRET_KEY)")
	}
	if c.Notify.Enabled && (c.Notify.SMTPHost == "" || c.Notify.Recipient == "") {
		return errors.New("notifier enabled but smtp_host or recipient missing")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

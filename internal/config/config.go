// Package config loads runtime settings from layered sources: struct
// defaults, an optional YAML file and MOODFLIX_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// PathEnvVar names a config file that overrides DefaultPaths.
	PathEnvVar = "MOODFLIX_CONFIG"
	envPrefix  = "MOODFLIX_"
)

// DefaultPaths are probed in order when no explicit path is given.
var DefaultPaths = []string{"moodflix.yaml", "moodflix.yml"}

type Config struct {
	DB        DBConfig        `koanf:"db"`
	Session   SessionConfig   `koanf:"session"`
	Recommend RecommendConfig `koanf:"recommend"`
	History   HistoryConfig   `koanf:"history"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	LLM       LLMConfig       `koanf:"llm"`
	HTTP      HTTPConfig      `koanf:"http"`
	Log       LogConfig       `koanf:"log"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type SessionConfig struct {
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	JanitorInterval time.Duration `koanf:"janitor_interval"`
}

type RecommendConfig struct {
	DefaultCount int `koanf:"default_count"`
}

type HistoryConfig struct {
	MaxTurns int `koanf:"max_turns"`
}

type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	Language          string        `koanf:"language"`
	Region            string        `koanf:"region"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// LLMConfig switches slot extraction to a local Ollama model. Keyword
// extraction stays as the fallback.
type LLMConfig struct {
	Enabled         bool          `koanf:"enabled"`
	LogCalls        bool          `koanf:"log_calls"`
	Endpoint        string        `koanf:"endpoint"`
	Model           string        `koanf:"model"`
	Timeout         time.Duration `koanf:"timeout"`
	MaxRetries      int           `koanf:"max_retries"`
	Temperature     float64       `koanf:"temperature"`
	MaxTokens       int           `koanf:"max_tokens"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerCooldown time.Duration `koanf:"breaker_cooldown"`
}

type HTTPConfig struct {
	Addr              string `koanf:"addr"`
	RequestsPerMinute int    `koanf:"requests_per_minute"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DB: DBConfig{Path: "moodflix.db"},
		Session: SessionConfig{
			IdleTimeout:     300 * time.Second,
			JanitorInterval: time.Minute,
		},
		Recommend: RecommendConfig{DefaultCount: 1},
		History:   HistoryConfig{MaxTurns: 300},
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Language:          "es-AR",
			Region:            "AR",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 20,
			Burst:             10,
		},
		LLM: LLMConfig{
			Endpoint:        "http://localhost:11434",
			Model:           "llama3.2",
			Timeout:         8 * time.Second,
			MaxRetries:      1,
			MaxTokens:       512,
			BreakerFailures: 3,
			BreakerCooldown: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr:              ":8080",
			RequestsPerMinute: 60,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load layers defaults, the config file and the environment, then
// validates the result. An explicit path must exist; otherwise
// MOODFLIX_CONFIG and DefaultPaths are probed and a missing file is fine.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// TMDB_API_KEY is honoured for existing deployments; MOODFLIX_ wins.
	if err := k.Load(env.ProviderWithValue("TMDB_", ".", legacyEnvKey), nil); err != nil {
		return nil, fmt.Errorf("loading legacy environment: %w", err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKey maps MOODFLIX_TMDB__API_KEY to tmdb.api_key. Variables without a
// section separator, such as MOODFLIX_CONFIG, are skipped.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

func legacyEnvKey(key, value string) (string, any) {
	if key != "TMDB_API_KEY" || value == "" {
		return "", nil
	}
	return "tmdb.api_key", value
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DB.Path) == "" {
		errs = append(errs, errors.New("db.path is required"))
	}
	if c.Session.IdleTimeout <= 0 {
		errs = append(errs, errors.New("session.idle_timeout must be positive"))
	}
	if c.Session.JanitorInterval < 0 {
		errs = append(errs, errors.New("session.janitor_interval must not be negative"))
	}
	if c.Recommend.DefaultCount < 1 || c.Recommend.DefaultCount > 5 {
		errs = append(errs, fmt.Errorf("recommend.default_count must be between 1 and 5, got %d", c.Recommend.DefaultCount))
	}
	if c.History.MaxTurns < 0 {
		errs = append(errs, errors.New("history.max_turns must not be negative"))
	}
	if c.TMDB.BaseURL == "" {
		errs = append(errs, errors.New("tmdb.base_url is required"))
	}
	if c.TMDB.Timeout <= 0 {
		errs = append(errs, errors.New("tmdb.timeout must be positive"))
	}
	if c.TMDB.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("tmdb.requests_per_second must not be negative"))
	}
	if c.LLM.Enabled {
		if c.LLM.Endpoint == "" {
			errs = append(errs, errors.New("llm.endpoint is required when llm.enabled"))
		}
		if c.LLM.Timeout <= 0 {
			errs = append(errs, errors.New("llm.timeout must be positive"))
		}
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, errors.New("llm.max_retries must not be negative"))
	}
	if c.HTTP.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("http.requests_per_minute must not be negative"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

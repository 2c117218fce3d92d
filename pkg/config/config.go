// Package config loads the harvester configuration from defaults, an
// optional YAML file, and PROFILES_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full runtime configuration.
type Config struct {
	// BaseURL of the report portal.
	BaseURL string `koanf:"base_url"`

	// TokenURL and ClientID drive the client-credentials token exchange.
	TokenURL string `koanf:"token_url"`
	ClientID string `koanf:"client_id"`

	// Letters restricts the harvest to these buckets. Empty means all.
	Letters []string `koanf:"letters"`

	// PageSize per list request.
	PageSize int `koanf:"page_size"`

	// Concurrency bounds simultaneous network calls.
	Concurrency int `koanf:"concurrency"`

	// UserAgent sent on every request.
	UserAgent string `koanf:"user_agent"`

	// OutputDir receives snapshots and CSV exports.
	OutputDir string `koanf:"output_dir"`

	// RedisAddr enables the payload cache when non-empty.
	RedisAddr string        `koanf:"redis_addr"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// TrainingChunkRows caps rows per training chunk file.
	TrainingChunkRows int `koanf:"training_chunk_rows"`

	// CSVChunkRows caps rows per CSV file before rolling to the next.
	CSVChunkRows int `koanf:"csv_chunk_rows"`

	LogLevel  string `koanf:"log_level"`
	LogPretty bool   `koanf:"log_pretty"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		BaseURL:           "https://oip.nypdonline.org",
		TokenURL:          "https://oip.nypdonline.org/oauth2/token",
		ClientID:          "435e66dd-eca9-47fc-be6b-091858a1ca7d",
		PageSize:          100,
		Concurrency:       20,
		UserAgent:         "nypd-officer-profiles/1.0",
		OutputDir:         ".",
		CacheTTL:          24 * time.Hour,
		TrainingChunkRows: 250000,
		CSVChunkRows:      500000,
		LogLevel:          "info",
		LogPretty:         false,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PROFILES_CONFIG is set
//  3. env (prefix PROFILES_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PROFILES_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Env keys map flat: PROFILES_PAGE_SIZE -> page_size.
	envProvider := env.Provider("PROFILES_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "profiles_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base_url must not be empty")
	}
	if cfg.PageSize <= 0 {
		return nil, errors.New("page_size must be positive")
	}
	return &cfg, nil
}

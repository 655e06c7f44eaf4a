// Package config handles configuration loading and validation for tms.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/tms/internal/core/projection"
)

// Config holds the application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Review  ReviewConfig  `yaml:"review"`
	Import  ImportConfig  `yaml:"import"`
	TUI     TUIConfig     `yaml:"tui"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// BackendConfig describes the translation management API. An empty BaseURL
// runs tms against the local cache only.
type BackendConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Token     string        `yaml:"token"`
	CompanyID string        `yaml:"company_id"`
	ProjectID string        `yaml:"project_id"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ReviewConfig holds review grid settings.
type ReviewConfig struct {
	TargetLanguage  string   `yaml:"target_language"`
	LengthLimit     int      `yaml:"length_limit"`
	SourceLanguages []string `yaml:"source_languages"`
	Author          string   `yaml:"author"`
}

// ImportConfig lists seed files loaded by `tms import` when no argument is
// given. Entries are doublestar glob patterns.
type ImportConfig struct {
	Sources []string `yaml:"sources"`
}

// TUIConfig holds display settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// Offline reports whether no backend is configured.
func (c *Config) Offline() bool {
	return c.Backend.BaseURL == ""
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			Timeout: 15 * time.Second,
		},
		Review: ReviewConfig{
			TargetLanguage:  "fr",
			LengthLimit:     projection.DefaultLengthLimit,
			SourceLanguages: []string{"en", "fr", "de", "es"},
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = defaults.Backend.Timeout
	}
	if c.Review.TargetLanguage == "" {
		c.Review.TargetLanguage = defaults.Review.TargetLanguage
	}
	if c.Review.LengthLimit == 0 {
		c.Review.LengthLimit = defaults.Review.LengthLimit
	}
	if len(c.Review.SourceLanguages) == 0 {
		c.Review.SourceLanguages = defaults.Review.SourceLanguages
	}
	if c.Review.Author == "" {
		c.Review.Author = defaultAuthor()
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

func defaultAuthor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "reviewer"
}

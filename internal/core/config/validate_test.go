package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Review.Author = "tester"
	return &cfg
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Backend.BaseURL = "http://localhost:8080/"
	cfg.Import.Sources = []string{"testdata/*.json", "seeds/**/{en,fr}.json"}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{name: "missing data dir", mutate: func(c *Config) { c.DataDir = "" }, field: "data_dir"},
		{name: "relative url", mutate: func(c *Config) { c.Backend.BaseURL = "/api" }, field: "backend.base_url"},
		{name: "url without host", mutate: func(c *Config) { c.Backend.BaseURL = "https://" }, field: "backend.base_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.Backend.Timeout = 0 }, field: "backend.timeout"},
		{name: "empty target language", mutate: func(c *Config) { c.Review.TargetLanguage = "" }, field: "review.target_language"},
		{name: "malformed target language", mutate: func(c *Config) { c.Review.TargetLanguage = "not a tag!" }, field: "review.target_language"},
		{name: "zero length limit", mutate: func(c *Config) { c.Review.LengthLimit = 0 }, field: "review.length_limit"},
		{name: "duplicate source language", mutate: func(c *Config) { c.Review.SourceLanguages = []string{"en", "en"} }, field: "review.source_languages[1]"},
		{name: "bad import glob", mutate: func(c *Config) { c.Import.Sources = []string{"ok/*.json", "seeds/[a-"} }, field: "import.sources[1]"},
		{name: "unknown theme", mutate: func(c *Config) { c.TUI.Theme = "neon" }, field: "tui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			assert.Contains(t, fieldNames(t, cfg.Validate()), tt.field)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Backend.Timeout = -time.Second
	cfg.Review.LengthLimit = -5
	cfg.TUI.Theme = "neon"

	names := fieldNames(t, cfg.Validate())
	assert.ElementsMatch(t, []string{"backend.timeout", "review.length_limit", "tui.theme"}, names)
}

func TestValidateDeep(t *testing.T) {
	t.Run("data dir is a file", func(t *testing.T) {
		cfg := validConfig(t)
		file := filepath.Join(t.TempDir(), "data")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		cfg.DataDir = file

		assert.Contains(t, fieldNames(t, cfg.ValidateDeep("")), "data_dir")
	})

	t.Run("config path is a directory", func(t *testing.T) {
		cfg := validConfig(t)
		assert.Contains(t, fieldNames(t, cfg.ValidateDeep(t.TempDir())), "config_file")
	})

	t.Run("missing config file is fine", func(t *testing.T) {
		cfg := validConfig(t)
		assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "missing.yaml")))
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("USER", "ada")
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.True(t, cfg.Offline())
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "fr", cfg.Review.TargetLanguage)
	assert.Equal(t, 50, cfg.Review.LengthLimit)
	assert.Equal(t, []string{"en", "fr", "de", "es"}, cfg.Review.SourceLanguages)
	assert.Equal(t, "ada", cfg.Review.Author)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: https://tms.example.com
  token: secret
  company_id: "42"
  project_id: "7"
  timeout: 3s
review:
  target_language: de
  length_limit: 80
  source_languages: [en, fr]
  author: Grace
import:
  sources:
    - "seeds/**/*.json"
tui:
  theme: gruvbox
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Offline())
	assert.Equal(t, BackendConfig{
		BaseURL:   "https://tms.example.com",
		Token:     "secret",
		CompanyID: "42",
		ProjectID: "7",
		Timeout:   3 * time.Second,
	}, cfg.Backend)
	assert.Equal(t, ReviewConfig{
		TargetLanguage:  "de",
		LengthLimit:     80,
		SourceLanguages: []string{"en", "fr"},
		Author:          "Grace",
	}, cfg.Review)
	assert.Equal(t, []string{"seeds/**/*.json"}, cfg.Import.Sources)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "review:\n  author: Linus\n")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Linus", cfg.Review.Author)
	assert.Equal(t, 50, cfg.Review.LengthLimit)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "malformed yaml", body: "review: [", wantErr: "parse config file"},
		{name: "negative length limit", body: "review:\n  length_limit: -1\n", wantErr: "review.length_limit"},
		{name: "bad url", body: "backend:\n  base_url: ftp://example.com\n", wantErr: "backend.base_url"},
		{name: "unknown theme", body: "tui:\n  theme: neon\n", wantErr: "tui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

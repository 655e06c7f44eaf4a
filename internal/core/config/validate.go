package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"golang.org/x/text/language"

	"github.com/colonyops/tms/internal/core/styles"
)

// Validate checks that the configuration is structurally valid. It does no
// I/O beyond what is needed to parse values.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, required),
		criterio.Run("backend.base_url", c.Backend.BaseURL, baseURL),
		positive("backend.timeout", int64(c.Backend.Timeout)),
		criterio.Run("review.target_language", c.Review.TargetLanguage, languageTag),
		positive("review.length_limit", int64(c.Review.LengthLimit)),
		c.validateSourceLanguages(),
		c.validateImportSources(),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
	)
}

// ValidateDeep runs Validate and then checks the file system: the config
// file and data directory must be usable.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func (c *Config) validateSourceLanguages() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.Review.SourceLanguages))
	for i, lang := range c.Review.SourceLanguages {
		field := fmt.Sprintf("review.source_languages[%d]", i)
		if err := languageTag(lang); err != nil {
			errs = errs.Append(field, err)
			continue
		}
		if seen[lang] {
			errs = errs.Append(field, fmt.Errorf("duplicate language %q", lang))
		}
		seen[lang] = true
	}
	return errs.ToError()
}

func (c *Config) validateImportSources() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Import.Sources {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("import.sources[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}

func required(s string) error {
	if s == "" {
		return errors.New("is required")
	}
	return nil
}

func positive(field string, n int64) error {
	if n < 1 {
		return criterio.NewFieldErrors(field, errors.New("must be greater than zero"))
	}
	return nil
}

// baseURL accepts an empty value (offline mode) or an absolute http(s) URL.
func baseURL(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}

func languageTag(s string) error {
	if s == "" {
		return errors.New("is required")
	}
	if _, err := language.Parse(s); err != nil {
		return fmt.Errorf("invalid language tag %q", s)
	}
	return nil
}

func knownTheme(name string) error {
	if !slices.Contains(styles.ThemeNames(), name) {
		return fmt.Errorf("unknown theme %q, expected one of %v", name, styles.ThemeNames())
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

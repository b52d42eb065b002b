package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidThemeNames = []string{"none", "default", "dracula", "nord", "gruvbox", "catppuccin"}
	ValidThemeModes = []string{"auto", "light", "dark"}
)

// Validate checks value ranges and enums.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Git) == "" {
		return errors.New("git must not be empty")
	}
	if c.RefreshMS <= 0 {
		return fmt.Errorf("invalid refresh_ms %d: must be positive", c.RefreshMS)
	}
	if c.IndexConcurrency <= 0 {
		return fmt.Errorf("invalid index_concurrency %d: must be positive", c.IndexConcurrency)
	}
	if err := validateIgnorePatterns(c.Discovery.Ignore, ""); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// validateIgnorePatterns checks that all patterns are valid filepath.Match syntax.
func validateIgnorePatterns(patterns []string, contextInfo string) error {
	for i, pat := range patterns {
		if _, err := filepath.Match(pat, ""); err != nil {
			if contextInfo != "" {
				return fmt.Errorf("invalid discovery.ignore[%d] %q in %s: %w", i, pat, contextInfo, err)
			}
			return fmt.Errorf("invalid discovery.ignore[%d] %q: %w", i, pat, err)
		}
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

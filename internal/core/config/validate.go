package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/minutes/internal/core/styles"
)

// Validate checks that the configuration is valid. All problems are reported
// together as criterio field errors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("api.base_url", c.API.BaseURL, httpURL),
		criterio.Run("api.timeout", c.RequestTimeout(), nonNegative),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("tui.toast_ttl", c.TUI.ToastTTL, nonNegative),
		criterio.Run("watch.pattern", c.Watch.Pattern, validPattern),
		criterio.Run("watch.debounce", c.Watch.Debounce, nonNegative),
	)
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func httpURL(s string) error {
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

func nonNegative(d time.Duration) error {
	if d < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func knownTheme(name string) error {
	names := styles.ThemeNames()
	if !slices.Contains(names, name) {
		return fmt.Errorf("unknown theme %q (available: %v)", name, names)
	}
	return nil
}

func validPattern(p string) error {
	if !doublestar.ValidatePattern(p) {
		return fmt.Errorf("invalid glob pattern %q", p)
	}
	return nil
}

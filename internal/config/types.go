// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

// ColorScheme selects how CLI output is colored.
type ColorScheme string

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
var ErrInvalidColorScheme = errors.New("invalid color scheme")

type (
	// Config is the extencli configuration.
	Config struct {
		// ExtensionPaths are directories scanned for installed
		// extension distribution manifests, in precedence order.
		// When empty, the default extensions directory is used.
		ExtensionPaths []string `mapstructure:"extension_paths" toml:"extension_paths"`

		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui" toml:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables verbose output by default.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`

		// ColorScheme selects the output color scheme.
		ColorScheme ColorScheme `mapstructure:"color_scheme" toml:"color_scheme"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks the configuration for values no schema can reject.
func (c *Config) Validate() error {
	switch c.UI.ColorScheme {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, c.UI.ColorScheme)
	}
	for i, path := range c.ExtensionPaths {
		if path == "" {
			return fmt.Errorf("extension_paths[%d]: path must not be empty", i)
		}
	}
	return nil
}

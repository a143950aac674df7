// Package config handles configuration loading and validation for tada.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Themes understood by the ui package.
var Themes = []string{"classic", "neon", "mono"}

// Config holds the application configuration.
type Config struct {
	Theme string   `yaml:"theme"`
	Seed  []string `yaml:"seed"` // items added to every new store, in order
	Input Input    `yaml:"input"`
	TUI   TUI      `yaml:"tui"`
}

// Input configures the text field used to add items.
type Input struct {
	Placeholder string `yaml:"placeholder"`
	CharLimit   int    `yaml:"char_limit"`
}

// TUI configures the interactive program.
type TUI struct {
	AltScreen bool `yaml:"alt_screen"`
	Mouse     bool `yaml:"mouse"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "classic",
		Seed:  []string{},
		Input: Input{
			Placeholder: "New to-do...",
			CharLimit:   200,
		},
		TUI: TUI{
			AltScreen: true,
			Mouse:     true,
		},
	}
}

// DefaultPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tada", "config.yaml")
}

// Load reads configuration from path. A missing file, or an empty path,
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
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
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	c.Theme = strings.ToLower(c.Theme)
	if c.Input.CharLimit == 0 {
		c.Input.CharLimit = defaults.Input.CharLimit
	}
	if c.Seed == nil {
		c.Seed = defaults.Seed
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("theme %q must be one of %s", c.Theme, strings.Join(Themes, ", "))
	}

	if c.Input.CharLimit < 1 {
		return fmt.Errorf("input.char_limit must be at least 1")
	}

	for i, text := range c.Seed {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("seed %d: text is empty", i)
		}
		if len([]rune(text)) > c.Input.CharLimit {
			return fmt.Errorf("seed %d: longer than input.char_limit (%d)", i, c.Input.CharLimit)
		}
	}

	return nil
}

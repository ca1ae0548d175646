// Package widget implements the announcement widget client: configuration,
// the fetcher for the public announcements endpoint, the unread badge and the
// panel engine shared by the embeddable widget and the in-product preview.
package widget

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Position is the screen corner the widget is anchored to.
type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionTopRight    Position = "top-right"
	PositionTopLeft     Position = "top-left"
)

// Theme selects the color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrUserIDRequired is returned when the configuration has no user id.
var ErrUserIDRequired = errors.New("widget: user ID is required")

// Config is the explicit configuration handed to the embeddable widget.
type Config struct {
	UserID    string   `yaml:"userId"`
	Position  Position `yaml:"position"`
	Theme     Theme    `yaml:"theme"`
	ShowBadge bool     `yaml:"showBadge"`
	AutoOpen  bool     `yaml:"autoOpen"`
	// APIURL is the origin serving /v1/widget/announcements.
	APIURL string `yaml:"apiUrl"`
}

// DefaultConfig returns the defaults applied before user values.
func DefaultConfig() Config {
	return Config{
		Position:  PositionBottomRight,
		Theme:     ThemeLight,
		ShowBadge: true,
		AutoOpen:  false,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and normalizes it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("widget: parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("widget: read config: %w", err)
	}
	return ParseConfig(data)
}

// Normalize trims values and replaces unknown positions and themes with the defaults.
func (c *Config) Normalize() {
	c.UserID = strings.TrimSpace(c.UserID)
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	switch c.Position {
	case PositionBottomRight, PositionBottomLeft, PositionTopRight, PositionTopLeft:
	default:
		c.Position = PositionBottomRight
	}
	switch c.Theme {
	case ThemeLight, ThemeDark:
	default:
		c.Theme = ThemeLight
	}
}

// Validate checks the fields the widget cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrUserIDRequired
	}
	if c.APIURL == "" {
		return errors.New("widget: apiUrl is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("widget: apiUrl must be an absolute http(s) URL: %q", c.APIURL)
	}
	return nil
}

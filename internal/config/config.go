package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pick/internal/window"
)

// Config is the parsed pick configuration.
type Config struct {
	Window Window
	Lists  []List
}

// Window holds the engine settings shared by every list.
type Window struct {
	ItemHeight    float64
	ViewportCount int // 0 derives the count from the terminal height
	Buffer        int
	MultiSelect   bool
	Match         window.MatchMode
}

// List describes one named item source. Exactly one of Path or URL is set.
type List struct {
	Name      string
	Path      string
	URL       string
	Tail      bool
	MaxItems  int
	PollEvery time.Duration
}

// Remote reports whether the list is fetched over HTTP.
func (l List) Remote() bool {
	return l.URL != ""
}

const (
	defaultConfigPath = "~/.config/pick/config.toml"
	defaultItemHeight = 1
	defaultBuffer     = window.DefaultBuffer

	// DefaultMaxItems caps how many lines a file list keeps.
	DefaultMaxItems = 100000
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Window: Window{
			ItemHeight: defaultItemHeight,
			Buffer:     defaultBuffer,
			Match:      window.MatchSubstring,
		},
	}
}

type rawConfig struct {
	Window struct {
		ItemHeight    *float64 `toml:"item_height"`
		ViewportCount int      `toml:"viewport_count"`
		Buffer        *int     `toml:"buffer"`
		MultiSelect   bool     `toml:"multi_select"`
		Match         string   `toml:"match"`
	} `toml:"window"`
	Lists []struct {
		Name        string `toml:"name"`
		Path        string `toml:"path"`
		URL         string `toml:"url"`
		Tail        bool   `toml:"tail"`
		MaxItems    int    `toml:"max_items"`
		PollSeconds int    `toml:"poll_seconds"`
	} `toml:"list"`
}

// Load locates and parses the pick config, falling back to defaults when the
// file is missing. The result has been validated.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(bytes)
}

// Parse decodes and validates a TOML document.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if raw.Window.ItemHeight != nil {
		cfg.Window.ItemHeight = *raw.Window.ItemHeight
	}
	if raw.Window.Buffer != nil {
		cfg.Window.Buffer = *raw.Window.Buffer
	}
	cfg.Window.ViewportCount = raw.Window.ViewportCount
	cfg.Window.MultiSelect = raw.Window.MultiSelect

	mode, ok := window.ParseMatchMode(raw.Window.Match)
	if !ok {
		return Config{}, fmt.Errorf("window.match: unknown mode %q", raw.Window.Match)
	}
	cfg.Window.Match = mode

	for _, l := range raw.Lists {
		list := List{
			Name:      strings.TrimSpace(l.Name),
			URL:       strings.TrimSpace(l.URL),
			Tail:      l.Tail,
			MaxItems:  l.MaxItems,
			PollEvery: time.Duration(l.PollSeconds) * time.Second,
		}
		if p := strings.TrimSpace(l.Path); p != "" {
			list.Path = mustExpand(p)
		}
		if list.MaxItems == 0 {
			list.MaxItems = DefaultMaxItems
		}
		cfg.Lists = append(cfg.Lists, list)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine or the loaders cannot work with.
func (c Config) Validate() error {
	if !(c.Window.ItemHeight > 0) {
		return fmt.Errorf("window.item_height = %v, want > 0", c.Window.ItemHeight)
	}
	if c.Window.ViewportCount < 0 {
		return fmt.Errorf("window.viewport_count = %d, want >= 0", c.Window.ViewportCount)
	}
	if c.Window.Buffer < 0 {
		return fmt.Errorf("window.buffer = %d, want >= 0", c.Window.Buffer)
	}

	seen := make(map[string]struct{}, len(c.Lists))
	for i, l := range c.Lists {
		if l.Name == "" {
			return fmt.Errorf("list %d: name is empty", i+1)
		}
		if _, dup := seen[l.Name]; dup {
			return fmt.Errorf("list %q: duplicate name", l.Name)
		}
		seen[l.Name] = struct{}{}

		switch {
		case l.Path == "" && l.URL == "":
			return fmt.Errorf("list %q: set path or url", l.Name)
		case l.Path != "" && l.URL != "":
			return fmt.Errorf("list %q: path and url are exclusive", l.Name)
		}
		if l.MaxItems < 0 {
			return fmt.Errorf("list %q: max_items = %d, want >= 0", l.Name, l.MaxItems)
		}
		if l.PollEvery < 0 {
			return fmt.Errorf("list %q: poll_seconds must not be negative", l.Name)
		}
	}
	return nil
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

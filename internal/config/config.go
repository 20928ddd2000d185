// Package config handles vista configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/henri123lemoine/vista/internal/graphic"
)

// Config represents vista configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Render  RenderConfig  `toml:"render"`
	Theme   ThemeConfig   `toml:"theme"`
	UI      UIConfig      `toml:"ui"`
	Keys    KeysConfig    `toml:"keys"`
}

// GeneralConfig contains general settings.
type GeneralConfig struct {
	// Directory of user templates (JSON or YAML). Empty disables it.
	TemplatesDir string `toml:"templates_dir"`

	// Debug log file. Empty disables logging unless --debug is given.
	DebugLog string `toml:"debug_log"`

	// Number of recently previewed templates to remember
	RecentLimit int `toml:"recent_limit"`

	// Command that edits a user template. {path} is replaced by the quoted
	// file path; without it the path is appended. Empty uses $VISUAL,
	// then $EDITOR, then vi.
	Editor string `toml:"editor"`
}

// RenderConfig contains settings for the renderer and painter.
type RenderConfig struct {
	// Paint width for `vista render`; 0 uses the terminal width
	Width int `toml:"width"`

	// Render unregistered non-primitive tags as error panels
	StrictElements bool `toml:"strict_elements"`

	// Responsive wrapper for documents that omit the flag
	Responsive bool `toml:"responsive"`
}

// ThemeConfig is a base theme applied under every document's own theme.
type ThemeConfig struct {
	ClassName string            `toml:"class_name"`
	Style     map[string]string `toml:"style"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Show the data-bag under graphic previews
	ShowData bool `toml:"show_data"`

	// Color theme: auto, dark, light, mono
	Theme string `toml:"theme"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Home   string `toml:"home"`
	End    string `toml:"end"`
	Open   string `toml:"open"`
	Filter string `toml:"filter"`
	Data   string `toml:"data"`
	Source string `toml:"source"`
	Copy   string `toml:"copy"`
	Edit   string `toml:"edit"`
	Back   string `toml:"back"`
	Help   string `toml:"help"`
	Quit   string `toml:"quit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			TemplatesDir: defaultTemplatesDir(),
			DebugLog:     "",
			RecentLimit:  10,
		},
		Render: RenderConfig{
			Width:          0,
			StrictElements: false,
			Responsive:     true,
		},
		Theme: ThemeConfig{
			ClassName: "",
			Style:     map[string]string{},
		},
		UI: UIConfig{
			ShowData: false,
			Theme:    "auto",
		},
		Keys: KeysConfig{
			Up:     "up,k",
			Down:   "down,j",
			Home:   "home,g",
			End:    "end,G",
			Open:   "enter",
			Filter: "/",
			Data:   "tab",
			Source: "s",
			Copy:   "y",
			Edit:   "e",
			Back:   "esc",
			Help:   "?",
			Quit:   "q,ctrl+c",
		},
	}
}

// BaseTheme returns the configured theme as a document theme.
func (c *Config) BaseTheme() graphic.Theme {
	t := graphic.Theme{ClassName: strings.TrimSpace(c.Theme.ClassName)}
	if len(c.Theme.Style) > 0 {
		t.Style = make(map[string]string, len(c.Theme.Style))
		for k, v := range c.Theme.Style {
			t.Style[k] = v
		}
	}
	return t
}

// configDir returns the vista config directory.
// Uses ~/.config/vista (XDG style) on all Unix systems.
func configDir() string {
	// Respect XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "vista")
	}
	// Default to ~/.config on Unix (including macOS)
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, ".config", "vista")
	}
	// Fallback to os.UserConfigDir() for Windows
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "vista")
	}
	return filepath.Join(dir, "vista")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func defaultTemplatesDir() string {
	return filepath.Join(configDir(), "templates")
}

// IsFirstRun returns true if no config file exists.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigPath())
	return os.IsNotExist(err)
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// go-toml/v2 only overwrites fields present in the file, so unspecified
	// fields (booleans included) keep their defaults.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.General.TemplatesDir = expandHome(cfg.General.TemplatesDir)
	cfg.General.DebugLog = expandHome(cfg.General.DebugLog)
	return cfg, nil
}

// Save saves configuration to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CreateDefaultConfigFile writes a commented default config to path.
func CreateDefaultConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(generateDefaultConfigContent()), 0644)
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# vista configuration\n\n")

	b.WriteString("[general]\n")
	b.WriteString("# Directory of user templates (*.json, *.yaml, *.yml)\n")
	b.WriteString("# A template named like a built-in one replaces it.\n")
	fmt.Fprintf(&b, "templates_dir = %q\n", cfg.General.TemplatesDir)
	b.WriteString("# Debug log file (same as --debug)\n")
	b.WriteString("# debug_log = \"/tmp/vista.log\"\n")
	b.WriteString("# Number of recently previewed templates to remember\n")
	fmt.Fprintf(&b, "recent_limit = %d\n", cfg.General.RecentLimit)
	b.WriteString("# Command used to edit user templates ({path} = template file)\n")
	b.WriteString("# Defaults to $VISUAL, then $EDITOR, then vi.\n")
	b.WriteString("# editor = \"code --wait {path}\"\n\n")

	b.WriteString("[render]\n")
	b.WriteString("# Paint width for `vista render` (0 = terminal width)\n")
	fmt.Fprintf(&b, "width = %d\n", cfg.Render.Width)
	b.WriteString("# Show an error panel for tags that are neither primitives nor widgets\n")
	fmt.Fprintf(&b, "strict_elements = %v\n", cfg.Render.StrictElements)
	b.WriteString("# Responsive wrapper for documents without a `responsive` flag\n")
	fmt.Fprintf(&b, "responsive = %v\n\n", cfg.Render.Responsive)

	b.WriteString("[theme]\n")
	b.WriteString("# Base theme merged under every document theme\n")
	b.WriteString("# class_name = \"muted\"\n")
	b.WriteString("# [theme.style]\n")
	b.WriteString("# color = \"6\"\n\n")

	b.WriteString("[ui]\n")
	b.WriteString("# Show the data-bag under graphic previews\n")
	fmt.Fprintf(&b, "show_data = %v\n", cfg.UI.ShowData)
	b.WriteString("# Color theme: \"auto\", \"dark\", \"light\", or \"mono\"\n")
	fmt.Fprintf(&b, "theme = %q\n\n", cfg.UI.Theme)

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# up = %q\n", cfg.Keys.Up)
	fmt.Fprintf(&b, "# down = %q\n", cfg.Keys.Down)
	fmt.Fprintf(&b, "# open = %q\n", cfg.Keys.Open)
	fmt.Fprintf(&b, "# filter = %q\n", cfg.Keys.Filter)
	fmt.Fprintf(&b, "# data = %q\n", cfg.Keys.Data)
	fmt.Fprintf(&b, "# source = %q\n", cfg.Keys.Source)
	fmt.Fprintf(&b, "# copy = %q\n", cfg.Keys.Copy)
	fmt.Fprintf(&b, "# edit = %q\n", cfg.Keys.Edit)
	fmt.Fprintf(&b, "# back = %q\n", cfg.Keys.Back)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n", cfg.Keys.Quit)

	return b.String()
}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.General.RecentLimit < 0 {
		warnings = append(warnings, fmt.Sprintf("Invalid value for general.recent_limit: %d (expected 0 or more)", c.General.RecentLimit))
	}

	if c.Render.Width < 0 {
		warnings = append(warnings, fmt.Sprintf("Invalid value for render.width: %d (expected 0 or more)", c.Render.Width))
	}

	if c.UI.Theme != "" &&
		c.UI.Theme != "auto" &&
		c.UI.Theme != "dark" &&
		c.UI.Theme != "light" &&
		c.UI.Theme != "mono" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for ui.theme: %s (expected auto, dark, light, or mono)", c.UI.Theme))
	}

	keys := make([]string, 0, len(c.Theme.Style))
	for k := range c.Theme.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			warnings = append(warnings, "Empty key in theme.style")
			continue
		}
		if strings.TrimSpace(c.Theme.Style[k]) == "" {
			warnings = append(warnings, fmt.Sprintf("Empty value for theme.style.%s", k))
		}
	}

	if dir := c.General.TemplatesDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			warnings = append(warnings, fmt.Sprintf("general.templates_dir is not a directory: %s", dir))
		}
	}

	return warnings
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"github.com/henri123lemoine/vista/internal/graphic"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.General.RecentLimit != 10 {
		t.Errorf("Expected recent limit 10, got %d", cfg.General.RecentLimit)
	}

	if !cfg.Render.Responsive {
		t.Error("Expected Responsive to be true")
	}

	if cfg.Render.StrictElements {
		t.Error("Expected StrictElements to be false")
	}

	if cfg.UI.Theme != "auto" {
		t.Errorf("Expected theme 'auto', got %q", cfg.UI.Theme)
	}

	if filepath.Base(cfg.General.TemplatesDir) != "templates" {
		t.Errorf("Expected templates dir under the config dir, got %q", cfg.General.TemplatesDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		wantWarning bool
	}{
		{
			name:        "default config is valid",
			config:      DefaultConfig(),
			wantWarning: false,
		},
		{
			name: "negative recent limit",
			config: &Config{
				General: GeneralConfig{RecentLimit: -1},
			},
			wantWarning: true,
		},
		{
			name: "negative width",
			config: &Config{
				Render: RenderConfig{Width: -20},
			},
			wantWarning: true,
		},
		{
			name: "invalid theme",
			config: &Config{
				UI: UIConfig{Theme: "invalid"},
			},
			wantWarning: true,
		},
		{
			name: "mono theme",
			config: &Config{
				UI: UIConfig{Theme: "mono"},
			},
			wantWarning: false,
		},
		{
			name: "empty style value",
			config: &Config{
				Theme: ThemeConfig{Style: map[string]string{"color": " "}},
			},
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.Validate()
			hasWarnings := len(warnings) > 0
			if hasWarnings != tt.wantWarning {
				t.Errorf("Validate() hasWarnings = %v, want %v. Warnings: %v", hasWarnings, tt.wantWarning, warnings)
			}
		})
	}
}

func TestValidateTemplatesDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.General.TemplatesDir = file
	if warnings := cfg.Validate(); len(warnings) != 1 {
		t.Errorf("expected one warning, got %v", warnings)
	}
}

func TestLoadPreservesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Only specify some values - others should keep defaults
	tomlContent := `[render]
strict_elements = true

[theme]
class_name = "muted"

[theme.style]
color = "6"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if !cfg.Render.StrictElements {
		t.Error("Expected strict_elements to be loaded")
	}

	want := graphic.Theme{ClassName: "muted", Style: map[string]string{"color": "6"}}
	if diff := cmp.Diff(want, cfg.BaseTheme()); diff != "" {
		t.Errorf("BaseTheme() diff (-want +got):\n%s", diff)
	}

	// Boolean defaults survive when not specified
	if !cfg.Render.Responsive {
		t.Error("Expected Responsive to remain true (default) when not specified in config")
	}

	if cfg.General.RecentLimit != 10 {
		t.Errorf("Expected default recent limit, got %d", cfg.General.RecentLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render\nwidth = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general]\ntemplates_dir = \"~/vista-templates\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if want := filepath.Join(home, "vista-templates"); cfg.General.TemplatesDir != want {
		t.Errorf("templates_dir = %q, want %q", cfg.General.TemplatesDir, want)
	}
}

func TestDefaultConfigContentParses(t *testing.T) {
	content := generateDefaultConfigContent()
	for _, section := range []string{"[general]", "[render]", "[theme]", "[ui]", "[keys]"} {
		if !strings.Contains(content, section) {
			t.Errorf("default config missing %s", section)
		}
	}

	var cfg Config
	if err := toml.Unmarshal([]byte(content), &cfg); err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Expected theme 'auto', got %q", cfg.UI.Theme)
	}
}

func TestSaveAndCreateDefault(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "nested", "config.toml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("CreateDefaultConfigFile() error: %v", err)
	}
	if _, err := LoadFromPath(path); err != nil {
		t.Fatalf("created config does not load: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Render.Width = 72
	saved := filepath.Join(dir, "saved.toml")
	if err := Save(cfg, saved); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	loaded, err := LoadFromPath(saved)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if loaded.Render.Width != 72 {
		t.Errorf("Expected width 72, got %d", loaded.Render.Width)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigPath(); got != filepath.Join("/tmp/xdg", "vista", "config.toml") {
		t.Errorf("ConfigPath() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path := ConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected config.toml, got %q", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "vista" {
		t.Errorf("Expected vista dir, got %q", filepath.Dir(path))
	}
}

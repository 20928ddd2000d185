package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/henri123lemoine/vista/internal/debug"
	"github.com/henri123lemoine/vista/internal/graphic"
)

// Kind says which renderer a template feeds.
type Kind string

const (
	KindGraphic Kind = "graphic"
	KindCard    Kind = "card"
)

// Format is the encoding of a template file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultCategory is used when a template does not name one.
const DefaultCategory = "General"

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported template format")

// Template is one entry of the showcase.
type Template struct {
	Name        string
	Title       string
	Description string
	Category    string
	Kind        Kind
	Format      Format
	Path        string // empty for built-ins
	Builtin     bool
	Source      []byte

	Graphic *graphic.Graphic
	Card    graphic.Card
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Parse decodes a template document. name is used when the document does
// not carry its own.
func Parse(name string, data []byte, format Format) (Template, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return Template{}, fmt.Errorf("template %s: %w", name, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Template{}, fmt.Errorf("template %s: %w", name, err)
		}
	default:
		return Template{}, fmt.Errorf("template %s: %w", name, ErrUnsupportedFormat)
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return Template{}, fmt.Errorf("template %s: expected an object at the top level", name)
	}

	t := Template{
		Name:        stringField(doc, "name", name),
		Description: stringField(doc, "description", ""),
		Category:    stringField(doc, "category", DefaultCategory),
		Format:      format,
		Source:      data,
	}
	t.Title = stringField(doc, "title", t.Name)

	g, hasGraphic := doc["graphic"]
	c, hasCard := doc["card"]
	switch {
	case hasGraphic && hasCard:
		return Template{}, fmt.Errorf("template %s: graphic and card are mutually exclusive", t.Name)
	case hasGraphic:
		t.Kind = KindGraphic
		decoded, err := graphic.DecodeGraphic(g)
		if err != nil {
			return Template{}, fmt.Errorf("template %s: %w", t.Name, err)
		}
		t.Graphic = decoded
	case hasCard:
		t.Kind = KindCard
		decoded, err := graphic.DecodeCard(c)
		if err != nil {
			return Template{}, fmt.Errorf("template %s: %w", t.Name, err)
		}
		t.Card = decoded
	default:
		return Template{}, fmt.Errorf("template %s: missing graphic or card", t.Name)
	}

	return t, nil
}

// LoadFile reads and parses one template file.
func LoadFile(path string) (Template, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Template{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read template: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := Parse(name, data, format)
	if err != nil {
		return Template{}, err
	}
	t.Path = path
	return t, nil
}

// LoadDir loads every template file directly inside dir. Files that fail to
// parse are reported in the returned warnings and skipped. A missing
// directory yields no templates and no warnings.
func LoadDir(dir string) ([]Template, []error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("read template dir: %w", err)}
	}

	var templates []Template
	var warnings []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := FormatFromPath(path); err != nil {
			continue
		}
		t, err := LoadFile(path)
		if err != nil {
			debug.Log("skipping template %s: %v", path, err)
			warnings = append(warnings, err)
			continue
		}
		templates = append(templates, t)
	}
	return templates, warnings
}

// Load returns the built-in templates merged with those found in dir.
// A user template replaces a built-in one with the same name.
func Load(dir string) ([]Template, []error) {
	defer debug.Timed("catalog.Load")()

	builtin, err := Builtin()
	var warnings []error
	if err != nil {
		warnings = append(warnings, err)
	}
	user, userWarnings := LoadDir(dir)
	warnings = append(warnings, userWarnings...)

	byName := make(map[string]int, len(builtin)+len(user))
	var all []Template
	for _, t := range append(builtin, user...) {
		if i, ok := byName[t.Name]; ok {
			debug.Log("template %s overrides %s", t.Path, t.Name)
			all[i] = t
			continue
		}
		byName[t.Name] = len(all)
		all = append(all, t)
	}

	Sort(all)
	debug.Log("loaded %d templates (%d built-in, %d user)", len(all), len(builtin), len(user))
	return all, warnings
}

// Sort orders templates by category, then title.
func Sort(templates []Template) {
	sort.SliceStable(templates, func(i, j int) bool {
		a, b := templates[i], templates[j]
		if ca, cb := strings.ToLower(a.Category), strings.ToLower(b.Category); ca != cb {
			return ca < cb
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

// Find returns the template named name.
func Find(templates []Template, name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

func stringField(doc map[string]any, key, def string) string {
	if s, ok := doc[key].(string); ok && s != "" {
		return s
	}
	return def
}

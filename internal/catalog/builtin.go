package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates
var builtinFS embed.FS

// Builtin returns the templates bundled with the binary.
func Builtin() ([]Template, error) {
	entries, err := fs.ReadDir(builtinFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read built-in templates: %w", err)
	}

	var templates []Template
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file := path.Join("templates", entry.Name())
		format, err := FormatFromPath(file)
		if err != nil {
			continue
		}
		data, err := builtinFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read built-in template %s: %w", file, err)
		}
		t, err := Parse(strings.TrimSuffix(entry.Name(), path.Ext(file)), data, format)
		if err != nil {
			return nil, fmt.Errorf("built-in %w", err)
		}
		t.Builtin = true
		templates = append(templates, t)
	}
	Sort(templates)
	return templates, nil
}

// Package interp resolves {{dot.path}} placeholders against a data-bag.
package interp

import (
	"regexp"
	"strings"

	"github.com/henri123lemoine/vista/internal/graphic"
)

// Marker opens every placeholder.
const Marker = "{{"

var placeholderRe = regexp.MustCompile(`\{\{([\w.]+)\}\}`)

// Resolve replaces every {{path}} in text with the display form of the value
// found at path in data. Placeholders whose path is undefined are left as
// they are.
func Resolve(text string, data graphic.Data) string {
	if text == "" {
		return ""
	}
	if !HasPlaceholder(text) {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		path := match[2 : len(match)-2]
		v, ok := Lookup(path, data)
		if !ok {
			return match
		}
		return v.Display()
	})
}

// Lookup walks data along a dot-separated path. The second result is false
// as soon as any segment is undefined.
func Lookup(path string, data graphic.Data) (graphic.Value, bool) {
	segments := strings.Split(path, ".")
	current, ok := data[segments[0]]
	if !ok {
		return graphic.Value{}, false
	}
	for _, seg := range segments[1:] {
		current, ok = current.Field(seg)
		if !ok {
			return graphic.Value{}, false
		}
	}
	return current, true
}

// HasPlaceholder reports whether s contains a placeholder marker.
func HasPlaceholder(s string) bool {
	return strings.Contains(s, Marker)
}

// ProcessProps returns a fresh props map in which string values carrying a
// placeholder marker are resolved. Other values are passed through as is;
// nested maps and lists are not visited.
func ProcessProps(props graphic.Props, data graphic.Data) graphic.Props {
	out := make(graphic.Props, len(props))
	for k, v := range props {
		if s, ok := v.Str(); ok && HasPlaceholder(s) {
			out[k] = graphic.String(Resolve(s, data))
			continue
		}
		out[k] = v
	}
	return out
}

// Placeholders returns the paths of every placeholder in text, in order.
func Placeholders(text string) []string {
	matches := placeholderRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m[1]
	}
	return paths
}

// Unresolved returns the placeholder paths in text that data cannot satisfy.
func Unresolved(text string, data graphic.Data) []string {
	var missing []string
	for _, p := range Placeholders(text) {
		if _, ok := Lookup(p, data); !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

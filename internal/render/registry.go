package render

import (
	"sort"

	"github.com/henri123lemoine/vista/internal/debug"
	"github.com/henri123lemoine/vista/internal/graphic"
	"github.com/henri123lemoine/vista/internal/view"
)

// WidgetRenderer draws a composite widget. The walker never descends into a
// widget's children; the renderer owns its whole subtree.
type WidgetRenderer interface {
	Render(data graphic.Data, props graphic.Props, class string, style map[string]string) *view.Node
}

// WidgetFunc adapts a plain function to WidgetRenderer.
type WidgetFunc func(data graphic.Data, props graphic.Props, class string, style map[string]string) *view.Node

// Render calls f.
func (f WidgetFunc) Render(data graphic.Data, props graphic.Props, class string, style map[string]string) *view.Node {
	return f(data, props, class, style)
}

// Registered widget tags.
const (
	TrendChartTag  = "TrendChart"
	MetricBadgeTag = "MetricBadge"
)

// Registry maps element tags to composite widgets.
type Registry map[string]WidgetRenderer

// NewRegistry returns an empty registry.
func NewRegistry() Registry {
	return make(Registry)
}

// DefaultRegistry returns a registry holding the built-in widgets.
func DefaultRegistry() Registry {
	r := NewRegistry()
	r.Register(TrendChartTag, TrendChartWidget{})
	r.Register(MetricBadgeTag, MetricBadgeWidget{})
	return r
}

// Register links a tag to a widget. Empty tags and nil widgets are ignored.
func (r Registry) Register(tag string, w WidgetRenderer) {
	if tag == "" || w == nil {
		debug.Log("registry: ignoring invalid widget registration for %q", tag)
		return
	}
	if _, exists := r[tag]; exists {
		debug.Log("registry: overwriting widget %q", tag)
	}
	r[tag] = w
}

// Lookup returns the widget registered for tag.
func (r Registry) Lookup(tag string) (WidgetRenderer, bool) {
	if r == nil {
		return nil, false
	}
	w, ok := r[tag]
	return w, ok
}

// Names returns the registered tags in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

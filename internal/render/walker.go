package render

import (
	"fmt"
	"strings"

	"github.com/henri123lemoine/vista/internal/debug"
	"github.com/henri123lemoine/vista/internal/graphic"
	"github.com/henri123lemoine/vista/internal/interp"
	"github.com/henri123lemoine/vista/internal/view"
)

// Renderer walks element trees into visual trees.
// A Renderer holds no per-render state and may be shared.
type Renderer struct {
	Registry Registry

	// StrictElements renders an "unknown element" panel for tags that are
	// neither registered widgets nor native primitives, instead of passing
	// them through as primitives.
	StrictElements bool
}

// NewRenderer returns a renderer using reg.
func NewRenderer(reg Registry) *Renderer {
	return &Renderer{Registry: reg}
}

// RenderElement produces the visual subtree for el.
func (r *Renderer) RenderElement(el *graphic.Element, data graphic.Data, theme graphic.Theme) *view.Node {
	if el == nil {
		return view.El("div")
	}

	props := interp.ProcessProps(el.Props, data)

	if w, ok := r.Registry.Lookup(el.Tag); ok {
		return renderWidget(el.Tag, w, data, props, el.ClassName, el.Style)
	}

	tag := el.Tag
	if tag == "" {
		tag = "div"
	}
	if r.StrictElements && !view.IsPrimitive(tag) {
		return ErrorPanel(fmt.Sprintf("Unknown element: %s", tag))
	}

	node := &view.Node{
		Tag:   tag,
		Class: JoinClasses(el.ClassName, theme.ClassName),
		Style: MergeStyles(el.Style, theme.Style),
	}
	if len(props) > 0 {
		node.Props = props
	}

	if el.Content != "" {
		node.Children = []*view.Node{view.Text(interp.Resolve(el.Content, data))}
		return node
	}

	if len(el.Children) > 0 {
		node.Children = make([]*view.Node, 0, len(el.Children))
	}
	for _, c := range el.Children {
		if c.IsText() {
			node.Children = append(node.Children, view.Text(interp.Resolve(c.Text, data)))
			continue
		}
		node.Children = append(node.Children, r.RenderElement(c.Element, data, theme))
	}
	return node
}

// renderWidget contains a misbehaving widget to its own subtree.
func renderWidget(tag string, w WidgetRenderer, data graphic.Data, props graphic.Props, class string, style map[string]string) (node *view.Node) {
	defer func() {
		if rec := recover(); rec != nil {
			debug.Log("widget %s panicked: %v", tag, rec)
			node = ErrorPanel(fmt.Sprintf("Widget %s failed: %v", tag, rec))
		}
	}()
	node = w.Render(data, props, class, style)
	if node == nil {
		node = view.El("div")
	}
	return node
}

// JoinClasses joins non-empty class strings with single spaces.
func JoinClasses(classes ...string) string {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// MergeStyles layers override on top of base into a fresh map.
// Nil is returned when both are empty.
func MergeStyles(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

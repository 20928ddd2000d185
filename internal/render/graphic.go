package render

import (
	"github.com/henri123lemoine/vista/internal/graphic"
	"github.com/henri123lemoine/vista/internal/view"
)

// ResponsiveClass is applied to the outer wrapper of responsive graphics.
const ResponsiveClass = "w-full max-w-full"

// InvalidGraphicMessage is shown when a document fails validation.
const InvalidGraphicMessage = "Invalid graphic structure"

type options struct {
	fallback *view.Node
	registry Registry
	strict   bool
	theme    graphic.Theme

	responsiveDefault *bool
}

// Option configures RenderGraphic.
type Option func(*options)

// WithFallback replaces the standard invalid-structure panel.
func WithFallback(n *view.Node) Option {
	return func(o *options) { o.fallback = n }
}

// WithRegistry replaces the default widget registry.
func WithRegistry(r Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithStrictElements enables the unknown-element panel.
func WithStrictElements(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithTheme sets a base theme; the document's own theme is layered on top.
func WithTheme(t graphic.Theme) Option {
	return func(o *options) { o.theme = t }
}

// WithResponsiveDefault decides the wrapper for documents that leave
// responsive unset. Without it they are responsive.
func WithResponsiveDefault(responsive bool) Option {
	return func(o *options) { o.responsiveDefault = &responsive }
}

// RenderGraphic validates g and renders its layout inside a sizing wrapper.
// A nil graphic or an empty layout yields the fallback.
func RenderGraphic(g *graphic.Graphic, opts ...Option) *view.Node {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	if g == nil || g.Layout.IsZero() {
		if o.fallback != nil {
			return o.fallback
		}
		return ErrorPanel(InvalidGraphicMessage)
	}

	r := &Renderer{Registry: o.registry, StrictElements: o.strict}
	root := r.RenderElement(g.Layout, g.Data, o.theme.Merge(g.Theme))

	wrapper := view.El("div", root)
	responsive := g.IsResponsive()
	if g.Responsive == nil && o.responsiveDefault != nil {
		responsive = *o.responsiveDefault
	}
	if responsive {
		wrapper.Class = ResponsiveClass
	}
	return wrapper
}

// ErrorPanel builds the standard error panel.
func ErrorPanel(message string) *view.Node {
	return view.El("div",
		view.El("strong", view.Text("⚠ ")),
		view.El("span", view.Text(message)),
	).WithClass("error-panel")
}

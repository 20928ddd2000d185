package catalog

import (
	"github.com/henri123lemoine/vista/internal/cards"
	"github.com/henri123lemoine/vista/internal/render"
	"github.com/henri123lemoine/vista/internal/view"
)

// Render produces the visual tree of a template. Graphics go through the
// document validator with opts; cards through the card dispatcher.
func (t Template) Render(opts ...render.Option) *view.Node {
	if t.Kind == KindCard {
		return cards.Render(t.Card, nil)
	}
	return render.RenderGraphic(t.Graphic, opts...)
}

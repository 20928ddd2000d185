package catalog

import (
	"fmt"
	"sort"

	"github.com/henri123lemoine/vista/internal/graphic"
	"github.com/henri123lemoine/vista/internal/interp"
	"github.com/henri123lemoine/vista/internal/render"
	"github.com/henri123lemoine/vista/internal/view"
)

// Problem is one lint finding, located by its path in the document.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// Lint reports what would render as a fallback or keep a literal
// placeholder: invalid documents, tags that are neither primitives nor
// registered widgets, placeholders the data-bag cannot resolve, and cards
// with an unknown type.
func Lint(t Template, reg render.Registry) []Problem {
	switch t.Kind {
	case KindCard:
		return lintCard(t.Card)
	default:
		return lintGraphic(t.Graphic, reg)
	}
}

func lintCard(c graphic.Card) []Problem {
	if c == nil {
		return []Problem{{Path: "card", Message: "missing card"}}
	}
	switch c := c.(type) {
	case graphic.UnknownCard:
		if c.Type == "" {
			return []Problem{{Path: "card.type", Message: "missing type"}}
		}
		return []Problem{{Path: "card.type", Message: fmt.Sprintf("unknown graphic type %q", c.Type)}}
	}
	return nil
}

func lintGraphic(g *graphic.Graphic, reg render.Registry) []Problem {
	if g == nil || g.Layout.IsZero() {
		return []Problem{{Path: "graphic", Message: "missing layout"}}
	}
	var problems []Problem
	lintElement(g.Layout, g.Data, reg, "layout", &problems)
	return problems
}

func lintElement(el *graphic.Element, data graphic.Data, reg render.Registry, path string, out *[]Problem) {
	if el == nil {
		return
	}
	widget := false
	if el.Tag != "" && !view.IsPrimitive(el.Tag) {
		_, widget = reg.Lookup(el.Tag)
		if !widget {
			*out = append(*out, Problem{Path: path, Message: fmt.Sprintf("unknown element %q", el.Tag)})
		}
	}

	keys := make([]string, 0, len(el.Props))
	for k := range el.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := el.Props[k].Str(); ok {
			lintText(s, data, path+".props."+k, out)
		}
	}

	// Widgets draw from their props alone; content and children never render.
	if widget {
		return
	}
	if el.Content != "" {
		lintText(el.Content, data, path+".content", out)
		return
	}
	for i, c := range el.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if c.IsText() {
			lintText(c.Text, data, childPath, out)
			continue
		}
		lintElement(c.Element, data, reg, childPath, out)
	}
}

func lintText(text string, data graphic.Data, path string, out *[]Problem) {
	for _, p := range interp.Unresolved(text, data) {
		*out = append(*out, Problem{Path: path, Message: fmt.Sprintf("unresolved placeholder {{%s}}", p)})
	}
}

package graphic

// Data is the read-only data-bag a template is rendered against.
type Data map[string]Value

// Props holds an element's props.
type Props map[string]Value

// Element is one node of a declarative UI tree.
type Element struct {
	// Tag is a native primitive name or a registered widget name.
	Tag       string
	Props     Props
	Children  []Child
	Style     map[string]string
	ClassName string
	// Content, when non-empty, replaces Children as the node's payload.
	Content string
}

// Child is either a text leaf or a nested element.
type Child struct {
	Text    string
	Element *Element
}

// TextChild returns a text leaf.
func TextChild(s string) Child { return Child{Text: s} }

// ElementChild returns an element child.
func ElementChild(el *Element) Child { return Child{Element: el} }

// IsText reports whether c is a text leaf.
func (c Child) IsText() bool { return c.Element == nil }

// IsZero reports whether the element carries nothing at all.
func (e *Element) IsZero() bool {
	if e == nil {
		return true
	}
	return e.Tag == "" &&
		len(e.Props) == 0 &&
		len(e.Children) == 0 &&
		len(e.Style) == 0 &&
		e.ClassName == "" &&
		e.Content == ""
}

// Walk visits e and every descendant element depth-first.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		if c.Element != nil {
			c.Element.Walk(fn)
		}
	}
}

// Theme holds overrides applied to every native node of a tree.
type Theme struct {
	ClassName string
	Style     map[string]string
}

// IsZero reports whether the theme overrides nothing.
func (t Theme) IsZero() bool {
	return t.ClassName == "" && len(t.Style) == 0
}

// Merge returns a theme with o layered on top of t.
func (t Theme) Merge(o Theme) Theme {
	out := Theme{ClassName: t.ClassName}
	if o.ClassName != "" {
		if out.ClassName != "" {
			out.ClassName += " " + o.ClassName
		} else {
			out.ClassName = o.ClassName
		}
	}
	if len(t.Style) > 0 || len(o.Style) > 0 {
		out.Style = make(map[string]string, len(t.Style)+len(o.Style))
		for k, v := range t.Style {
			out.Style[k] = v
		}
		for k, v := range o.Style {
			out.Style[k] = v
		}
	}
	return out
}

// Graphic is a complete declarative document.
type Graphic struct {
	ID     string
	Layout *Element
	Data   Data
	Theme  Theme
	// Responsive controls the outer wrapper's sizing. Nil means true.
	Responsive *bool
}

// IsResponsive reports the effective responsive flag.
func (g *Graphic) IsResponsive() bool {
	if g == nil || g.Responsive == nil {
		return true
	}
	return *g.Responsive
}

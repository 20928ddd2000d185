package graphic

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeElement converts a generic decoded value into an Element.
func DecodeElement(x any) (*Element, error) {
	return decodeElement(x, "element")
}

func decodeElement(x any, path string) (*Element, error) {
	if x == nil {
		return nil, nil
	}
	raw, ok := asMap(x)
	if !ok {
		return nil, fmt.Errorf("%s: expected object, got %T", path, x)
	}

	el := &Element{}
	var err error
	if el.Tag, err = optString(raw, "element", path); err != nil {
		return nil, err
	}
	if el.ClassName, err = optString(raw, "className", path); err != nil {
		return nil, err
	}
	if el.Content, err = optString(raw, "content", path); err != nil {
		return nil, err
	}

	if p, ok := raw["props"]; ok && p != nil {
		pm, ok := asMap(p)
		if !ok {
			return nil, fmt.Errorf("%s.props: expected object, got %T", path, p)
		}
		el.Props = make(Props, len(pm))
		for k, e := range pm {
			v, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("%s.props.%s: %w", path, k, err)
			}
			el.Props[k] = v
		}
	}

	if s, ok := raw["style"]; ok && s != nil {
		if el.Style, err = decodeStyle(s, path+".style"); err != nil {
			return nil, err
		}
	}

	if c, ok := raw["children"]; ok && c != nil {
		list, ok := c.([]any)
		if !ok {
			return nil, fmt.Errorf("%s.children: expected array, got %T", path, c)
		}
		el.Children = make([]Child, 0, len(list))
		for i, item := range list {
			childPath := fmt.Sprintf("%s.children[%d]", path, i)
			switch t := item.(type) {
			case string:
				el.Children = append(el.Children, TextChild(t))
			case nil:
				// null children render nothing
			default:
				if _, isMap := asMap(t); !isMap {
					// numbers and bools render as their text form
					v, err := FromAny(t)
					if err != nil {
						return nil, fmt.Errorf("%s: %w", childPath, err)
					}
					el.Children = append(el.Children, TextChild(v.Display()))
					continue
				}
				child, err := decodeElement(t, childPath)
				if err != nil {
					return nil, err
				}
				el.Children = append(el.Children, ElementChild(child))
			}
		}
	}

	return el, nil
}

func decodeStyle(x any, path string) (map[string]string, error) {
	m, ok := asMap(x)
	if !ok {
		return nil, fmt.Errorf("%s: expected object, got %T", path, x)
	}
	out := make(map[string]string, len(m))
	for k, e := range m {
		v, err := FromAny(e)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path, k, err)
		}
		switch v.Kind() {
		case KindMap, KindList:
			return nil, fmt.Errorf("%s.%s: expected scalar, got %s", path, k, v.Kind())
		case KindNull:
			continue
		}
		out[k] = v.Display()
	}
	return out, nil
}

// DecodeTheme converts a theme object. Keys other than className and style
// are taken as style entries.
func DecodeTheme(x any) (Theme, error) {
	return decodeTheme(x, "theme")
}

func decodeTheme(x any, path string) (Theme, error) {
	var t Theme
	if x == nil {
		return t, nil
	}
	m, ok := asMap(x)
	if !ok {
		return t, fmt.Errorf("%s: expected object, got %T", path, x)
	}
	flat := make(map[string]any)
	for k, e := range m {
		switch k {
		case "className":
			s, ok := e.(string)
			if !ok && e != nil {
				return t, fmt.Errorf("%s.className: expected string, got %T", path, e)
			}
			t.ClassName = s
		case "style":
			if e == nil {
				continue
			}
			style, err := decodeStyle(e, path+".style")
			if err != nil {
				return t, err
			}
			if t.Style == nil {
				t.Style = make(map[string]string)
			}
			for sk, sv := range style {
				t.Style[sk] = sv
			}
		default:
			flat[k] = e
		}
	}
	if len(flat) > 0 {
		style, err := decodeStyle(flat, path)
		if err != nil {
			return t, err
		}
		if t.Style == nil {
			t.Style = make(map[string]string, len(style))
		}
		for sk, sv := range style {
			// structured style entries win over flat ones
			if _, ok := t.Style[sk]; !ok {
				t.Style[sk] = sv
			}
		}
	}
	return t, nil
}

// DecodeGraphic converts a generic decoded value into a Graphic.
// A nil input yields a nil graphic and no error.
func DecodeGraphic(x any) (*Graphic, error) {
	if x == nil {
		return nil, nil
	}
	raw, ok := asMap(x)
	if !ok {
		return nil, fmt.Errorf("graphic: expected object, got %T", x)
	}

	g := &Graphic{}
	if id, ok := raw["id"]; ok && id != nil {
		v, err := FromAny(id)
		if err != nil {
			return nil, fmt.Errorf("graphic.id: %w", err)
		}
		g.ID = v.Display()
	}

	layout, err := decodeElement(raw["layout"], "layout")
	if err != nil {
		return nil, err
	}
	g.Layout = layout

	if d, ok := raw["data"]; ok && d != nil {
		dm, ok := asMap(d)
		if !ok {
			return nil, fmt.Errorf("data: expected object, got %T", d)
		}
		g.Data = make(Data, len(dm))
		for k, e := range dm {
			v, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("data.%s: %w", k, err)
			}
			g.Data[k] = v
		}
	}

	if g.Theme, err = decodeTheme(raw["theme"], "theme"); err != nil {
		return nil, err
	}

	if r, ok := raw["responsive"]; ok && r != nil {
		b, ok := r.(bool)
		if !ok {
			return nil, fmt.Errorf("responsive: expected bool, got %T", r)
		}
		g.Responsive = &b
	}

	return g, nil
}

// DecodeCard converts a generic decoded value into a Card. Unrecognized or
// missing discriminators produce an UnknownCard rather than an error.
func DecodeCard(x any) (Card, error) {
	if x == nil {
		return nil, nil
	}
	raw, ok := asMap(x)
	if !ok {
		return nil, fmt.Errorf("card: expected object, got %T", x)
	}
	typ, _ := raw["type"].(string)

	switch typ {
	case TypePerformanceCard:
		c := PerformanceCard{
			Title:       scalarString(raw["title"]),
			Description: scalarString(raw["description"]),
		}
		if m, ok := asMap(raw["metric"]); ok {
			c.Metric = Metric{
				Value: scalarString(m["value"]),
				Label: scalarString(m["label"]),
				Unit:  scalarString(m["unit"]),
			}
			if ch, ok := scalarFloat(m["change"]); ok {
				c.Metric.Change = &ch
			}
		}
		series, err := decodeSeries(firstOf(raw, "series", "chartData"), "card.series")
		if err != nil {
			return nil, err
		}
		c.Series = series
		return c, nil

	case TypeStatCard:
		return StatCard{
			Title:    scalarString(raw["title"]),
			Value:    scalarString(raw["value"]),
			Subtitle: scalarString(raw["subtitle"]),
			Icon:     scalarString(raw["icon"]),
			Color:    scalarString(raw["color"]),
		}, nil

	case TypeChartCard:
		c := ChartCard{Title: scalarString(raw["title"])}
		if m, ok := asMap(raw["chart"]); ok {
			c.Chart.Kind = scalarString(firstOf(m, "kind", "type"))
			c.Chart.Unit = scalarString(m["unit"])
			series, err := decodeSeries(firstOf(m, "series", "data"), "card.chart.series")
			if err != nil {
				return nil, err
			}
			c.Chart.Series = series
		}
		if c.Chart.Kind == "" {
			c.Chart.Kind = ChartBar
		}
		return c, nil
	}

	return UnknownCard{Type: typ}, nil
}

func decodeSeries(x any, path string) ([]Point, error) {
	if x == nil {
		return nil, nil
	}
	v, err := FromAny(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	points, ok := SeriesFromValue(v)
	if !ok {
		return nil, fmt.Errorf("%s: expected array of numbers or {label, value} objects", path)
	}
	return points, nil
}

// SeriesFromValue reads a list of numbers or of {label|name, value} maps.
// Entries without a numeric value are skipped.
func SeriesFromValue(v Value) ([]Point, bool) {
	list, ok := v.ListValue()
	if !ok {
		return nil, false
	}
	points := make([]Point, 0, len(list))
	for i, item := range list {
		if f, ok := item.Float(); ok {
			points = append(points, Point{Label: strconv.Itoa(i + 1), Value: f})
			continue
		}
		val, ok := item.Field("value")
		if !ok {
			continue
		}
		f, ok := val.Float()
		if !ok {
			continue
		}
		label := ""
		if l, ok := item.Field("label"); ok {
			label = l.Display()
		} else if l, ok := item.Field("name"); ok {
			label = l.Display()
		}
		points = append(points, Point{Label: label, Value: f})
	}
	return points, true
}

func asMap(x any) (map[string]any, bool) {
	switch t := x.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func optString(m map[string]any, key, path string) (string, error) {
	x, ok := m[key]
	if !ok || x == nil {
		return "", nil
	}
	s, ok := x.(string)
	if !ok {
		return "", fmt.Errorf("%s.%s: expected string, got %T", path, key, x)
	}
	return s, nil
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func scalarString(x any) string {
	if x == nil {
		return ""
	}
	v, err := FromAny(x)
	if err != nil {
		return ""
	}
	return v.Display()
}

func scalarFloat(x any) (float64, bool) {
	if x == nil {
		return 0, false
	}
	v, err := FromAny(x)
	if err != nil {
		return 0, false
	}
	return v.Float()
}

// UnmarshalJSON decodes an element from JSON.
func (e *Element) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	el, err := DecodeElement(x)
	if err != nil {
		return err
	}
	*e = Element{}
	if el != nil {
		*e = *el
	}
	return nil
}

// UnmarshalYAML decodes an element from YAML.
func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	var x any
	if err := node.Decode(&x); err != nil {
		return err
	}
	el, err := DecodeElement(x)
	if err != nil {
		return err
	}
	*e = Element{}
	if el != nil {
		*e = *el
	}
	return nil
}

// UnmarshalJSON decodes a graphic from JSON.
func (g *Graphic) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	return g.fromAny(x)
}

// UnmarshalYAML decodes a graphic from YAML.
func (g *Graphic) UnmarshalYAML(node *yaml.Node) error {
	var x any
	if err := node.Decode(&x); err != nil {
		return err
	}
	return g.fromAny(x)
}

func (g *Graphic) fromAny(x any) error {
	decoded, err := DecodeGraphic(x)
	if err != nil {
		return err
	}
	*g = Graphic{}
	if decoded != nil {
		*g = *decoded
	}
	return nil
}

package render

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/henri123lemoine/vista/internal/chart"
	"github.com/henri123lemoine/vista/internal/graphic"
	"github.com/henri123lemoine/vista/internal/interp"
	"github.com/henri123lemoine/vista/internal/view"
)

const (
	defaultChartWidth = 24
	maxChartWidth     = 200
	maxLabelWidth     = 12
)

// TrendChartWidget draws a series as a sparkline followed by labelled bars.
//
// Props: dataKey (path into the data-bag) or data (inline series), title,
// color, width (bar cells).
type TrendChartWidget struct{}

// Render implements WidgetRenderer.
func (TrendChartWidget) Render(data graphic.Data, props graphic.Props, class string, style map[string]string) *view.Node {
	root := view.El("div")
	root.Class = JoinClasses("trend-chart", class)
	root.Style = MergeStyles(style, nil)

	if title := propString(props, "title"); title != "" {
		root.Children = append(root.Children, view.El("h3", view.Text(title)))
	}

	points := seriesProp(data, props)
	if len(points) == 0 {
		root.Children = append(root.Children, view.El("p", view.Text("No data")).WithClass("muted"))
		return root
	}

	values := graphic.Values(points)
	width := propInt(props, "width", defaultChartWidth, maxChartWidth)
	color := propString(props, "color")

	spark := view.El("div",
		view.El("span", view.Text(chart.Sparkline(values))).WithClass("sparkline"),
		view.El("span", view.Text(" "+graphic.FormatNumber(chart.Min(values))+" – "+graphic.FormatNumber(chart.Max(values)))).WithClass("muted"),
	)
	root.Children = append(root.Children, spark)

	labelWidth := 0
	for _, p := range points {
		if w := runewidth.StringWidth(p.Label); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}

	for i, pct := range chart.Percentages(values, chart.MinBarPercent) {
		label := runewidth.FillRight(runewidth.Truncate(points[i].Label, labelWidth, "…"), labelWidth)
		bar := view.El("span", view.Text(chart.Bar(chart.Cells(pct, width)))).WithClass("bar")
		if color != "" {
			bar.WithStyle("color", color)
		}
		root.Children = append(root.Children, view.El("div",
			view.El("span", view.Text(label+" ")).WithClass("muted"),
			bar,
			view.El("span", view.Text(" "+graphic.FormatNumber(points[i].Value))),
		).WithClass("chart-row"))
	}
	return root
}

// MetricBadgeWidget shows a value with a change badge.
//
// Props: label, value, change (percent), unit, dataKey. When dataKey points
// at a map, its value and change fields are used; when it points at a
// scalar, that scalar is the value.
type MetricBadgeWidget struct{}

// Render implements WidgetRenderer.
func (MetricBadgeWidget) Render(data graphic.Data, props graphic.Props, class string, style map[string]string) *view.Node {
	label := propString(props, "label")
	value := propString(props, "value")
	unit := propString(props, "unit")

	change, hasChange := propFloat(props, "change")

	if key := propString(props, "dataKey"); key != "" {
		if v, ok := interp.Lookup(key, data); ok {
			if _, isMap := v.MapValue(); isMap {
				if f, ok := v.Field("value"); ok {
					value = f.Display()
				}
				if f, ok := v.Field("change"); ok {
					if c, ok := f.Float(); ok {
						change, hasChange = c, true
					}
				}
				if f, ok := v.Field("label"); ok && label == "" {
					label = f.Display()
				}
			} else {
				value = v.Display()
			}
		}
	}

	root := view.El("div")
	root.Class = JoinClasses("metric-badge", class)
	root.Style = MergeStyles(style, nil)

	if label != "" {
		root.Children = append(root.Children, view.El("div", view.Text(label)).WithClass("muted"))
	}

	line := view.El("div", view.El("strong", view.Text(value+unit)))
	if hasChange {
		line.Children = append(line.Children,
			view.Text(" "),
			view.El("span", view.Text(ChangeBadge(change))).WithClass(JoinClasses("badge", changeClass(change))),
		)
	}
	root.Children = append(root.Children, line)
	return root
}

// ChangeBadge formats a relative change: "▲ +4.5%", "▼ -2%", "■ 0%".
func ChangeBadge(change float64) string {
	rounded := math.Round(change*10) / 10
	switch {
	case rounded > 0:
		return "▲ +" + graphic.FormatNumber(rounded) + "%"
	case rounded < 0:
		return "▼ " + graphic.FormatNumber(rounded) + "%"
	default:
		return "■ 0%"
	}
}

func changeClass(change float64) string {
	rounded := math.Round(change*10) / 10
	switch {
	case rounded > 0:
		return "up"
	case rounded < 0:
		return "down"
	default:
		return "flat"
	}
}

func seriesProp(data graphic.Data, props graphic.Props) []graphic.Point {
	if inline, ok := props["data"]; ok {
		if points, ok := graphic.SeriesFromValue(inline); ok {
			return points
		}
	}
	key := propString(props, "dataKey")
	if key == "" {
		return nil
	}
	v, ok := interp.Lookup(key, data)
	if !ok {
		return nil
	}
	points, _ := graphic.SeriesFromValue(v)
	return points
}

func propString(props graphic.Props, key string) string {
	v, ok := props[key]
	if !ok || v.IsNull() {
		return ""
	}
	return v.Display()
}

func propFloat(props graphic.Props, key string) (float64, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// propInt reads a positive integer prop, clamped to limit.
func propInt(props graphic.Props, key string, def, limit int) int {
	f, ok := propFloat(props, key)
	if !ok || !(f >= 1) {
		return def
	}
	if f > float64(limit) {
		return limit
	}
	return int(f)
}

// Package cards renders flat card records selected by their type
// discriminator: performance cards, stat cards and chart cards.
package cards

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/henri123lemoine/vista/internal/chart"
	"github.com/henri123lemoine/vista/internal/graphic"
	"github.com/henri123lemoine/vista/internal/render"
	"github.com/henri123lemoine/vista/internal/view"
)

// InvalidDataMessage is shown for a nil card or a card without a type.
const InvalidDataMessage = "Invalid graphic data"

// BarWidth is the number of cells a full-scale bar occupies.
const BarWidth = 20

// Render dispatches card to its renderer. A nil card or one without a type
// yields fallback (or the standard invalid-data panel); an unrecognized
// type yields an "Unknown graphic type" panel.
func Render(card graphic.Card, fallback *view.Node) *view.Node {
	if card == nil || card.CardType() == "" {
		if fallback != nil {
			return fallback
		}
		return render.ErrorPanel(InvalidDataMessage)
	}

	switch c := card.(type) {
	case graphic.PerformanceCard:
		return Performance(c)
	case *graphic.PerformanceCard:
		return Performance(*c)
	case graphic.StatCard:
		return Stat(c)
	case *graphic.StatCard:
		return Stat(*c)
	case graphic.ChartCard:
		return Chart(c)
	case *graphic.ChartCard:
		return Chart(*c)
	default:
		return render.ErrorPanel(fmt.Sprintf("Unknown graphic type: %s", card.CardType()))
	}
}

// Performance renders a metric, its change badge and a bar per sample.
func Performance(c graphic.PerformanceCard) *view.Node {
	root := view.El("div").WithClass("card performance-card")
	root.Children = append(root.Children, view.El("h3", view.Text(c.Title)))
	if c.Description != "" {
		root.Children = append(root.Children, view.El("p", view.Text(c.Description)).WithClass("muted"))
	}

	metric := view.El("div", view.El("strong", view.Text(c.Metric.Value+c.Metric.Unit)).WithClass("metric"))
	if c.Metric.Label != "" {
		metric.Children = append(metric.Children, view.El("span", view.Text(" "+c.Metric.Label)).WithClass("muted"))
	}
	if c.Metric.Change != nil {
		change := *c.Metric.Change
		metric.Children = append(metric.Children,
			view.Text(" "),
			view.El("span", view.Text(render.ChangeBadge(change))).WithClass("badge "+direction(change)),
		)
	}
	root.Children = append(root.Children, metric)

	if len(c.Series) > 0 {
		root.Children = append(root.Children, barRows(c.Series, "", chart.Percentages(graphic.Values(c.Series), chart.MinBarPercent))...)
	}
	return root
}

// Stat renders a single headline value.
func Stat(c graphic.StatCard) *view.Node {
	root := view.El("div").WithClass("card stat-card")

	header := view.El("div")
	if c.Icon != "" {
		header.Children = append(header.Children, view.El("span", view.Text(c.Icon+" ")).WithClass("icon"))
	}
	header.Children = append(header.Children, view.El("span", view.Text(c.Title)).WithClass("muted"))
	root.Children = append(root.Children, header)

	value := view.El("h2", view.Text(c.Value))
	if c.Color != "" {
		value.WithStyle("color", c.Color)
	}
	root.Children = append(root.Children, value)

	if c.Subtitle != "" {
		root.Children = append(root.Children, view.El("small", view.Text(c.Subtitle)).WithClass("muted"))
	}
	return root
}

// Chart renders a bar, line or pie chart.
func Chart(c graphic.ChartCard) *view.Node {
	root := view.El("div").WithClass("card chart-card")
	root.Children = append(root.Children, view.El("h3", view.Text(c.Title)))

	points := c.Chart.Series
	if len(points) == 0 {
		root.Children = append(root.Children, view.El("p", view.Text("No data")).WithClass("muted"))
		return root
	}
	values := graphic.Values(points)

	switch c.Chart.Kind {
	case graphic.ChartLine:
		root.Children = append(root.Children,
			view.El("div", view.Text(chart.Sparkline(values))).WithClass("sparkline"),
			view.El("small", view.Text(fmt.Sprintf("min %s%s · max %s%s",
				graphic.FormatNumber(chart.Min(values)), c.Chart.Unit,
				graphic.FormatNumber(chart.Max(values)), c.Chart.Unit))).WithClass("muted"),
		)
	case graphic.ChartPie:
		// bars show each slice's share of the whole, not of the largest slice
		shares := chart.Shares(values)
		slices := make([]graphic.Point, len(points))
		percents := make([]float64, len(points))
		for i, p := range points {
			slices[i] = graphic.Point{Label: p.Label, Value: math.Round(shares[i]*10) / 10}
			percents[i] = math.Max(shares[i], chart.MinBarPercent)
		}
		root.Children = append(root.Children, barRows(slices, "%", percents)...)
	default:
		root.Children = append(root.Children, barRows(points, c.Chart.Unit, chart.Percentages(values, chart.MinBarPercent))...)
	}
	return root
}

func barRows(points []graphic.Point, unit string, percents []float64) []*view.Node {
	labelWidth := 0
	for _, p := range points {
		if w := runewidth.StringWidth(p.Label); w > labelWidth {
			labelWidth = w
		}
	}
	rows := make([]*view.Node, 0, len(points))
	for i, p := range points {
		label := runewidth.FillRight(p.Label, labelWidth)
		rows = append(rows, view.El("div",
			view.El("span", view.Text(label+" ")).WithClass("muted"),
			view.El("span", view.Text(chart.Bar(chart.Cells(percents[i], BarWidth)))).WithClass("bar"),
			view.El("span", view.Text(" "+graphic.FormatNumber(p.Value)+unit)),
		).WithClass("chart-row"))
	}
	return rows
}

func direction(change float64) string {
	switch badge := render.ChangeBadge(change); {
	case strings.HasPrefix(badge, "▲"):
		return "up"
	case strings.HasPrefix(badge, "▼"):
		return "down"
	default:
		return "flat"
	}
}

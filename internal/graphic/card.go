package graphic

// Card type discriminators.
const (
	TypePerformanceCard = "performance-card"
	TypeStatCard        = "stat-card"
	TypeChartCard       = "chart-card"
)

// Card is a flat presentational record selected by its type discriminator.
type Card interface {
	CardType() string
}

// Point is one labelled sample of a series.
type Point struct {
	Label string
	Value float64
}

// Values returns the numeric part of a series.
func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

// Metric is the headline figure of a performance card.
type Metric struct {
	Value string
	Label string
	// Change is a relative change in percent. Nil hides the badge.
	Change *float64
	Unit   string
}

// PerformanceCard shows a metric with its trend.
type PerformanceCard struct {
	Title       string
	Description string
	Metric      Metric
	Series      []Point
}

func (PerformanceCard) CardType() string { return TypePerformanceCard }

// StatCard shows a single value.
type StatCard struct {
	Title    string
	Value    string
	Subtitle string
	Icon     string
	Color    string
}

func (StatCard) CardType() string { return TypeStatCard }

// Chart kinds understood by ChartCard.
const (
	ChartBar  = "bar"
	ChartLine = "line"
	ChartPie  = "pie"
)

// ChartSpec describes the chart of a ChartCard.
type ChartSpec struct {
	Kind   string
	Series []Point
	Unit   string
}

// ChartCard shows a titled chart.
type ChartCard struct {
	Title string
	Chart ChartSpec
}

func (ChartCard) CardType() string { return TypeChartCard }

// UnknownCard carries a discriminator no renderer recognizes.
type UnknownCard struct {
	Type string
}

func (c UnknownCard) CardType() string { return c.Type }

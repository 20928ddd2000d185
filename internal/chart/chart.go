// Package chart holds the pure geometry used to draw bars and sparklines.
package chart

import (
	"math"
	"strings"
)

// MinBarPercent keeps zero and near-zero values visible.
const MinBarPercent = 4.0

var sparkGlyphs = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Max returns the largest value, or 0 for an empty series.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest value, or 0 for an empty series.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Sum returns the total of the series.
func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// Scale maps each value onto [floor, span] proportionally to the series
// maximum. A non-positive maximum maps every value to floor.
func Scale(values []float64, span, floor float64) []float64 {
	out := make([]float64, len(values))
	m := Max(values)
	for i, v := range values {
		if m <= 0 || math.IsNaN(v) {
			out[i] = floor
			continue
		}
		out[i] = clamp(v/m*span, floor, span)
	}
	return out
}

// Percentages scales values to 0-100 with a minimum visible percentage.
func Percentages(values []float64, minPercent float64) []float64 {
	return Scale(values, 100, minPercent)
}

// Shares returns each value's share of the series total in percent.
func Shares(values []float64) []float64 {
	out := make([]float64, len(values))
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return out
	}
	for i, v := range values {
		if v > 0 {
			out[i] = v / total * 100
		}
	}
	return out
}

// Cells converts a percentage of width into whole cells, never less than 1.
func Cells(percent float64, width int) int {
	if width <= 0 {
		return 0
	}
	n := int(math.Round(percent / 100 * float64(width)))
	if n < 1 {
		return 1
	}
	if n > width {
		return width
	}
	return n
}

// Bar returns a run of full block glyphs.
func Bar(cells int) string {
	if cells <= 0 {
		return ""
	}
	return strings.Repeat("█", cells)
}

// Sparkline draws one glyph per value. Flat series draw at mid height.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := Min(values), Max(values)
	var b strings.Builder
	for _, v := range values {
		idx := len(sparkGlyphs) / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkGlyphs)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkGlyphs) {
			idx = len(sparkGlyphs) - 1
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

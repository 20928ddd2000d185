package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/henri123lemoine/vista/internal/view"
)

// layout carries the non-visual parts of a node's style.
type layout struct {
	row     bool
	gap     int
	stretch bool
	width   int
}

// Paint renders a visual tree as terminal text no wider than width cells.
func Paint(n *view.Node, width int) string {
	if n == nil {
		return ""
	}
	if width < 1 {
		width = 1
	}
	if n.IsText() {
		return ansi.Wordwrap(n.Text, width, "")
	}
	if !view.IsBlock(n.Tag) {
		return ansi.Wordwrap(paintInline(n), width, "")
	}
	return paintBlock(n, width, "")
}

func paintBlock(n *view.Node, width int, marker string) string {
	switch n.Tag {
	case "hr":
		return DividerStyle.Render(strings.Repeat(SymbolDivider, width))
	case "br":
		return ""
	}

	st, lay := resolveStyle(n)

	outer := width - st.GetHorizontalMargins() - st.GetHorizontalBorderSize()
	switch {
	case lay.width > 0:
		st = st.Width(min(lay.width, width) - st.GetHorizontalBorderSize() - st.GetHorizontalMargins())
	case lay.stretch || st.GetAlign() != lipgloss.Left:
		st = st.Width(outer)
	}
	inner := width - st.GetHorizontalFrameSize()
	if w := st.GetWidth(); w > 0 {
		inner = w - st.GetHorizontalPadding()
	}
	if inner < 1 {
		inner = 1
	}

	var body string
	if lay.row {
		body = paintRow(n.Children, inner, lay.gap)
	} else {
		body = paintFlow(n.Children, inner-lipgloss.Width(marker), n.Tag)
	}
	if marker != "" {
		body = hang(marker, body)
	}
	return st.Render(body)
}

// paintFlow stacks block children and flows inline children into lines.
func paintFlow(children []*view.Node, width int, parent string) string {
	if width < 1 {
		width = 1
	}
	pre := parent == "pre"

	var lines []string
	var line strings.Builder
	flush := func() {
		if line.Len() == 0 {
			return
		}
		s := line.String()
		if !pre {
			s = ansi.Wordwrap(s, width, "")
		}
		lines = append(lines, s)
		line.Reset()
	}

	items := 0
	for _, c := range children {
		if c == nil {
			continue
		}
		switch {
		case c.Tag == "br":
			if line.Len() == 0 {
				lines = append(lines, "")
			}
			flush()
		case c.IsText() || !view.IsBlock(c.Tag):
			line.WriteString(paintInline(c))
		default:
			flush()
			marker := ""
			if c.Tag == "li" {
				items++
				marker = listMarker(parent, items)
			}
			lines = append(lines, paintBlock(c, width, marker))
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

// paintRow lays children side by side, splitting width evenly.
func paintRow(children []*view.Node, width, gap int) string {
	var kids []*view.Node
	for _, c := range children {
		if c != nil {
			kids = append(kids, c)
		}
	}
	if len(kids) == 0 {
		return ""
	}
	colWidth := (width - gap*(len(kids)-1)) / len(kids)
	if colWidth < 1 {
		colWidth = 1
	}

	if gap < 0 {
		gap = 0
	}
	parts := make([]string, 0, len(kids)*2)
	spacer := strings.Repeat(" ", gap)
	for i, c := range kids {
		if i > 0 && gap > 0 {
			parts = append(parts, spacer)
		}
		if c.IsText() || !view.IsBlock(c.Tag) {
			parts = append(parts, ansi.Wordwrap(paintInline(c), colWidth, ""))
			continue
		}
		parts = append(parts, paintBlock(c, colWidth, ""))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func paintInline(n *view.Node) string {
	if n.IsText() {
		return n.Text
	}
	if n.Tag == "br" {
		return "\n"
	}
	var b strings.Builder
	for _, c := range n.Children {
		if c != nil {
			b.WriteString(paintInline(c))
		}
	}
	st, _ := resolveStyle(n)
	if b.Len() == 0 {
		return ""
	}
	return st.Render(b.String())
}

func listMarker(parent string, index int) string {
	if parent == "ol" {
		return strconv.Itoa(index) + ". "
	}
	return SymbolBullet + " "
}

// hang prefixes the first line with marker and indents the rest to match.
func hang(marker, body string) string {
	indent := strings.Repeat(" ", lipgloss.Width(marker))
	lines := strings.Split(body, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = marker + lines[i]
		} else {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// resolveStyle layers tag defaults, class tokens and the style map.
func resolveStyle(n *view.Node) (lipgloss.Style, layout) {
	st := lipgloss.NewStyle()
	if ts, ok := tagStyles[n.Tag]; ok {
		st = ts
	}

	var lay layout
	for _, token := range strings.Fields(n.Class) {
		switch token {
		case "w-full", "max-w-full":
			lay.stretch = true
			continue
		case "flex-row":
			lay.row = true
			continue
		}
		if cs, ok := classStyles[token]; ok {
			st = cs.Inherit(st)
		}
	}

	st, lay = applyStyleMap(st, lay, n.Style)
	return st, lay
}

func applyStyleMap(st lipgloss.Style, lay layout, style map[string]string) (lipgloss.Style, layout) {
	if len(style) == 0 {
		return st, lay
	}

	display := strings.TrimSpace(style["display"])
	direction := strings.TrimSpace(style["flex-direction"])
	if display == "flex" && (direction == "" || strings.HasPrefix(direction, "row")) {
		lay.row = true
	}
	if g, ok := cells(style["gap"]); ok {
		lay.gap = g
	} else if lay.row {
		lay.gap = 1
	}

	for key, raw := range style {
		v := strings.TrimSpace(raw)
		switch key {
		case "color":
			if c, ok := color(v); ok {
				st = st.Foreground(c)
			}
		case "background", "background-color":
			if c, ok := color(v); ok {
				st = st.Background(c)
			}
		case "font-weight":
			switch v {
			case "bold", "bolder", "600", "700", "800", "900":
				st = st.Bold(true)
			case "normal", "lighter", "400":
				st = st.Bold(false)
			}
		case "font-style":
			st = st.Italic(v == "italic" || v == "oblique")
		case "text-decoration":
			st = st.Underline(strings.Contains(v, "underline")).
				Strikethrough(strings.Contains(v, "line-through"))
		case "padding":
			if sides, ok := box(v); ok {
				st = st.Padding(sides...)
			}
		case "margin":
			if sides, ok := box(v); ok {
				st = st.Margin(sides...)
			}
		case "border":
			st = applyBorder(st, v)
		case "border-color":
			if c, ok := color(v); ok {
				st = st.BorderForeground(c)
			}
		case "width":
			if v == "100%" || v == "auto" && lay.stretch {
				lay.stretch = true
			} else if w, ok := cells(v); ok && w > 0 {
				lay.width = w
			}
		case "text-align":
			switch v {
			case "center":
				st = st.Align(lipgloss.Center)
			case "right", "end":
				st = st.Align(lipgloss.Right)
			case "left", "start":
				st = st.Align(lipgloss.Left)
			}
		}
	}
	return st, lay
}

func applyBorder(st lipgloss.Style, v string) lipgloss.Style {
	fields := strings.Fields(v)
	if len(fields) == 0 || fields[0] == "none" || fields[0] == "0" {
		return st.UnsetBorderStyle().UnsetBorderTop().UnsetBorderRight().UnsetBorderBottom().UnsetBorderLeft()
	}
	border := lipgloss.NormalBorder()
	for _, f := range fields {
		switch f {
		case "rounded":
			border = lipgloss.RoundedBorder()
		case "thick":
			border = lipgloss.ThickBorder()
		case "double":
			border = lipgloss.DoubleBorder()
		case "hidden":
			border = lipgloss.HiddenBorder()
		}
	}
	st = st.Border(border)
	// a trailing color token, as in "1px solid red"
	if c, ok := color(fields[len(fields)-1]); ok && len(fields) > 1 {
		st = st.BorderForeground(c)
	}
	return st
}

// color accepts ANSI indexes, hex colors and a few names.
func color(v string) (lipgloss.Color, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || strings.HasPrefix(v, "var(") {
		return "", false
	}
	if named, ok := namedColors[v]; ok {
		return lipgloss.Color(named), true
	}
	if strings.HasPrefix(v, "#") && (len(v) == 4 || len(v) == 7) {
		return lipgloss.Color(v), true
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(v), true
	}
	return "", false
}

// maxCells caps any single parsed length.
const maxCells = 1000

// cells parses a length into terminal cells. Pixels count eight to a cell;
// rem, em, ch and bare numbers count one to one.
func cells(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	scale := 1.0
	for _, suffix := range []string{"px", "rem", "em", "ch"} {
		if strings.HasSuffix(v, suffix) {
			if suffix == "px" {
				scale = 1.0 / 8
			}
			v = strings.TrimSuffix(v, suffix)
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f *= scale
	if f > maxCells {
		return maxCells, true
	}
	n := int(f + 0.5)
	if f > 0 && n == 0 {
		n = 1
	}
	return n, true
}

// box parses one to four space-separated lengths.
func box(v string) ([]int, bool) {
	fields := strings.Fields(v)
	if len(fields) == 0 || len(fields) > 4 {
		return nil, false
	}
	sides := make([]int, len(fields))
	for i, f := range fields {
		n, ok := cells(f)
		if !ok {
			return nil, false
		}
		sides[i] = n
	}
	return sides, true
}

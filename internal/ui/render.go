package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/henri123lemoine/vista/internal/catalog"
)

// State constants (matching app.State)
const (
	StateList = iota
	StateFilter
	StatePreview
	StateSource
	StateHelp
)

// HelpBinding represents a keybinding for help display.
type HelpBinding struct {
	Keys string
	Desc string
}

// HelpSection represents a section of help bindings.
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	State        int
	Templates    []catalog.Template
	Recent       []string
	Cursor       int
	ViewOffset   int
	VisibleCount int
	Width        int
	Height       int
	Loading      bool
	Err          error
	Warnings     []string
	Status       string
	FilterInput  string
	FilterValue  string
	Selected     *catalog.Template
	Preview      string // painted preview body
	Source       string
	ScrollOffset int
	HelpSections []HelpSection
}

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 30

// MinHeight is the absolute minimum terminal height we try to support.
const MinHeight = 8

// chromeLines is the number of lines a screen spends outside its body:
// box border and padding, header, two dividers and the help line.
const chromeLines = 8

// linesPerEntry is the height of one list entry.
const linesPerEntry = 2

// ContentWidth returns the usable width inside the screen box.
func ContentWidth(width int) int {
	if width < MinWidth {
		width = MinWidth
	}
	// box border (2) + padding (4) + slack for the box width adjustment (2)
	return width - 8
}

// BodyHeight returns the number of body lines a screen can show.
func BodyHeight(height int) int {
	if height < MinHeight {
		height = MinHeight
	}
	if h := height - chromeLines; h > 1 {
		return h
	}
	return 1
}

// ListCapacity returns how many list entries fit on screen.
func ListCapacity(height int) int {
	// one line is kept for each scroll indicator
	if n := (BodyHeight(height) - 2) / linesPerEntry; n > 1 {
		return n
	}
	return 1
}

// Render renders the full UI.
func Render(p RenderParams) string {
	if p.Width < MinWidth {
		p.Width = MinWidth
	}
	if p.Height < MinHeight {
		p.Height = MinHeight
	}

	switch p.State {
	case StateFilter:
		return renderFilter(p)
	case StatePreview:
		return renderPreview(p)
	case StateSource:
		return renderSource(p)
	case StateHelp:
		return renderHelp(p)
	default:
		return renderList(p)
	}
}

// renderList renders the main template list.
func renderList(p RenderParams) string {
	var b strings.Builder
	contentWidth := ContentWidth(p.Width)

	header := HeaderStyle.Render("TEMPLATES")
	if len(p.Templates) > 0 {
		header += "  " + PathStyle.Render(fmt.Sprintf("%d", len(p.Templates)))
	}
	if p.FilterValue != "" {
		header += "  " + PathStyle.Render("/"+p.FilterValue)
	}
	b.WriteString(header + "\n")
	b.WriteString(divider(contentWidth) + "\n")

	if p.Err != nil {
		b.WriteString(ErrorStyle.Render("Error: "+p.Err.Error()) + "\n\n")
	}

	if p.Loading {
		b.WriteString("\nLoading templates...\n")
		return wrapInBox(b.String(), p.Width)
	}

	if len(p.Templates) == 0 {
		b.WriteString("\n" + PathStyle.Render("No templates found.") + "\n")
	} else {
		b.WriteString(renderEntries(p, contentWidth))
	}

	b.WriteString("\n" + divider(contentWidth) + "\n")
	switch {
	case p.Status != "":
		b.WriteString(StatusStyle.Render(p.Status))
	case len(p.Warnings) > 0:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("%d template(s) failed to load: %s", len(p.Warnings), ansi.Truncate(p.Warnings[0], contentWidth-30, "…"))))
	default:
		b.WriteString(HelpStyle.Render(compactHelp(
			"enter preview • s source • e edit • / filter • ? help • q quit",
			"enter•s•e•/•?•q",
			p.Width,
		)))
	}

	return wrapInBox(b.String(), p.Width)
}

// renderEntries renders the visible slice of the list with scroll indicators.
func renderEntries(p RenderParams, width int) string {
	var b strings.Builder

	visible := p.VisibleCount
	if visible <= 0 {
		visible = ListCapacity(p.Height)
	}
	startIdx := p.ViewOffset
	if startIdx >= len(p.Templates) || startIdx < 0 {
		startIdx = 0
	}
	endIdx := startIdx + visible
	if endIdx > len(p.Templates) {
		endIdx = len(p.Templates)
	}

	if startIdx > 0 {
		b.WriteString(PathStyle.Render(fmt.Sprintf("  ↑ %d more above", startIdx)) + "\n")
	}

	recent := make(map[string]bool, len(p.Recent))
	for _, name := range p.Recent {
		recent[name] = true
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(renderTemplateEntry(p.Templates[i], i == p.Cursor, recent[p.Templates[i].Name], width))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(p.Templates) {
		b.WriteString("\n" + PathStyle.Render(fmt.Sprintf("  ↓ %d more below", len(p.Templates)-endIdx)))
	}
	return b.String()
}

// renderTemplateEntry renders a single template as two lines.
func renderTemplateEntry(t catalog.Template, selected, recent bool, width int) string {
	cursor := "  "
	if selected {
		cursor = SelectedStyle.Render(SymbolCursor + " ")
	} else if recent {
		cursor = RecentStyle.Render(SymbolRecent + " ")
	}

	title := NormalStyle.Render(t.Title)
	if selected {
		title = SelectedStyle.Render(t.Title)
	}

	kind := GraphicTagStyle.Render("[graphic]")
	if t.Kind == catalog.KindCard {
		kind = CardTagStyle.Render("[card]")
	}
	line := cursor + title + " " + CategoryStyle.Render(t.Category) + " " + kind
	if !t.Builtin && t.Path != "" {
		line += " " + PathStyle.Render("(user)")
	}

	desc := t.Description
	if desc == "" {
		desc = t.Name
	}
	desc = ansi.Truncate(desc, width-4, "…")
	return line + "\n    " + PathStyle.Render(desc)
}

// renderFilter renders the filter mode.
func renderFilter(p RenderParams) string {
	var b strings.Builder
	contentWidth := ContentWidth(p.Width)

	b.WriteString(HeaderStyle.Render("FILTER") + "  ")
	b.WriteString(p.FilterInput + "\n")
	b.WriteString(divider(contentWidth) + "\n")

	if len(p.Templates) == 0 {
		b.WriteString("\n" + PathStyle.Render("No matches found.") + "\n")
	} else {
		b.WriteString(renderEntries(p, contentWidth))
	}

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render("enter select • esc clear"))

	return wrapInBox(b.String(), p.Width)
}

// renderPreview renders the painted template.
func renderPreview(p RenderParams) string {
	var b strings.Builder
	contentWidth := ContentWidth(p.Width)

	b.WriteString(screenHeader("PREVIEW", p.Selected) + "\n")
	b.WriteString(divider(contentWidth) + "\n")

	body, above, below := scrollWindow(p.Preview, p.ScrollOffset, BodyHeight(p.Height))
	b.WriteString(body)

	b.WriteString("\n" + divider(contentWidth) + "\n")
	if p.Status != "" {
		b.WriteString(StatusStyle.Render(p.Status))
	} else {
		b.WriteString(HelpStyle.Render(scrollHint(above, below) + compactHelp(
			"↑/↓ scroll • tab data • s source • y copy • esc back",
			"↑↓•tab•s•y•esc",
			p.Width,
		)))
	}

	return wrapInBox(b.String(), p.Width)
}

// renderSource renders the template document as written.
func renderSource(p RenderParams) string {
	var b strings.Builder
	contentWidth := ContentWidth(p.Width)

	b.WriteString(screenHeader("SOURCE", p.Selected) + "\n")
	b.WriteString(divider(contentWidth) + "\n")

	source := strings.TrimRight(strings.ReplaceAll(p.Source, "\t", "  "), "\n")
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = SourceStyle.Render(ansi.Truncate(line, contentWidth, "…"))
	}
	body, above, below := scrollWindow(strings.Join(lines, "\n"), p.ScrollOffset, BodyHeight(p.Height))
	b.WriteString(body)

	b.WriteString("\n" + divider(contentWidth) + "\n")
	if p.Status != "" {
		b.WriteString(StatusStyle.Render(p.Status))
	} else {
		b.WriteString(HelpStyle.Render(scrollHint(above, below) + compactHelp(
			"↑/↓ scroll • enter preview • y copy • esc back",
			"↑↓•enter•y•esc",
			p.Width,
		)))
	}

	return wrapInBox(b.String(), p.Width)
}

// renderHelp renders the help screen.
func renderHelp(p RenderParams) string {
	var b strings.Builder
	contentWidth := ContentWidth(p.Width)

	b.WriteString(HeaderStyle.Render("HELP") + "\n")
	b.WriteString(divider(contentWidth) + "\n\n")

	for i, section := range p.HelpSections {
		b.WriteString(TitleStyle.Render(section.Title) + "\n")
		b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, min(40, contentWidth))) + "\n")
		for _, binding := range section.Bindings {
			// Pad keys to 10 chars for alignment
			keys := binding.Keys
			if len(keys) < 10 {
				keys = keys + strings.Repeat(" ", 10-len(keys))
			}
			b.WriteString(PathStyle.Render("  "+keys) + " " + binding.Desc + "\n")
		}
		if i < len(p.HelpSections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render("Press any key to close"))

	return wrapInBox(b.String(), p.Width)
}

func screenHeader(label string, t *catalog.Template) string {
	header := HeaderStyle.Render(label)
	if t == nil {
		return header
	}
	header += "  " + TitleStyle.Render(t.Title)
	if t.Path != "" {
		header += "  " + PathStyle.Render(t.Path)
	} else {
		header += "  " + PathStyle.Render(t.Name+"."+string(t.Format))
	}
	return header
}

// scrollWindow returns at most height lines of text starting at offset,
// and how many lines were cut above and below.
func scrollWindow(text string, offset, height int) (string, int, int) {
	lines := strings.Split(text, "\n")
	if maxOffset := len(lines) - height; offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n"), offset, len(lines) - end
}

func scrollHint(above, below int) string {
	if above == 0 && below == 0 {
		return ""
	}
	return fmt.Sprintf("%d↑ %d↓ • ", above, below)
}

func divider(width int) string {
	return DividerStyle.Render(strings.Repeat(SymbolDivider, width))
}

// wrapInBox wraps content in a box.
func wrapInBox(content string, width int) string {
	boxWidth := width - 2
	// Graceful degradation: use actual width, just ensure minimum for box borders
	if boxWidth < MinWidth-2 {
		boxWidth = MinWidth - 2
	}

	// Don't force height - let content determine size
	style := BoxStyle.Width(boxWidth)

	return style.Render(content)
}

// compactHelp returns a shortened help string for small terminals.
func compactHelp(full, compact string, width int) string {
	// If terminal is wide enough, use full help text
	if width >= 80 {
		return full
	}
	return compact
}

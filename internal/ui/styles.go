// Package ui handles terminal UI rendering.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors - using more subtle, balanced palette
var (
	ColorPrimary   = lipgloss.Color("4")   // Blue
	ColorSecondary = lipgloss.Color("8")   // Gray
	ColorSuccess   = lipgloss.Color("2")   // Green (dimmer)
	ColorWarning   = lipgloss.Color("3")   // Yellow (dimmer)
	ColorDanger    = lipgloss.Color("1")   // Red (dimmer)
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("6")   // Cyan
	ColorText      = lipgloss.Color("252") // Light text
)

// Screen styles. Rebuilt by ApplyTheme.
var (
	BoxStyle        lipgloss.Style
	TitleStyle      lipgloss.Style
	HeaderStyle     lipgloss.Style
	SelectedStyle   lipgloss.Style
	NormalStyle     lipgloss.Style
	CategoryStyle   lipgloss.Style
	GraphicTagStyle lipgloss.Style
	CardTagStyle    lipgloss.Style
	PathStyle       lipgloss.Style
	HelpStyle       lipgloss.Style
	ErrorStyle      lipgloss.Style
	StatusStyle     lipgloss.Style
	RecentStyle     lipgloss.Style
	DividerStyle    lipgloss.Style
	SourceStyle     lipgloss.Style
)

func buildScreenStyles() {
	// Box styles
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2)

	// Title style
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	// Header style
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorMuted)

	// Selected item style
	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorHighlight).
		Bold(true)

	// Normal item style
	NormalStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	// Category tag style
	CategoryStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	// Kind tag styles
	GraphicTagStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	CardTagStyle = lipgloss.NewStyle().
		Foreground(ColorHighlight)

	// Path style
	PathStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	// Help style
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorDanger)

	// Status line style
	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	// Recent marker style
	RecentStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	// Divider style
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	// Source view style
	SourceStyle = lipgloss.NewStyle().
		Foreground(ColorText)
}

// Element styles, keyed by tag and by class token. Unknown class tokens are
// ignored. Rebuilt by ApplyTheme.
var (
	tagStyles   map[string]lipgloss.Style
	classStyles map[string]lipgloss.Style
)

func init() {
	buildScreenStyles()
	buildElementStyles()
}

func buildElementStyles() {
	tagStyles = map[string]lipgloss.Style{
		"h1":         lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		"h2":         lipgloss.NewStyle().Bold(true).Foreground(ColorText),
		"h3":         lipgloss.NewStyle().Bold(true),
		"h4":         lipgloss.NewStyle().Bold(true).Foreground(ColorMuted),
		"h5":         lipgloss.NewStyle().Bold(true).Foreground(ColorMuted),
		"h6":         lipgloss.NewStyle().Foreground(ColorMuted),
		"strong":     lipgloss.NewStyle().Bold(true),
		"b":          lipgloss.NewStyle().Bold(true),
		"em":         lipgloss.NewStyle().Italic(true),
		"i":          lipgloss.NewStyle().Italic(true),
		"u":          lipgloss.NewStyle().Underline(true),
		"a":          lipgloss.NewStyle().Underline(true).Foreground(ColorHighlight),
		"code":       lipgloss.NewStyle().Foreground(ColorWarning),
		"small":      lipgloss.NewStyle().Foreground(ColorMuted),
		"mark":       lipgloss.NewStyle().Reverse(true),
		"label":      lipgloss.NewStyle().Foreground(ColorMuted),
		"blockquote": lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(ColorSecondary).PaddingLeft(1),
		"pre":        lipgloss.NewStyle().Foreground(ColorText),
	}

	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorDanger).Foreground(ColorDanger).Padding(0, 1)
	classStyles = map[string]lipgloss.Style{
		"muted":       lipgloss.NewStyle().Foreground(ColorMuted),
		"bold":        lipgloss.NewStyle().Bold(true),
		"italic":      lipgloss.NewStyle().Italic(true),
		"primary":     lipgloss.NewStyle().Foreground(ColorPrimary),
		"success":     lipgloss.NewStyle().Foreground(ColorSuccess),
		"warning":     lipgloss.NewStyle().Foreground(ColorWarning),
		"danger":      lipgloss.NewStyle().Foreground(ColorDanger),
		"error":       lipgloss.NewStyle().Foreground(ColorDanger),
		"card":        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorSecondary).Padding(0, 1),
		"error-panel": panel,
		"badge":       lipgloss.NewStyle().Bold(true),
		"up":          lipgloss.NewStyle().Foreground(ColorSuccess),
		"down":        lipgloss.NewStyle().Foreground(ColorDanger),
		"flat":        lipgloss.NewStyle().Foreground(ColorMuted),
		"bar":         lipgloss.NewStyle().Foreground(ColorPrimary),
		"sparkline":   lipgloss.NewStyle().Foreground(ColorHighlight),
		"metric":      lipgloss.NewStyle().Bold(true).Foreground(ColorText),
		"icon":        lipgloss.NewStyle().Foreground(ColorWarning),
		"text-center": lipgloss.NewStyle().Align(lipgloss.Center),
		"text-right":  lipgloss.NewStyle().Align(lipgloss.Right),
	}
}

// Named colors accepted in style maps, mapped to ANSI indexes.
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
}

// Symbols
const (
	SymbolCursor  = "›"
	SymbolBullet  = "•"
	SymbolRecent  = "•"
	SymbolDivider = "─"
)

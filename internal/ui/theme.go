package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ApplyTheme switches the palette and rebuilds every style. Recognized
// names are auto, dark, light and mono; anything else is treated as auto.
func ApplyTheme(name string) {
	switch name {
	case "light":
		setPalette(false)
	case "dark":
		setPalette(true)
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
		setPalette(true)
	default:
		setPalette(lipgloss.HasDarkBackground())
	}
	buildScreenStyles()
	buildElementStyles()
}

func setPalette(dark bool) {
	if dark {
		ColorMuted = lipgloss.Color("245")
		ColorText = lipgloss.Color("252")
		ColorSecondary = lipgloss.Color("8")
		return
	}
	ColorMuted = lipgloss.Color("240")
	ColorText = lipgloss.Color("235")
	ColorSecondary = lipgloss.Color("250")
}

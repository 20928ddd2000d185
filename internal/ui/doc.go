// Package ui provides rendering functions for the vista terminal UI.
//
// Paint turns a visual tree into styled text: block tags stack, inline tags
// and text flow and wrap, and a row flex container lays its children side by
// side. Tag defaults, class tokens and inline style maps are layered into a
// lipgloss style per node. Render draws the browser screens from
// RenderParams. Both are pure; ApplyTheme swaps the palette they use.
package ui

package app

import (
	"github.com/henri123lemoine/vista/internal/catalog"
)

// Message types for the bubbletea app.

// TemplatesLoadedMsg is sent when the catalog is loaded.
type TemplatesLoadedMsg struct {
	Templates []catalog.Template
	Recent    []string
	// Warnings lists templates that failed to load.
	Warnings []error
}

// RecentsUpdatedMsg is sent after a preview is recorded.
type RecentsUpdatedMsg struct {
	Names []string
	Err   error
}

// EditorFinishedMsg is sent when the editor launched for a template exits.
type EditorFinishedMsg struct {
	Name string
	Err  error
}

// CopiedMsg is sent when a template source was copied to the clipboard.
type CopiedMsg struct {
	Name string
	Err  error
}

// Package app provides the main Bubble Tea application model for vista.
//
// It manages the browser state machine: the template list, fuzzy
// filtering, the painted preview, the source view and help. Templates load
// asynchronously from the catalog; previews are rendered through the same
// renderer and painter as `vista render`.
//
// The main type is Model, which implements the Bubble Tea interface
// (Init, Update, View) and manages all application state.
package app

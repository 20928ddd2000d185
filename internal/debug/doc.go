// Package debug provides debug logging for vista.
//
// Logging is off by default. When enabled via the --debug flag or the
// general.debug_log setting, it records template loading, widget
// registration and browser activity to help diagnose rendering issues.
// The render core itself stays silent on unresolved placeholders.
package debug

// Package ui renders the diagnostics rangeprint prints on its error stream.
// Styling is applied through a lipgloss renderer bound to the destination
// writer, so redirected output and NO_COLOR environments get plain text.
package ui

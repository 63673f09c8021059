package tui

import "time"

// UI Layout Constants
// These constants define spacing, ratios and timings for the TUI layout

const (
	// Main layout split between the gist list and the content panel
	ListWidthPercent = 30

	// Confirmation dialog size as a percentage of the terminal
	ConfirmWidthPercent  = 50
	ConfirmHeightPercent = 20
	ConfirmMinWidth      = 30 // Below this the prompt wraps badly
	ConfirmMinHeight     = 5

	// Borders and chrome
	PanelBorderWidth = 2 // Left + right (or top + bottom) border
	StatusBarHeight  = 1
	PanelHeaderLines = 2 // Title + blank line

	// Navigation
	PageSize = 10 // Rows moved by PageUp/PageDown in list and help

	// Status bar
	StatusMaxLength = 120

	// Event loop
	PollInterval = 100 * time.Millisecond
)

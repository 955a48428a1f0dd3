package tui

// Color constants for wrokout TUI theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Titles, current exercise
	ColorSecondaryText = "#B1B8C7" // Subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Completed rows, muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, accent elements, active borders
	ColorAccentBright = "#A78BFA" // Clock, highlights, cursor

	// State Colors
	ColorError   = "#EF4444" // Violations
	ColorSuccess = "#22C55E" // Completed exercises
	ColorWarning = "#F59E0B" // Warnings, paused
	ColorRest    = "#38BDF8" // Rest countdown
)

package tui

import "github.com/charmbracelet/lipgloss"

// Color constants.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorPurple = lipgloss.Color("#8b5cf6")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
	colorAlt    = lipgloss.Color("#0f172a")
)

// StyleHeader is the dark title bar above the fetch list.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// Status styles for per-kind fetch state.
var (
	StyleOK      = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleFailed  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	StylePending = lipgloss.NewStyle().Foreground(colorBlue)
)

// Utility styles.
var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

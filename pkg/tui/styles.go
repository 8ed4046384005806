package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor     = lipgloss.Color("#6c6c6c")
	TextColor    = lipgloss.Color("#e0e0e0")
	AccentColor  = lipgloss.Color("#7aa2f7")
	ErrorColor   = lipgloss.Color("#f7768e")
	SuccessColor = lipgloss.Color("#9ece6a")
	InputAreaBg  = lipgloss.Color("#1f2335")
)

// Log entry styles
var (
	RequestStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(AccentColor).
			PaddingLeft(1)

	InfoStyle = lipgloss.NewStyle().
			Foreground(DimColor).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	InputAreaStyle = lipgloss.NewStyle().
			Background(InputAreaBg).
			Padding(0, 1)

	TargetBadgeStyle = lipgloss.NewStyle().
				Foreground(InputAreaBg).
				Background(AccentColor).
				Padding(0, 1)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	FooterAppNameStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true).
				PaddingRight(1)

	FooterInfoStyle = lipgloss.NewStyle().
			Foreground(DimColor).
			PaddingLeft(1)

	ShortcutKeyStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	ShortcutDescStyle = lipgloss.NewStyle().
				Foreground(DimColor)
)

// Log prefixes
const (
	RequestPrefix = "→ "
	ErrorPrefix   = "  error "
	InfoPrefix    = "  "
)

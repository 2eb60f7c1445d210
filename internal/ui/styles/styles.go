// Package styles defines the visual appearance for the Outboundly TUI.
// Using Catppuccin Mocha color palette for a modern, aesthetic look.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha color palette
var (
	// Base colors
	Rosewater = lipgloss.Color("#F5E0DC")
	Pink      = lipgloss.Color("#F5C2E7")
	Mauve     = lipgloss.Color("#CBA6F7")
	Red       = lipgloss.Color("#F38BA8")
	Peach     = lipgloss.Color("#FAB387")
	Yellow    = lipgloss.Color("#F9E2AF")
	Green     = lipgloss.Color("#A6E3A1")
	Teal      = lipgloss.Color("#94E2D5")
	Sky       = lipgloss.Color("#89DCEB")
	Sapphire  = lipgloss.Color("#74C7EC")
	Blue      = lipgloss.Color("#89B4FA")
	Lavender  = lipgloss.Color("#B4BEFE")

	// Surface colors
	Text     = lipgloss.Color("#CDD6F4")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay0 = lipgloss.Color("#6C7086")
	Surface1 = lipgloss.Color("#45475A")
	Surface0 = lipgloss.Color("#313244")
	Base     = lipgloss.Color("#1E1E2E")
	Mantle   = lipgloss.Color("#181825")
)

// Semantic colors (using the palette)
var (
	Primary     = Mauve
	Secondary   = Green
	Accent      = Sapphire
	Danger      = Red
	Warning     = Peach
	Success     = Green
	Info        = Blue
	Muted       = Overlay0
	Background  = Base
	SurfaceCol  = Surface0
	TextCol     = Text
	TextMuted   = Subtext0
	Border      = Surface1
	BorderFocus = Mauve
)

// Panel styles
var (
	// BorderStyle for panels
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	// FocusedBorderStyle for focused panels
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderFocus)

	// PanelTitle for panel headers
	PanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol).
			Padding(0, 1)

	// PanelTitleFocused for focused panel headers
	PanelTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				Padding(0, 1)
)

// List item styles
var (
	// ListItem for normal list items
	ListItem = lipgloss.NewStyle().
			Foreground(TextCol).
			Padding(0, 1)

	// ListItemSelected for selected list items
	ListItemSelected = lipgloss.NewStyle().
				Foreground(TextCol).
				Background(SurfaceCol).
				Bold(true).
				Padding(0, 1)

	// ListItemDim for inactive/dimmed items
	ListItemDim = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)
)

// Notice styles
var (
	NoticeSuccess = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success).
			Foreground(Success).
			Padding(0, 1)

	NoticeError = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Danger).
			Foreground(Danger).
			Padding(0, 1)
)

// Stepper styles
var (
	StepDone = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StepActive = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	StepPending = lipgloss.NewStyle().
			Foreground(Muted)
)

// StatusBar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Background(Mantle).
			Padding(0, 1)

	StatusBarKey = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	StatusBarDesc = lipgloss.NewStyle().
			Foreground(TextMuted)

	StatusBarBrand = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Dialog styles
var (
	DialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			Background(SurfaceCol)

	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol).
			MarginBottom(1)
)

// Helper functions

// KindDot returns a colored dot for a notice kind.
func KindDot(isError bool) string {
	if isError {
		return lipgloss.NewStyle().Foreground(Danger).Render("✖")
	}
	return lipgloss.NewStyle().Foreground(Success).Render("✔")
}

// Package statusbar provides the status bar UI component.
package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/outboundly/outboundly/internal/ui/styles"
)

// Model is the status bar component.
type Model struct {
	width     int
	message   string
	isError   bool
	pageLabel string
	busyLabel string
}

// New creates a new status bar component.
func New() Model {
	return Model{}
}

// SetWidth updates the status bar width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetMessage sets a temporary message.
func (m *Model) SetMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

// ClearMessage clears the temporary message.
func (m *Model) ClearMessage() {
	m.message = ""
	m.isError = false
}

// SetPageLabel updates the current page label.
func (m *Model) SetPageLabel(label string) {
	m.pageLabel = strings.ToUpper(strings.TrimSpace(label))
}

// SetBusyLabel shows an in-flight indicator, e.g. "generating" or
// "exporting". Empty clears it.
func (m *Model) SetBusyLabel(label string) {
	m.busyLabel = label
}

// View renders the status bar.
func (m Model) View() string {
	brand := styles.StatusBarBrand.Render(" Outboundly ")

	pageBadge := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(styles.Accent).
		Bold(true).
		Padding(0, 1).
		Render(m.pageLabel)

	busy := ""
	if m.busyLabel != "" {
		busy = lipgloss.NewStyle().
			Foreground(styles.Warning).
			Bold(true).
			Render(" ⟳ " + m.busyLabel + " ")
	}

	helpItems := []string{
		m.renderKey("^G", "generate"),
		m.renderKey("^E", "export"),
		m.renderKey("^S", "sample"),
		m.renderKey("^Y", "copy"),
		m.renderKey("^R", "reset"),
		m.renderKey("^P", "page"),
		m.renderKey("^O", "settings"),
		m.renderKey("^X", "dismiss"),
		m.renderKey("^C", "quit"),
	}
	help := strings.Join(helpItems, " ")

	var msgArea string
	if m.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		if m.isError {
			msgStyle = lipgloss.NewStyle().Foreground(styles.Danger).Bold(true)
		}
		msgArea = msgStyle.Render(" " + m.message + " ")
	}

	leftContent := brand + pageBadge + busy
	rightContent := help
	middleContent := msgArea

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(rightContent)
	middleWidth := lipgloss.Width(middleContent)

	padding := m.width - leftWidth - rightWidth - middleWidth
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	content := leftContent +
		strings.Repeat(" ", leftPad) +
		middleContent +
		strings.Repeat(" ", rightPad) +
		rightContent

	return lipgloss.NewStyle().
		Background(styles.Mantle).
		Foreground(styles.TextMuted).
		Width(m.width).
		Render(content)
}

// renderKey renders a key binding hint.
func (m Model) renderKey(key, desc string) string {
	return styles.StatusBarKey.Render(key) + styles.StatusBarDesc.Render(":"+desc)
}

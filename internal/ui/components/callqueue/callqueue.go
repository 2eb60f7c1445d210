// Package callqueue provides the pending-calls page.
package callqueue

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/ui/styles"
	"github.com/outboundly/outboundly/pkg/textutil"
)

// Model is the call-queue page component.
type Model struct {
	items   []api.CallQueueItem
	cursor  int
	loading bool
	err     error
	width   int
	height  int
}

// New creates an empty call-queue page.
func New() Model {
	return Model{loading: true}
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetLoading marks the page as waiting for data.
func (m *Model) SetLoading() {
	m.loading = true
	m.err = nil
}

// SetItems replaces the queue contents.
func (m *Model) SetItems(items []api.CallQueueItem) {
	m.items = items
	m.loading = false
	m.err = nil
	if m.cursor >= len(items) {
		m.cursor = 0
	}
}

// SetError records a load failure.
func (m *Model) SetError(err error) {
	m.loading = false
	m.err = err
}

// MoveUp moves the selection up.
func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the selection down.
func (m *Model) MoveDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// Current returns the selected entry.
func (m Model) Current() (api.CallQueueItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return api.CallQueueItem{}, false
	}
	return m.items[m.cursor], true
}

// Remove drops an entry by id, keeping the cursor in range.
func (m *Model) Remove(id int64) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.items) && m.cursor > 0 {
		m.cursor = len(m.items) - 1
	}
}

// View renders the page.
func (m Model) View() string {
	title := styles.PanelTitleFocused.Render("☎ Call Queue")

	var body string
	switch {
	case m.loading:
		body = styles.ListItemDim.Render("Loading call queue...")
	case m.err != nil:
		body = lipgloss.NewStyle().Foreground(styles.Danger).
			Render("Could not load the call queue. r retries.")
	case len(m.items) == 0:
		body = styles.ListItemDim.Render("No pending calls. Export a campaign to the call channel to fill this queue.")
	default:
		var b strings.Builder
		for i, item := range m.items {
			line := fmt.Sprintf("P%-2d %-24s %-16s %s",
				item.Priority,
				textutil.Truncate(item.LeadName, 24),
				textutil.Truncate(item.Phone, 16),
				textutil.Truncate(textutil.FirstLine(item.Script), maxScriptWidth(m.width)),
			)
			if i == m.cursor {
				b.WriteString(styles.ListItemSelected.Render("▸ " + line))
			} else {
				b.WriteString(styles.ListItem.Render("  " + line))
			}
			b.WriteString("\n")
		}
		body = b.String()
	}

	help := lipgloss.NewStyle().Foreground(styles.Muted).
		Render("enter dial · d done · s skip · r refresh")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)
}

func maxScriptWidth(width int) int {
	w := width - 52
	if w < 16 {
		w = 16
	}
	return w
}

// Package dashboard provides the read-only stats page.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/ui/styles"
	"github.com/outboundly/outboundly/pkg/textutil"
)

// Model is the dashboard page component.
type Model struct {
	stats    *api.DashboardStats
	runs     []api.PipelineRun
	activity []api.ActivityEntry
	loading  bool
	err      error
	width    int
	height   int
}

// New creates an empty dashboard page.
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

// SetData replaces the dashboard contents.
func (m *Model) SetData(stats *api.DashboardStats, runs []api.PipelineRun, activity []api.ActivityEntry) {
	m.stats = stats
	m.runs = runs
	m.activity = activity
	m.loading = false
	m.err = nil
}

// SetError records a load failure.
func (m *Model) SetError(err error) {
	m.loading = false
	m.err = err
}

// View renders the page.
func (m Model) View() string {
	title := styles.PanelTitleFocused.Render("▦ Dashboard")

	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, title, "",
			styles.ListItemDim.Render("Loading dashboard..."))
	}
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, "",
			lipgloss.NewStyle().Foreground(styles.Danger).
				Render("Could not load the dashboard. r retries."))
	}

	var b strings.Builder

	if m.stats != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextCol).Bold(true).
			Render(fmt.Sprintf("Total campaigns: %d", m.stats.TotalCampaigns)))
		b.WriteString("\n\n")

		b.WriteString(styles.PanelTitle.Render("Exports by channel"))
		b.WriteString("\n")
		if len(m.stats.ExportsByChannel) == 0 {
			b.WriteString(styles.ListItemDim.Render("No exports yet."))
			b.WriteString("\n")
		}
		for _, row := range m.stats.ExportsByChannel {
			b.WriteString(styles.ListItem.Render(
				fmt.Sprintf("%-10s %s %d", row.Channel, bar(row.Count), row.Count)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.runs) > 0 {
		b.WriteString(styles.PanelTitle.Render("Recent pipeline runs"))
		b.WriteString("\n")
		for _, run := range m.runs {
			line := fmt.Sprintf("%s  %-12s %-10s %.1f",
				run.Timestamp.Format("Jan 02 15:04"),
				textutil.Truncate(run.Intent, 12),
				run.Platform,
				run.PriorityScore,
			)
			b.WriteString(styles.ListItem.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.PanelTitle.Render("Recent activity"))
	b.WriteString("\n")
	if len(m.activity) == 0 {
		b.WriteString(styles.ListItemDim.Render("Nothing yet."))
	}
	for _, entry := range m.activity {
		line := fmt.Sprintf("%s  %-9s %-8s %s",
			entry.Timestamp.Format("Jan 02 15:04"),
			entry.Channel,
			entry.Status,
			textutil.Truncate(entry.Destination, destWidth(m.width)),
		)
		b.WriteString(styles.ListItem.Render(line))
		b.WriteString("\n")
	}

	help := lipgloss.NewStyle().Foreground(styles.Muted).Render("r refresh")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", b.String(), help)
}

func bar(count int) string {
	n := count
	if n > 30 {
		n = 30
	}
	return lipgloss.NewStyle().Foreground(styles.Accent).Render(strings.Repeat("█", n))
}

func destWidth(width int) int {
	w := width - 40
	if w < 12 {
		w = 12
	}
	return w
}

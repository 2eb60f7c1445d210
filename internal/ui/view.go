package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/outboundly/outboundly/internal/export"
	"github.com/outboundly/outboundly/internal/generate"
	"github.com/outboundly/outboundly/internal/notify"
	"github.com/outboundly/outboundly/internal/ui/styles"
	"github.com/outboundly/outboundly/pkg/textutil"
)

// View renders the entire application.
func (a App) View() string {
	if a.quitting {
		bye := lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Primary).
			Render("👋 Goodbye from Outboundly!")
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(bye)
	}

	if !a.ready {
		loading := lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Accent).
			Render("⚡ Loading Outboundly...")
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(loading)
	}

	if a.windowTooSmall() {
		msg := fmt.Sprintf("Window too small, need at least %dx%d (current %dx%d)",
			minAppWidth, minAppHeight, a.width, a.height)
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(styles.Warning).
			Render(msg)
	}

	notices := a.renderNotices()
	statusBar := a.statusBar.View()

	bodyHeight := a.height - lipgloss.Height(statusBar)
	if notices != "" {
		bodyHeight -= lipgloss.Height(notices)
	}

	var body string
	switch {
	case a.dialogMode != DialogNone:
		body = a.renderDialog()
	case a.page == PageCallQueue:
		body = a.callQueue.View()
	case a.page == PageDashboard:
		body = a.dashboard.View()
	default:
		body = a.renderCompose(bodyHeight)
	}

	body = lipgloss.NewStyle().
		Width(a.width).
		Height(bodyHeight).
		Render(body)

	sections := []string{body}
	if notices != "" {
		sections = append(sections, notices)
	}
	sections = append(sections, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) renderDialog() string {
	if a.dialogMode == DialogSettings {
		return a.settingsDialog.View()
	}
	return a.exportDialog.View()
}

// renderCompose lays out the draft column and the result column.
func (a App) renderCompose(height int) string {
	leftWidth := a.leftPanelWidth()
	rightWidth := a.width - leftWidth - 4

	left := lipgloss.JoinVertical(lipgloss.Left,
		styles.PanelTitleFocused.Render("✎ Campaign Draft"),
		"",
		a.form.View(),
		"",
		a.renderStepper(),
	)
	leftPanel := styles.FocusedBorderStyle.
		Width(leftWidth).
		Height(height - 2).
		Render(left)

	rightPanel := styles.BorderStyle.
		Width(rightWidth).
		Height(height - 2).
		Render(a.renderResultPanel(rightWidth))

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
}

// renderStepper shows the four pipeline stages under the form.
func (a App) renderStepper() string {
	result := a.store.Draft().Result
	stages := generate.Stages(a.orch.InFlight(), result != nil)

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Pipeline"))
	b.WriteString("\n")
	for _, s := range stages {
		var line string
		switch {
		case s.Done:
			line = styles.StepDone.Render("✓ " + s.Label)
		case s.Active:
			line = styles.StepActive.Render(a.spinner.View() + " " + s.Label)
		default:
			line = styles.StepPending.Render("○ " + s.Label)
		}
		b.WriteString(" " + line + "\n")
	}
	return b.String()
}

// renderResultPanel shows the generated copy and, when open, the export menus.
func (a App) renderResultPanel(width int) string {
	title := styles.PanelTitle.Render("⚡ Generated Campaign")
	result := a.store.Draft().Result

	var body string
	switch {
	case a.orch.InFlight():
		body = styles.ListItemDim.Render(a.spinner.View() + " Generating campaign copy...")
	case result == nil:
		body = styles.ListItemDim.Render("No campaign yet. ctrl+g generates from the draft.")
	default:
		var b strings.Builder
		badge := lipgloss.NewStyle().
			Foreground(styles.Base).
			Background(styles.Accent).
			Padding(0, 1).
			Render(result.Platform)
		b.WriteString(badge)
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.TextCol).
			Render(textutil.Truncate(result.Headline, width-4)))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextCol).Width(width - 4).
			Render(result.Body))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true).
			Render("→ " + result.CTA))
		if result.CampaignID != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
				Render("campaign " + result.CampaignID))
		}
		body = b.String()
	}

	sections := []string{title, "", body}

	if a.disp.State().Phase == export.PhaseMenuOpen {
		sections = append(sections, "", a.renderExportMenu())
	}
	if a.modeMenuOpen {
		sections = append(sections, "", a.renderModeMenu())
	}
	if a.disp.State().Busy() {
		sections = append(sections, "",
			styles.ListItemDim.Render(a.spinner.View()+" Dispatching export..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) renderExportMenu() string {
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Export"))
	b.WriteString("\n")
	for i, entry := range channelMenu {
		if i == a.exportCursor {
			b.WriteString(styles.ListItemSelected.Render("▸ " + entry.Label))
		} else {
			b.WriteString(styles.ListItem.Render("  " + entry.Label))
		}
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("enter select · esc close"))
	return styles.DialogBox.Render(b.String())
}

func (a App) renderModeMenu() string {
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("LinkedIn delivery"))
	b.WriteString("\n")
	for i, entry := range linkedInModeMenu {
		if i == a.linkedinCursor {
			b.WriteString(styles.ListItemSelected.Render("▸ " + entry.Label))
		} else {
			b.WriteString(styles.ListItem.Render("  " + entry.Label))
		}
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("enter select · esc back"))
	return styles.DialogBox.Render(b.String())
}

// renderNotices stacks the active notices above the status bar.
func (a App) renderNotices() string {
	active := a.queue.Active()
	if len(active) == 0 {
		return ""
	}

	lines := make([]string, 0, len(active))
	for _, n := range active {
		style := styles.NoticeSuccess
		if n.Kind == notify.KindError {
			style = styles.NoticeError
		}
		lines = append(lines, style.Render(
			styles.KindDot(n.Kind == notify.KindError)+" "+textutil.Truncate(n.Message, a.width-8)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

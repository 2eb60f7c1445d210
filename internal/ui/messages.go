// Package ui provides the terminal user interface for Outboundly.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/export"
	"github.com/outboundly/outboundly/internal/generate"
	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/notify"
)

// ---------- Generation Messages ----------

// GenerationDoneMsg reports the outcome of a generation request.
type GenerationDoneMsg struct {
	Result *model.GeneratedContent
	Err    error
}

// ---------- Export Messages ----------

// ExportDoneMsg reports that an export dispatch finished. The outcome itself
// went to the notice queue; Ran is false when the confirm was refused.
type ExportDoneMsg struct {
	Channel model.ChannelKey
	Ran     bool
}

// DialedMsg reports that the OS dialer was asked to place a call.
type DialedMsg struct {
	Phone string
	Err   error
}

// ---------- Notice Messages ----------

// NoticesChangedMsg redraws the notice overlay.
type NoticesChangedMsg struct{}

// ---------- Collaborator Messages ----------

// CallQueueLoadedMsg delivers the pending call-queue entries.
type CallQueueLoadedMsg struct {
	Items []api.CallQueueItem
	Err   error
}

// CallStatusUpdatedMsg reports a call-queue status change.
type CallStatusUpdatedMsg struct {
	ID     int64
	Status string
	Err    error
}

// DashboardLoadedMsg delivers the dashboard aggregates.
type DashboardLoadedMsg struct {
	Stats    *api.DashboardStats
	Runs     []api.PipelineRun
	Activity []api.ActivityEntry
	Err      error
}

// SettingsLoadedMsg delivers the backend settings for the settings dialog.
type SettingsLoadedMsg struct {
	Settings *api.Settings
	Err      error
}

// SettingsSavedMsg reports the settings patch outcome.
type SettingsSavedMsg struct {
	Err error
}

// ---------- Command Functions ----------

// submitGeneration runs a single generation request.
func submitGeneration(o *generate.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		result, err := o.Submit(context.Background())
		return GenerationDoneMsg{Result: result, Err: err}
	}
}

// confirmExport runs a single export dispatch. The outcome notice is pushed
// by the dispatcher itself.
func confirmExport(d *export.Dispatcher, content model.GeneratedContent, req model.ExportRequest) tea.Cmd {
	return func() tea.Msg {
		ran := d.Confirm(context.Background(), content, req)
		return ExportDoneMsg{Channel: req.Channel, Ran: ran}
	}
}

// waitForNotices blocks until the notice set changes. Re-issued after every
// NoticesChangedMsg.
func waitForNotices(q *notify.Queue) tea.Cmd {
	return func() tea.Msg {
		<-q.Changed()
		return NoticesChangedMsg{}
	}
}

func loadCallQueue(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := c.CallQueue(context.Background())
		return CallQueueLoadedMsg{Items: items, Err: err}
	}
}

func updateCallStatus(c *api.Client, id int64, status string) tea.Cmd {
	return func() tea.Msg {
		err := c.UpdateCallStatus(context.Background(), id, status)
		return CallStatusUpdatedMsg{ID: id, Status: status, Err: err}
	}
}

func loadDashboard(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := c.Stats(ctx)
		if err != nil {
			return DashboardLoadedMsg{Err: err}
		}
		pipelines, err := c.Pipelines(ctx, 10)
		if err != nil {
			return DashboardLoadedMsg{Stats: stats, Err: err}
		}
		activity, err := c.Activity(ctx, "", 20)
		if err != nil {
			return DashboardLoadedMsg{Stats: stats, Err: err}
		}
		return DashboardLoadedMsg{Stats: stats, Runs: pipelines.Runs, Activity: activity.Entries}
	}
}

func loadSettings(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		settings, err := c.GetSettings(context.Background())
		return SettingsLoadedMsg{Settings: settings, Err: err}
	}
}

func saveSettings(c *api.Client, update api.SettingsUpdate) tea.Cmd {
	return func() tea.Msg {
		_, err := c.UpdateSettings(context.Background(), update)
		return SettingsSavedMsg{Err: err}
	}
}

// openDialer hands a phone number to the OS dial surface.
func openDialer(opener export.URLOpener, url, phone string) tea.Cmd {
	return func() tea.Msg {
		return DialedMsg{Phone: phone, Err: opener.OpenURL(url)}
	}
}

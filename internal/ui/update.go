package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/export"
	"github.com/outboundly/outboundly/internal/generate"
	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/notify"
	"github.com/outboundly/outboundly/internal/surface"
	"github.com/outboundly/outboundly/internal/ui/components/draftform"
	"github.com/outboundly/outboundly/pkg/textutil"
)

// Update handles all messages for the application.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if a.orch.InFlight() || a.disp.State().Busy() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case draftform.FieldChangedMsg:
		a.store.SetField(msg.Field, msg.Value)
		return a, nil

	case GenerationDoneMsg:
		return a.handleGenerationDone(msg)

	case ExportDoneMsg:
		a.exportBusy = false
		a.dialogMode = DialogNone
		a.statusBar.SetBusyLabel("")
		return a, nil

	case DialedMsg:
		if msg.Err != nil {
			a.queue.Push(notify.KindError, "Could not open the dialer.")
			return a, nil
		}
		a.statusBar.SetMessage("Dialing "+msg.Phone, false)
		return a, nil

	case NoticesChangedMsg:
		return a, waitForNotices(a.queue)

	case CallQueueLoadedMsg:
		if msg.Err != nil {
			a.callQueue.SetError(msg.Err)
			return a, nil
		}
		a.callQueue.SetItems(msg.Items)
		return a, nil

	case CallStatusUpdatedMsg:
		if msg.Err != nil {
			a.queue.Push(notify.KindError, "Could not update the call. Please try again.")
			return a, nil
		}
		a.callQueue.Remove(msg.ID)
		return a, nil

	case DashboardLoadedMsg:
		if msg.Err != nil {
			a.dashboard.SetError(msg.Err)
			return a, nil
		}
		a.dashboard.SetData(msg.Stats, msg.Runs, msg.Activity)
		return a, nil

	case SettingsLoadedMsg:
		if msg.Err != nil {
			a.queue.Push(notify.KindError, "Could not load settings.")
			return a, nil
		}
		a.settings = msg.Settings
		a.settingsDialog = newSettingsDialog(msg.Settings)
		a.settingsDialog.SetSize(a.width, a.height)
		a.dialogMode = DialogSettings
		return a, nil

	case SettingsSavedMsg:
		if msg.Err != nil {
			a.queue.Push(notify.KindError, "Could not save settings.")
			return a, nil
		}
		a.queue.Push(notify.KindSuccess, "Settings saved.")
		return a, nil

	case tea.MouseMsg:
		// Any click outside the menus closes them.
		if a.disp.State().Phase == export.PhaseMenuOpen {
			a.disp.CloseMenu()
		}
		if a.modeMenuOpen {
			a.modeMenuOpen = false
			a.disp.Cancel()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// SetSize propagates a terminal resize to every component.
func (a *App) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.statusBar.SetWidth(width)
	a.form.SetWidth(a.leftPanelWidth() - 2)
	a.callQueue.SetSize(width, height-2)
	a.dashboard.SetSize(width, height-2)
	a.exportDialog.SetSize(width, height)
	a.settingsDialog.SetSize(width, height)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keyMap.Quit) {
		a.quitting = true
		return a, tea.Quit
	}

	if a.dialogMode != DialogNone {
		return a.handleDialogKey(msg)
	}

	if a.disp.State().Phase == export.PhaseMenuOpen {
		return a.handleExportMenuKey(msg)
	}

	if a.modeMenuOpen {
		return a.handleModeMenuKey(msg)
	}

	switch {
	case key.Matches(msg, a.keyMap.NextPage):
		return a.nextPage()

	case key.Matches(msg, a.keyMap.Generate):
		return a.startGeneration()

	case key.Matches(msg, a.keyMap.ExportMenu):
		return a.openExportMenu()

	case key.Matches(msg, a.keyMap.ResetDraft):
		a.store.Reset()
		a.form = draftform.New(a.store.Draft())
		a.form.SetWidth(a.leftPanelWidth() - 2)
		a.statusBar.SetMessage("Draft reset.", false)
		return a, nil

	case key.Matches(msg, a.keyMap.CopyResult):
		return a.copyResult()

	case key.Matches(msg, a.keyMap.Sample):
		if a.page != PageCompose {
			return a, nil
		}
		return a, a.form.ApplySample()

	case key.Matches(msg, a.keyMap.DismissNotice):
		if id := a.queue.Oldest(); id != "" {
			a.queue.Dismiss(id)
		}
		return a, nil

	case key.Matches(msg, a.keyMap.Settings):
		return a, loadSettings(a.client)
	}

	return a.handlePageKey(msg)
}

// handlePageKey routes keys that belong to the active page.
func (a App) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.page {
	case PageCompose:
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd

	case PageCallQueue:
		switch {
		case key.Matches(msg, a.keyMap.Refresh):
			a.callQueue.SetLoading()
			return a, loadCallQueue(a.client)
		case key.Matches(msg, a.keyMap.Up):
			a.callQueue.MoveUp()
		case key.Matches(msg, a.keyMap.Down):
			a.callQueue.MoveDown()
		case key.Matches(msg, a.keyMap.Dial):
			if item, ok := a.callQueue.Current(); ok {
				return a, openDialer(a.opener, surface.DialURL(item.Phone), item.Phone)
			}
		case key.Matches(msg, a.keyMap.MarkDone):
			if item, ok := a.callQueue.Current(); ok {
				return a, updateCallStatus(a.client, item.ID, "completed")
			}
		case key.Matches(msg, a.keyMap.Skip):
			if item, ok := a.callQueue.Current(); ok {
				return a, updateCallStatus(a.client, item.ID, "skipped")
			}
		}
		return a, nil

	case PageDashboard:
		if key.Matches(msg, a.keyMap.Refresh) {
			a.dashboard.SetLoading()
			return a, loadDashboard(a.client)
		}
		return a, nil
	}
	return a, nil
}

func (a App) nextPage() (tea.Model, tea.Cmd) {
	a.page = (a.page + 1) % pageCount
	a.statusBar.SetPageLabel(a.pageLabel())
	a.statusBar.ClearMessage()

	switch a.page {
	case PageCallQueue:
		a.callQueue.SetLoading()
		return a, loadCallQueue(a.client)
	case PageDashboard:
		a.dashboard.SetLoading()
		return a, loadDashboard(a.client)
	}
	return a, nil
}

func (a App) startGeneration() (tea.Model, tea.Cmd) {
	draft := a.store.Draft()
	if !generate.CanSubmit(draft) {
		a.statusBar.SetMessage("Add an intent, audience, or context first.", true)
		return a, nil
	}
	if a.orch.InFlight() {
		return a, nil
	}
	a.statusBar.ClearMessage()
	a.statusBar.SetBusyLabel("generating")
	return a, tea.Batch(submitGeneration(a.orch), a.spinner.Tick)
}

func (a App) handleGenerationDone(msg GenerationDoneMsg) (tea.Model, tea.Cmd) {
	a.statusBar.SetBusyLabel("")
	switch {
	case msg.Err == nil:
		a.statusBar.ClearMessage()
	case errors.Is(msg.Err, generate.ErrEmptyDraft):
		a.statusBar.SetMessage("Add an intent, audience, or context first.", true)
	case errors.Is(msg.Err, generate.ErrInFlight):
		// Refused duplicate; the original request is still running.
	default:
		a.queue.Push(notify.KindError, "Generation failed. Please try again.")
	}
	return a, nil
}

func (a App) openExportMenu() (tea.Model, tea.Cmd) {
	if a.page != PageCompose {
		return a, nil
	}
	if a.store.Draft().Result == nil {
		a.statusBar.SetMessage("Generate a campaign before exporting.", true)
		return a, nil
	}
	if a.disp.OpenMenu() {
		a.exportCursor = 0
	}
	return a, nil
}

func (a App) copyResult() (tea.Model, tea.Cmd) {
	result := a.store.Draft().Result
	if result == nil {
		a.statusBar.SetMessage("Nothing to copy yet.", true)
		return a, nil
	}
	if a.copyText(textutil.JoinBlocks(result.Headline, result.Body, result.CTA)) {
		a.queue.Push(notify.KindSuccess, "Copy placed on clipboard.")
	} else {
		a.queue.Push(notify.KindError, "Could not copy to clipboard.")
	}
	return a, nil
}

// handleExportMenuKey drives the channel dropdown.
func (a App) handleExportMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keyMap.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
		return a, nil
	case key.Matches(msg, a.keyMap.Down):
		if a.exportCursor < len(channelMenu)-1 {
			a.exportCursor++
		}
		return a, nil
	case key.Matches(msg, a.keyMap.Confirm):
		entry := channelMenu[a.exportCursor]
		if !a.disp.Select(entry.Key) {
			return a, nil
		}
		if entry.Key == model.ExportLinkedIn {
			a.modeMenuOpen = true
			a.linkedinCursor = 0
			return a, nil
		}
		a.openConfirmDialog(entry.Key)
		return a, nil
	}

	// Anything else is an outside interaction.
	a.disp.CloseMenu()
	return a, nil
}

// handleModeMenuKey drives the LinkedIn delivery-mode sub-menu.
func (a App) handleModeMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keyMap.Up):
		if a.linkedinCursor > 0 {
			a.linkedinCursor--
		}
		return a, nil
	case key.Matches(msg, a.keyMap.Down):
		if a.linkedinCursor < len(linkedInModeMenu)-1 {
			a.linkedinCursor++
		}
		return a, nil
	case key.Matches(msg, a.keyMap.Confirm):
		a.modeMenuOpen = false
		mode := linkedInModeMenu[a.linkedinCursor].Mode
		if mode == model.LinkedInAutomated {
			a.pendingMode = mode
			a.openConfirmDialog(model.ExportLinkedIn)
			return a, nil
		}
		// Manual and feed-share modes need no further input.
		req := model.ExportRequest{
			Channel:  model.ExportLinkedIn,
			LinkedIn: &model.LinkedInExport{Mode: mode},
		}
		return a.startDispatch(req)
	}

	a.modeMenuOpen = false
	a.disp.Cancel()
	return a, nil
}

// openConfirmDialog builds and shows the confirmation form for a channel.
func (a *App) openConfirmDialog(ch model.ChannelKey) {
	a.exportDialog = newExportDialog(ch)
	a.exportDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogExportConfirm
}

func (a App) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.dialogMode {
	case DialogExportConfirm:
		var cmd tea.Cmd
		a.exportDialog, cmd = a.exportDialog.Update(msg)
		if a.exportDialog.IsCancelled() {
			a.dialogMode = DialogNone
			a.disp.Cancel()
			return a, nil
		}
		if a.exportDialog.IsSubmitted() && !a.exportBusy {
			req := a.requestFromDialog()
			a.exportBusy = true
			a.exportDialog.SetBusy(true)
			return a.startDispatch(req)
		}
		return a, cmd

	case DialogSettings:
		var cmd tea.Cmd
		a.settingsDialog, cmd = a.settingsDialog.Update(msg)
		if a.settingsDialog.IsCancelled() {
			a.dialogMode = DialogNone
			a.settings = nil
			return a, nil
		}
		if a.settingsDialog.IsSubmitted() {
			update := a.settingsUpdateFromDialog()
			a.dialogMode = DialogNone
			a.settings = nil
			return a, saveSettings(a.client, update)
		}
		return a, cmd
	}
	return a, nil
}

// startDispatch hands a confirmed export to the dispatcher.
func (a App) startDispatch(req model.ExportRequest) (tea.Model, tea.Cmd) {
	result := a.store.Draft().Result
	if result == nil {
		// The result was reset out from under the menu.
		a.disp.Cancel()
		a.dialogMode = DialogNone
		a.exportBusy = false
		return a, nil
	}
	a.log.Info("export confirmed", zap.String("channel", string(req.Channel)))
	a.statusBar.SetBusyLabel(fmt.Sprintf("exporting to %s", req.Channel))
	return a, tea.Batch(confirmExport(a.disp, *result, req), a.spinner.Tick)
}

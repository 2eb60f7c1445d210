package ui

import (
	"strconv"
	"strings"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/ui/components/dialog"
)

const defaultCallPriority = 5

// leftPanelWidth is the compose page's draft column width.
func (a App) leftPanelWidth() int {
	w := a.width * 2 / 5
	if w < 34 {
		w = 34
	}
	return w
}

// newExportDialog builds the confirmation form for a channel. Field order is
// relied on by requestFromDialog.
func newExportDialog(ch model.ChannelKey) dialog.InputDialog {
	switch ch {
	case model.ExportLinkedIn:
		return dialog.NewInputDialog("Automated LinkedIn message", []dialog.InputField{
			{Label: "Recipient name", Placeholder: "optional"},
		})
	case model.ExportEmail:
		return dialog.NewInputDialog("Send as Email", []dialog.InputField{
			{Label: "Recipient", Placeholder: "prospect@example.com"},
			{Label: "Subject", Placeholder: "defaults to the generated headline"},
		})
	case model.ExportCall:
		return dialog.NewInputDialog("Push to Call Queue", []dialog.InputField{
			{Label: "Lead name", Placeholder: "e.g. Dana Miles"},
			{Label: "Phone", Placeholder: "+44 20 1234 5678"},
			{Label: "Priority 1-10", Value: strconv.Itoa(defaultCallPriority)},
		})
	}
	return dialog.NewInputDialog("Export", nil)
}

// requestFromDialog reads the export dialog back into a request for the
// currently selected channel.
func (a App) requestFromDialog() model.ExportRequest {
	ch := a.disp.State().Channel
	req := model.ExportRequest{Channel: ch}

	switch ch {
	case model.ExportLinkedIn:
		req.LinkedIn = &model.LinkedInExport{
			Mode:          a.pendingMode,
			RecipientName: strings.TrimSpace(a.exportDialog.Value(0)),
		}
	case model.ExportEmail:
		req.Email = &model.EmailExport{
			Recipient: strings.TrimSpace(a.exportDialog.Value(0)),
			Subject:   strings.TrimSpace(a.exportDialog.Value(1)),
		}
	case model.ExportCall:
		req.Call = &model.CallExport{
			LeadName: strings.TrimSpace(a.exportDialog.Value(0)),
			Phone:    strings.TrimSpace(a.exportDialog.Value(1)),
			Priority: parsePriority(a.exportDialog.Value(2)),
		}
	}
	return req
}

// parsePriority clamps a call priority into 1-10, falling back to the default
// on junk input.
func parsePriority(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultCallPriority
	}
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

// newSettingsDialog seeds the settings form from the backend values.
func newSettingsDialog(s *api.Settings) dialog.InputDialog {
	return dialog.NewInputDialog("Settings", []dialog.InputField{
		{Label: "LLM model", Value: s.DefaultLLMModel},
		{Label: "SMTP host", Value: s.SMTPHost},
		{Label: "SMTP port", Value: strconv.Itoa(s.SMTPPort)},
		{Label: "SMTP username", Value: s.SMTPUsername},
		{Label: "SMTP password", Placeholder: "leave blank to keep current"},
		{Label: "LinkedIn webhook URL", Value: s.LinkedInWebhookURL},
	})
}

// settingsUpdateFromDialog builds the PATCH payload. The password is only sent
// when the user typed one.
func (a App) settingsUpdateFromDialog() api.SettingsUpdate {
	modelName := strings.TrimSpace(a.settingsDialog.Value(0))
	host := strings.TrimSpace(a.settingsDialog.Value(1))
	username := strings.TrimSpace(a.settingsDialog.Value(3))
	webhook := strings.TrimSpace(a.settingsDialog.Value(5))

	port := 0
	if n, err := strconv.Atoi(strings.TrimSpace(a.settingsDialog.Value(2))); err == nil {
		port = n
	} else if a.settings != nil {
		port = a.settings.SMTPPort
	}

	update := api.SettingsUpdate{
		DefaultLLMModel:    &modelName,
		SMTPHost:           &host,
		SMTPPort:           &port,
		SMTPUsername:       &username,
		LinkedInWebhookURL: &webhook,
	}
	if pw := a.settingsDialog.Value(4); pw != "" {
		update.SMTPPassword = &pw
	}
	return update
}

// Package draftform provides the campaign draft editing form.
package draftform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/ui/styles"
)

// FieldChangedMsg is emitted whenever the user edits a draft field. The app
// forwards it to the draft store.
type FieldChangedMsg struct {
	Field model.DraftField
	Value string
}

// Sample is a canned campaign brief the user can drop into the context field.
type Sample struct {
	Label string
	Text  string
}

// Samples lists the built-in campaign briefs.
var Samples = []Sample{
	{
		Label: "Outbound Sales",
		Text:  "Reach out to early-stage AI startup founders in London about our new developer analytics copilot. Goal is to book a 15-minute intro call next week. Tone should be direct and confident.",
	},
	{
		Label: "Product Launch",
		Text:  "Announce the launch of our AI-powered content generation tool to our existing B2B SaaS customer base. Highlight the time-saving benefits and invite them to a live demo webinar.",
	},
	{
		Label: "Follow-up Nudge",
		Text:  "Follow up with a prospect in fintech who attended our last webinar but has not booked a demo yet. Keep it warm, reference their industry pain points around compliance automation.",
	},
	{
		Label: "Support Outreach",
		Text:  "Check in with a customer who submitted a support ticket 3 days ago about an integration issue. The issue is now resolved. Re-engage them and offer a success call.",
	},
}

// Field positions within the form.
const (
	fieldIntent = iota
	fieldAudience
	fieldUrgency
	fieldChannel
	fieldContext
	fieldCount
)

// Model is the draft form component.
type Model struct {
	intent   textinput.Model
	audience textinput.Model
	context  textarea.Model

	urgency model.Urgency
	channel model.Channel

	focus     int
	sampleIdx int
	width     int
}

// New creates a form seeded from the given draft.
func New(d model.CampaignDraft) Model {
	intent := textinput.New()
	intent.Placeholder = "e.g. book intro calls for next week"
	intent.CharLimit = 256
	intent.SetValue(d.Intent)
	intent.Focus()

	audience := textinput.New()
	audience.Placeholder = "e.g. AI startup founders in London"
	audience.CharLimit = 256
	audience.SetValue(d.Audience)

	ctx := textarea.New()
	ctx.Placeholder = "Describe your audience and intent. The pipeline handles the rest."
	ctx.SetValue(d.Context)
	ctx.SetHeight(5)
	ctx.ShowLineNumbers = false

	return Model{
		intent:    intent,
		audience:  audience,
		context:   ctx,
		urgency:   d.Urgency,
		channel:   d.Channel,
		sampleIdx: -1,
	}
}

// SetWidth resizes the form inputs.
func (m *Model) SetWidth(width int) {
	m.width = width
	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	m.intent.Width = inner
	m.audience.Width = inner
	m.context.SetWidth(inner)
}

// ApplySample fills the context field with the next canned brief and reports
// the change.
func (m *Model) ApplySample() tea.Cmd {
	m.sampleIdx = (m.sampleIdx + 1) % len(Samples)
	text := Samples[m.sampleIdx].Text
	m.context.SetValue(text)
	return changed(model.FieldContext, text)
}

// Editing reports whether a free-text input currently has focus, meaning
// printable keys belong to the form.
func (m Model) Editing() bool {
	return m.focus == fieldIntent || m.focus == fieldAudience || m.focus == fieldContext
}

// Update handles form input and emits FieldChangedMsg commands on edits.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			if m.focus == fieldContext && (key.String() == "up" || key.String() == "down") {
				// Arrow keys move the cursor inside the textarea.
				break
			}
			if key.String() == "tab" || key.String() == "down" {
				m.focus = (m.focus + 1) % fieldCount
			} else {
				m.focus = (m.focus + fieldCount - 1) % fieldCount
			}
			m.syncFocus()
			return m, nil

		case "left", "right":
			forward := key.String() == "right"
			switch m.focus {
			case fieldUrgency:
				m.urgency = cycleUrgency(m.urgency, forward)
				return m, changed(model.FieldUrgency, string(m.urgency))
			case fieldChannel:
				m.channel = cycleChannel(m.channel, forward)
				return m, changed(model.FieldChannel, string(m.channel))
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldIntent:
		before := m.intent.Value()
		m.intent, cmd = m.intent.Update(msg)
		if v := m.intent.Value(); v != before {
			return m, tea.Batch(cmd, changed(model.FieldIntent, v))
		}
	case fieldAudience:
		before := m.audience.Value()
		m.audience, cmd = m.audience.Update(msg)
		if v := m.audience.Value(); v != before {
			return m, tea.Batch(cmd, changed(model.FieldAudience, v))
		}
	case fieldContext:
		before := m.context.Value()
		m.context, cmd = m.context.Update(msg)
		if v := m.context.Value(); v != before {
			return m, tea.Batch(cmd, changed(model.FieldContext, v))
		}
	}
	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderLabel("Intent", fieldIntent))
	b.WriteString("\n")
	b.WriteString(m.intent.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Target Audience", fieldAudience))
	b.WriteString("\n")
	b.WriteString(m.audience.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Urgency", fieldUrgency))
	b.WriteString("  ")
	b.WriteString(m.renderCycle(string(m.urgency), m.focus == fieldUrgency))
	b.WriteString("\n")

	b.WriteString(m.renderLabel("Preferred Channel", fieldChannel))
	b.WriteString("  ")
	b.WriteString(m.renderCycle(string(m.channel), m.focus == fieldChannel))
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Context", fieldContext))
	if m.sampleIdx >= 0 {
		hint := lipgloss.NewStyle().Foreground(styles.Muted).
			Render(fmt.Sprintf("  (sample: %s)", Samples[m.sampleIdx].Label))
		b.WriteString(hint)
	}
	b.WriteString("\n")
	b.WriteString(m.context.View())

	return b.String()
}

func (m Model) renderLabel(label string, field int) string {
	style := lipgloss.NewStyle().Foreground(styles.TextMuted)
	if m.focus == field {
		style = lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	}
	return style.Render(label)
}

func (m Model) renderCycle(value string, focused bool) string {
	style := lipgloss.NewStyle().Foreground(styles.TextCol)
	if focused {
		style = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
		return style.Render("◂ " + value + " ▸")
	}
	return style.Render("  " + value)
}

func (m *Model) syncFocus() {
	m.intent.Blur()
	m.audience.Blur()
	m.context.Blur()
	switch m.focus {
	case fieldIntent:
		m.intent.Focus()
	case fieldAudience:
		m.audience.Focus()
	case fieldContext:
		m.context.Focus()
	}
}

func changed(field model.DraftField, value string) tea.Cmd {
	return func() tea.Msg {
		return FieldChangedMsg{Field: field, Value: value}
	}
}

func cycleUrgency(current model.Urgency, forward bool) model.Urgency {
	return cycle(model.Urgencies(), current, forward)
}

func cycleChannel(current model.Channel, forward bool) model.Channel {
	return cycle(model.Channels(), current, forward)
}

// cycle steps through options, tolerating a current value that isn't in the
// list (stale persisted state) by restarting at the first option.
func cycle[T comparable](options []T, current T, forward bool) T {
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		return options[0]
	}
	if forward {
		return options[(idx+1)%len(options)]
	}
	return options[(idx+len(options)-1)%len(options)]
}

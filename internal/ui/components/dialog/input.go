// Package dialog provides modal dialog components for Outboundly.
package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputField represents a single input field in the dialog.
type InputField struct {
	Label       string
	Placeholder string
	Value       string
	Options     []string
}

// InputDialog is a modal dialog for text input.
type InputDialog struct {
	title             string
	inputs            []textinput.Model
	labels            []string
	optionCompEnabled []bool
	options           [][]string
	focusIndex        int
	width             int
	height            int
	submitted         bool
	cancelled         bool
	styles            InputStyles
	busy              bool

	suggestions     []string
	suggestionIndex int
	showSuggestions bool
}

// InputStyles defines the visual appearance of the dialog.
type InputStyles struct {
	Box          lipgloss.Style
	Title        lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Help         lipgloss.Style
}

// DefaultInputStyles returns the default dialog styles.
func DefaultInputStyles() InputStyles {
	purple := lipgloss.Color("#7C3AED")
	cyan := lipgloss.Color("#06B6D4")
	pink := lipgloss.Color("#EC4899")
	surface := lipgloss.Color("#1E1E2E")
	surfaceLight := lipgloss.Color("#313244")
	textMuted := lipgloss.Color("#6C7086")

	return InputStyles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(purple).
			Background(surface).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(cyan).
			Background(surface).
			Padding(0, 1).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(textMuted),

		LabelFocused: lipgloss.NewStyle().
			Foreground(pink).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(surfaceLight).
			Padding(0, 1).
			MarginBottom(1),

		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(purple).
			Padding(0, 1).
			MarginBottom(1),

		Help: lipgloss.NewStyle().
			Foreground(textMuted).
			MarginTop(1),
	}
}

// NewInputDialog creates a new input dialog.
func NewInputDialog(title string, fields []InputField) InputDialog {
	inputs := make([]textinput.Model, len(fields))
	labels := make([]string, len(fields))
	optionCompEnabled := make([]bool, len(fields))
	options := make([][]string, len(fields))

	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.SetValue(f.Value)
		ti.CharLimit = 256
		ti.Width = 40

		if i == 0 {
			ti.Focus()
		}

		inputs[i] = ti
		labels[i] = f.Label
		if len(f.Options) > 0 {
			optionCompEnabled[i] = true
			options[i] = append([]string{}, f.Options...)
		}
	}

	return InputDialog{
		title:             title,
		inputs:            inputs,
		labels:            labels,
		optionCompEnabled: optionCompEnabled,
		options:           options,
		styles:            DefaultInputStyles(),
	}
}

// SetSize updates the dialog dimensions.
func (d *InputDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetBusy disables confirm/cancel while an action is in flight.
func (d *InputDialog) SetBusy(busy bool) {
	d.busy = busy
}

// Update handles input dialog messages.
func (d InputDialog) Update(msg tea.Msg) (InputDialog, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			// Cycle suggestions if any are showing, otherwise move on.
			if d.hasOptions() && d.showSuggestions && len(d.suggestions) > 0 {
				d.suggestionIndex = (d.suggestionIndex + 1) % len(d.suggestions)
				d.inputs[d.focusIndex].SetValue(d.suggestions[d.suggestionIndex])
				d.inputs[d.focusIndex].CursorEnd()
				return d, nil
			}
			d.focusIndex = (d.focusIndex + 1) % len(d.inputs)
			d.clearSuggestions()
			return d, d.updateFocus()

		case "shift+tab":
			if d.hasOptions() && d.showSuggestions && len(d.suggestions) > 0 {
				d.suggestionIndex--
				if d.suggestionIndex < 0 {
					d.suggestionIndex = len(d.suggestions) - 1
				}
				d.inputs[d.focusIndex].SetValue(d.suggestions[d.suggestionIndex])
				d.inputs[d.focusIndex].CursorEnd()
				return d, nil
			}
			d.focusIndex--
			if d.focusIndex < 0 {
				d.focusIndex = len(d.inputs) - 1
			}
			d.clearSuggestions()
			return d, d.updateFocus()

		case "down":
			d.focusIndex = (d.focusIndex + 1) % len(d.inputs)
			d.clearSuggestions()
			return d, d.updateFocus()

		case "up":
			d.focusIndex--
			if d.focusIndex < 0 {
				d.focusIndex = len(d.inputs) - 1
			}
			d.clearSuggestions()
			return d, d.updateFocus()

		case "enter":
			if !d.busy {
				d.submitted = true
			}
			return d, nil

		case "esc":
			if d.showSuggestions {
				d.clearSuggestions()
				return d, nil
			}
			if !d.busy {
				d.cancelled = true
			}
			return d, nil
		}
	}

	// Update focused input
	var cmd tea.Cmd
	d.inputs[d.focusIndex], cmd = d.inputs[d.focusIndex].Update(msg)

	if d.hasOptions() {
		d.suggestions = d.matchOptions(d.inputs[d.focusIndex].Value())
		d.suggestionIndex = 0
		d.showSuggestions = len(d.suggestions) > 0
	}

	return d, cmd
}

// updateFocus sets focus to the correct input.
func (d *InputDialog) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(d.inputs))
	for i := range d.inputs {
		if i == d.focusIndex {
			cmds[i] = d.inputs[i].Focus()
		} else {
			d.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

// View renders the dialog.
func (d InputDialog) View() string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render("✨ " + d.title))
	b.WriteString("\n\n")

	for i, input := range d.inputs {
		labelStyle := d.styles.Label
		inputStyle := d.styles.Input
		if i == d.focusIndex {
			labelStyle = d.styles.LabelFocused
			inputStyle = d.styles.InputFocused
		}

		b.WriteString(labelStyle.Render(d.labels[i]))
		b.WriteString("\n")
		b.WriteString(inputStyle.Render(input.View()))
		b.WriteString("\n")

		if i == d.focusIndex && d.showSuggestions && len(d.suggestions) > 0 {
			suggestionStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6C7086")).
				PaddingLeft(2)
			selectedStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color("#06B6D4")).
				Bold(true).
				PaddingLeft(2)

			maxShow := 5
			if len(d.suggestions) < maxShow {
				maxShow = len(d.suggestions)
			}
			for j := 0; j < maxShow; j++ {
				if j == d.suggestionIndex {
					b.WriteString(selectedStyle.Render("→ " + d.suggestions[j]))
				} else {
					b.WriteString(suggestionStyle.Render("  " + d.suggestions[j]))
				}
				b.WriteString("\n")
			}
		}
	}

	helpText := "Enter: Confirm • Esc: Cancel"
	if d.busy {
		helpText = "Dispatching…"
	} else if d.hasOptions() {
		helpText = "Tab: Cycle suggestions • Enter: Confirm • Esc: Cancel"
	}
	b.WriteString(d.styles.Help.Render(helpText))

	content := d.styles.Box.Render(b.String())

	// Center in screen
	if d.width > 0 && d.height > 0 {
		boxWidth := lipgloss.Width(content)
		boxHeight := lipgloss.Height(content)
		padX := (d.width - boxWidth) / 2
		padY := (d.height - boxHeight) / 2

		if padX < 0 {
			padX = 0
		}
		if padY < 0 {
			padY = 0
		}

		content = lipgloss.NewStyle().
			MarginLeft(padX).
			MarginTop(padY).
			Render(content)
	}

	return content
}

// IsSubmitted returns true if the user submitted the dialog.
func (d InputDialog) IsSubmitted() bool {
	return d.submitted
}

// IsCancelled returns true if the user cancelled the dialog.
func (d InputDialog) IsCancelled() bool {
	return d.cancelled
}

// Values returns all input values.
func (d InputDialog) Values() []string {
	values := make([]string, len(d.inputs))
	for i, input := range d.inputs {
		values[i] = input.Value()
	}
	return values
}

// Value returns the value of the input at the given index.
func (d InputDialog) Value(index int) string {
	if index < 0 || index >= len(d.inputs) {
		return ""
	}
	return d.inputs[index].Value()
}

func (d *InputDialog) clearSuggestions() {
	d.showSuggestions = false
	d.suggestions = nil
	d.suggestionIndex = 0
}

func (d *InputDialog) hasOptions() bool {
	if d.focusIndex < 0 || d.focusIndex >= len(d.inputs) {
		return false
	}
	return d.optionCompEnabled[d.focusIndex]
}

func (d *InputDialog) matchOptions(input string) []string {
	opts := d.options[d.focusIndex]
	if len(opts) == 0 {
		return nil
	}
	if input == "" {
		return opts
	}
	lower := strings.ToLower(input)
	matches := make([]string, 0, len(opts))
	for _, opt := range opts {
		if strings.HasPrefix(strings.ToLower(opt), lower) {
			matches = append(matches, opt)
		}
	}
	if len(matches) == 0 {
		for _, opt := range opts {
			if strings.Contains(strings.ToLower(opt), lower) {
				matches = append(matches, opt)
			}
		}
	}
	return matches
}

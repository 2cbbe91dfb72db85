package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Pathfinder styling and an inline
// validation message.
type TextInput struct {
	Model   textinput.Model
	Numeric bool
	problem string
}

// NewTextInput creates a new styled text input holding value. Numeric
// inputs accept only digits and a decimal point.
func NewTextInput(placeholder, value string, numeric bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
		ti.SetWidth(maxWidth)
	}

	return TextInput{
		Model:   ti,
		Numeric: numeric,
	}
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Numeric {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && (key[0] < '0' || key[0] > '9') && key[0] != '.' {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input followed by its validation message, if any.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.problem != "" {
		view += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.problem)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetProblem shows msg next to the input. An empty msg clears it.
func (t *TextInput) SetProblem(msg string) {
	t.problem = msg
}

// Problem returns the validation message shown, if any.
func (t TextInput) Problem() string {
	return t.problem
}

// Package input is the single-line question box under the message list.
package input

import (
	"strings"

	"knowva_cli/pkg/ui/styles"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Placeholder is shown while the box is empty.
const Placeholder = "Ask a question..."

const (
	// boxChrome is the border plus padding around the text field.
	boxChrome = 4
	// defaultWidth is used until the first window size is known.
	defaultWidth = 40
)

// Model holds the text the user has typed but not yet submitted.
type Model struct {
	textInput textinput.Model
	disabled  bool
	width     int
}

// New creates a focused, enabled input.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "> "

	s := ti.Styles()
	s.Focused.Prompt = styles.PromptStyle
	s.Blurred.Prompt = styles.PlaceholderStyle
	s.Focused.Placeholder = styles.PlaceholderStyle
	s.Blurred.Placeholder = styles.PlaceholderStyle
	s.Focused.Text = styles.TextStyle
	s.Blurred.Text = styles.PlaceholderStyle
	ti.SetStyles(s)

	ti.Focus()
	m := Model{textInput: ti}
	m.SetWidth(defaultWidth)
	return m
}

// Init returns the cursor blink command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes msg to the text field. Everything is dropped while disabled.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.disabled {
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// Submit returns the trimmed text and clears the field. Blank text is not
// submitted and is left in place.
func (m *Model) Submit() (string, bool) {
	text := strings.TrimSpace(m.textInput.Value())
	if text == "" {
		return "", false
	}
	m.textInput.Reset()
	return text, true
}

// SetDisabled blurs the field while a request is pending and focuses it again
// afterwards.
func (m *Model) SetDisabled(disabled bool) tea.Cmd {
	m.disabled = disabled
	if disabled {
		m.textInput.Blur()
		return nil
	}
	return m.textInput.Focus()
}

// Disabled reports whether the field currently ignores input.
func (m Model) Disabled() bool {
	return m.disabled
}

// Value returns the uncommitted text.
func (m Model) Value() string {
	return m.textInput.Value()
}

// SetValue replaces the uncommitted text.
func (m *Model) SetValue(s string) {
	m.textInput.SetValue(s)
}

// SetWidth sizes the box to width cells including its border.
func (m *Model) SetWidth(width int) {
	m.width = width
	field := width - boxChrome - lipgloss.Width(m.textInput.Prompt) - 1
	m.textInput.SetWidth(max(field, 1))
}

// Height is the number of rows the box occupies.
func (m Model) Height() int {
	return 3
}

// View renders the framed input.
func (m Model) View() string {
	style := styles.InputBoxStyle
	if m.disabled {
		style = styles.InputBoxDisabledStyle
	}
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(m.textInput.View())
}

package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EditorSubmitMsg is sent when the user presses Enter on a non-blank question.
type EditorSubmitMsg struct {
	Value string
}

// EditModel wraps the question text area.
type EditModel struct {
	textarea textarea.Model
	width    int
	disabled bool
}

// NewEditModel creates the question input.
func NewEditModel() EditModel {
	ta := textarea.New()
	ta.Placeholder = "Type a question from the journalist..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 2000

	ta.SetWidth(30)
	ta.SetHeight(3)

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.ShowLineNumbers = false

	// Enter submits
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return EditModel{
		textarea: ta,
		width:    30,
	}
}

// Init starts the cursor blink.
func (m EditModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles key input. Enter on blank or whitespace-only text does nothing.
func (m EditModel) Update(msg tea.Msg) (EditModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if m.disabled {
			return m, nil
		}
		value := m.textarea.Value()
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return EditorSubmitMsg{Value: value}
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the text area.
func (m EditModel) View() string {
	return m.textarea.View()
}

// SetWidth resizes the text area.
func (m *EditModel) SetWidth(width int) {
	m.width = width
	m.textarea.SetWidth(width)
}

// SetDisabled blocks submission while a response is being generated.
func (m *EditModel) SetDisabled(disabled bool) {
	m.disabled = disabled
}

// Disabled reports whether submission is blocked.
func (m EditModel) Disabled() bool {
	return m.disabled
}

// Value returns the current text.
func (m EditModel) Value() string {
	return m.textarea.Value()
}

// SetValue replaces the current text.
func (m *EditModel) SetValue(s string) {
	m.textarea.SetValue(s)
}

// Focus focuses the text area
func (m *EditModel) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes focus
func (m *EditModel) Blur() {
	m.textarea.Blur()
}

// Height returns the text area height.
func (m EditModel) Height() int {
	return m.textarea.Height()
}

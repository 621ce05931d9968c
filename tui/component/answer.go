package component

import (
	"professor/tui/component/renderer"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AnswerModel shows the latest reply in a scrollable info box.
type AnswerModel struct {
	viewport viewport.Model
	question string
	answer   string
	err      error
	width    int
	height   int

	styles   *renderer.Styles
	renderer *renderer.AnswerRenderer
}

// NewAnswerModel creates an empty answer box.
func NewAnswerModel() AnswerModel {
	styles := renderer.DefaultStyles()
	m := AnswerModel{
		viewport: viewport.New(30, 5),
		styles:   styles,
		renderer: renderer.NewAnswerRenderer(styles),
		width:    30,
		height:   5,
	}
	m.refresh()
	return m
}

// Init does nothing.
func (m AnswerModel) Init() tea.Cmd {
	return nil
}

// Update scrolls the box.
func (m AnswerModel) Update(msg tea.Msg) (AnswerModel, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		switch mouse.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.ScrollUp(3)
		case tea.MouseButtonWheelDown:
			m.viewport.ScrollDown(3)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the bordered box.
func (m AnswerModel) View() string {
	return m.styles.Info.Render(m.viewport.View())
}

// SetAnswer replaces the displayed reply and clears any error.
func (m *AnswerModel) SetAnswer(question, answer string) {
	m.question = question
	m.answer = answer
	m.err = nil
	m.refresh()
	m.viewport.GotoTop()
}

// SetError displays err in place of a reply.
func (m *AnswerModel) SetError(err error) {
	m.err = err
	m.refresh()
	m.viewport.GotoTop()
}

// Answer returns the raw reply text.
func (m AnswerModel) Answer() string {
	return m.answer
}

// Err returns the displayed error, if any.
func (m AnswerModel) Err() error {
	return m.err
}

// SetSize resizes the box, border included.
func (m *AnswerModel) SetSize(width, height int) {
	frameW, frameH := m.styles.Info.GetFrameSize()
	m.width = max(width-frameW, 1)
	m.height = max(height-frameH, 1)

	m.viewport.Width = m.width
	m.viewport.Height = m.height
	m.renderer.SetViewportWidth(m.width)
	m.refresh()
}

func (m *AnswerModel) refresh() {
	if m.err != nil {
		m.viewport.SetContent(m.renderer.RenderError(m.err))
		return
	}
	m.viewport.SetContent(m.renderer.Render(m.question, m.answer))
}

// Package form is the single-question terminal form: a text area, a status
// line and an info box holding the professor's reply.
package form

import (
	"context"

	"professor/llm/pipeline"
	"professor/pubsub"
	"professor/tui/component"
	"professor/tui/component/renderer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// Title is the page header.
	Title = "Professor response generator 🐦"
	// Label sits above the question input.
	Label = "What would like to ask the professor?"
)

// Responder drafts a reply to one question.
type Responder interface {
	Respond(ctx context.Context, question string) (string, error)
}

type answerMsg struct {
	question string
	answer   string
	err      error
}

// Model is the form's bubbletea model.
type Model struct {
	edit   component.EditModel
	status component.StatusModel
	answer component.AnswerModel
	styles *renderer.Styles

	responder  Responder
	sub        <-chan pubsub.Event[pipeline.Progress]
	ctx        context.Context
	generating bool

	width  int
	height int
}

// New creates the form. events may be nil when no progress stream is available.
func New(ctx context.Context, responder Responder, events pubsub.Subscriber[pipeline.Progress]) Model {
	var sub <-chan pubsub.Event[pipeline.Progress]
	if events != nil {
		sub = events.Subscribe(ctx)
	}

	return Model{
		edit:      component.NewEditModel(),
		status:    component.NewStatusModel(),
		answer:    component.NewAnswerModel(),
		styles:    renderer.DefaultStyles(),
		responder: responder,
		sub:       sub,
		ctx:       ctx,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.edit.Init(),
		m.status.Init(),
		m.answer.Init(),
		m.waitForProgress(),
	)
}

func (m Model) waitForProgress() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-m.sub
		if !ok {
			return nil
		}
		return event
	}
}

func (m Model) respond(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.responder.Respond(m.ctx, question)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	case component.EditorSubmitMsg:
		if m.generating || m.responder == nil {
			return m, nil
		}
		m.generating = true
		m.edit.SetDisabled(true)
		m.status, cmd = m.status.Start()
		return m, tea.Batch(cmd, m.respond(msg.Value))

	case answerMsg:
		m.generating = false
		m.edit.SetDisabled(false)
		if msg.err != nil {
			m.answer.SetError(msg.err)
			m.status = m.status.Stop("Failed")
		} else {
			m.answer.SetAnswer(msg.question, msg.answer)
			m.status = m.status.Stop("Ready")
		}
		return m, nil

	case pubsub.Event[pipeline.Progress]:
		cmds = append(cmds, m.waitForProgress())
		m.status, cmd = m.status.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	m.edit, cmd = m.edit.Update(msg)
	cmds = append(cmds, cmd)

	m.status, cmd = m.status.Update(msg)
	cmds = append(cmds, cmd)

	m.answer, cmd = m.answer.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) layout() {
	headerHeight := lipgloss.Height(m.header())
	statusHeight := lipgloss.Height(m.status.View())
	editHeight := m.edit.Height()

	m.edit.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.answer.SetSize(m.width, m.height-headerHeight-editHeight-statusHeight)
}

func (m Model) header() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.Title.Render(Title),
		m.styles.Label.Render(Label),
	)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		m.edit.View(),
		m.status.View(),
		m.answer.View(),
	)
}

// Answer returns the last reply exactly as the model produced it.
func (m Model) Answer() string {
	return m.answer.Answer()
}

// Err returns the error of the last request, if it failed.
func (m Model) Err() error {
	return m.answer.Err()
}

// Generating reports whether a request is in flight.
func (m Model) Generating() bool {
	return m.generating
}

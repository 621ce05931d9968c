package component

import (
	"fmt"

	"professor/llm/pipeline"
	"professor/pubsub"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GeneratingText is shown while a reply is being drafted.
const GeneratingText = "Generating the Professor's message..."

// StatusModel shows a spinner and the current stage of the request.
type StatusModel struct {
	spinner spinner.Model
	running bool
	text    string
	width   int
}

// NewStatusModel creates an idle status line.
func NewStatusModel() StatusModel {
	s := spinner.New()
	s.Spinner = spinner.Jump
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return StatusModel{
		spinner: s,
		text:    "Ready",
	}
}

// Init does not start the spinner; it waits for a request.
func (m StatusModel) Init() tea.Cmd {
	return nil
}

// Update follows the pipeline progress events.
func (m StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[pipeline.Progress]:
		switch msg.Type {
		case pubsub.StartedEvent, pubsub.ProgressEvent:
			m.text = GeneratingText
			if !m.running {
				m.running = true
				return m, m.spinner.Tick
			}
			return m, nil
		case pubsub.FinishedEvent:
			m.running = false
			m.text = "Ready"
			return m, nil
		case pubsub.FailedEvent:
			m.running = false
			m.text = "Failed"
			return m, nil
		}
	}

	if m.running {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the status line.
func (m StatusModel) View() string {
	style := lipgloss.NewStyle().Padding(1, 0)
	content := m.text
	if m.running {
		content = fmt.Sprintf("%s %s", m.spinner.View(), m.text)
	}
	return style.Render(content)
}

// Start switches to the generating state.
func (m StatusModel) Start() (StatusModel, tea.Cmd) {
	m.text = GeneratingText
	if m.running {
		return m, nil
	}
	m.running = true
	return m, m.spinner.Tick
}

// Stop returns to idle with text.
func (m StatusModel) Stop(text string) StatusModel {
	m.running = false
	m.text = text
	return m
}

// SetWidth records the available width.
func (m *StatusModel) SetWidth(width int) {
	m.width = width
}

// Text returns the status text.
func (m StatusModel) Text() string {
	return m.text
}

// IsRunning reports whether the spinner is running.
func (m StatusModel) IsRunning() bool {
	return m.running
}

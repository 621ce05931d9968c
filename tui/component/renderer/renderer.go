package renderer

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AnswerRenderer turns the drafted reply into terminal output.
type AnswerRenderer struct {
	markdownRenderer *glamour.TermRenderer
	styles           *Styles
	viewportWidth    int
}

// NewAnswerRenderer creates a renderer using the Dracula markdown theme.
func NewAnswerRenderer(styles *Styles) *AnswerRenderer {
	if styles == nil {
		styles = DefaultStyles()
	}

	markdownRenderer, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dracula"),
		glamour.WithWordWrap(0), // wrapping is done by lipgloss
	)
	return &AnswerRenderer{
		markdownRenderer: markdownRenderer,
		styles:           styles,
	}
}

// SetViewportWidth sets the wrap width.
func (r *AnswerRenderer) SetViewportWidth(width int) {
	r.viewportWidth = width
}

// Render renders the question and reply. An empty answer yields the hint text.
func (r *AnswerRenderer) Render(question, answer string) string {
	if answer == "" {
		return r.styles.Hint.Render("Type the journalist's question and press Enter.")
	}

	var sb strings.Builder
	if question != "" {
		sb.WriteString(r.styles.Question.Render("Question:"))
		sb.WriteString(" ")
		sb.WriteString(Truncate(question, 200))
		sb.WriteString("\n\n")
	}
	sb.WriteString(r.styles.Professor.Render("Professor:"))
	sb.WriteString("\n")
	sb.WriteString(r.renderMarkdown(answer))

	return r.wrap(sb.String())
}

// RenderError renders a failed request.
func (r *AnswerRenderer) RenderError(err error) string {
	return r.wrap(r.styles.Error.Render("Error: " + err.Error()))
}

func (r *AnswerRenderer) renderMarkdown(content string) string {
	if r.markdownRenderer == nil {
		return content
	}
	rendered, err := r.markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	// glamour pads with blank lines
	return strings.TrimSpace(rendered)
}

func (r *AnswerRenderer) wrap(content string) string {
	if r.viewportWidth > 0 {
		return lipgloss.NewStyle().Width(r.viewportWidth).Render(content)
	}
	return content
}

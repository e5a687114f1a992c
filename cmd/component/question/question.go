package question

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getsavvyinc/pdfqa-cli/client"
	"github.com/getsavvyinc/pdfqa-cli/model"
)

// AnsweredMsg carries the answer of a successful ask.
type AnsweredMsg struct {
	Answer string
}

type KeyMap struct {
	Ask        key.Binding
	CopyAnswer key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Ask:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
		CopyAnswer: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy answer")),
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "21", Dark: "33"})
	answerStyle = lipgloss.NewStyle().PaddingTop(1)
)

var (
	defaultCopyToClipboard = clipboard.WriteAll
	copyToClipboard        = defaultCopyToClipboard
)

type Model struct {
	cl     client.Client
	logger *slog.Logger

	// documentID is bound once at construction
	documentID model.DocumentID

	input      textinput.Model
	answerText string

	keys KeyMap
}

func New(cl client.Client, logger *slog.Logger, documentID model.DocumentID) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	return Model{
		cl:         cl,
		logger:     logger,
		documentID: append(model.DocumentID(nil), documentID...),
		input:      ti,
		keys:       DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) DocumentID() model.DocumentID {
	return m.documentID
}

func (m Model) Question() string {
	return m.input.Value()
}

func (m Model) Answer() string {
	return m.answerText
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Ask):
			return m, m.submitQuestion()
		case key.Matches(msg, m.keys.CopyAnswer):
			return m, m.copyAnswer()
		}
	case AnsweredMsg:
		m.answerText = msg.Answer
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitQuestion captures the identifier and the question when it is called.
// The question text is left in place. On failure the error is only logged and
// the previous answer stays.
func (m Model) submitQuestion() tea.Cmd {
	cl, logger := m.cl, m.logger
	qi := &model.QuestionInfo{
		DocumentID: m.documentID,
		Question:   m.input.Value(),
	}

	return func() tea.Msg {
		answer, err := cl.AskQuestion(context.Background(), qi)
		if err != nil {
			logger.Error("Error fetching answer", "error", err, "document_id", qi.DocumentID.String())
			return nil
		}
		return AnsweredMsg{Answer: answer.Text()}
	}
}

func (m Model) copyAnswer() tea.Cmd {
	if m.answerText == "" {
		return nil
	}
	answer, logger := m.answerText, m.logger
	return func() tea.Msg {
		if err := copyToClipboard(answer); err != nil {
			logger.Error("failed to copy answer to clipboard", "error", err)
		}
		return nil
	}
}

// AnswerLine is the rendered answer, or "" while there is no answer to show.
func (m Model) AnswerLine() string {
	if m.answerText == "" {
		return ""
	}
	return "Answer: " + m.answerText
}

func (m Model) View() string {
	s := titleStyle.Render("Ask a question") + "\n"
	s += m.input.View()
	if line := m.AnswerLine(); line != "" {
		s += "\n" + answerStyle.Render(line)
	}
	return s
}

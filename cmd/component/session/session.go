// Package session is the interactive pdfqa screen.
// It owns the active document identifier and shows the question pane only
// once an upload has produced one.
package session

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getsavvyinc/pdfqa-cli/client"
	"github.com/getsavvyinc/pdfqa-cli/cmd/component/question"
	"github.com/getsavvyinc/pdfqa-cli/cmd/component/upload"
	"github.com/getsavvyinc/pdfqa-cli/model"
)

type pane int

const (
	uploadPane pane = iota
	questionPane
)

type documentPublishedMsg struct {
	documentID model.DocumentID
}

type keyMap struct {
	SwitchPane key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("240"))
	focusedStyle = paneStyle.Copy().BorderForeground(lipgloss.Color("69"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
)

type Model struct {
	cl     client.Client
	logger *slog.Logger

	documentID model.DocumentID

	upload   upload.Model
	question *question.Model

	focus pane
	keys  keyMap
	help  help.Model
}

type Option func(m *Model)

// WithUploadOptions forwards options to the upload pane.
func WithUploadOptions(opts ...upload.Option) Option {
	return func(m *Model) {
		m.upload = upload.New(m.cl, m.logger, publishDocumentID, opts...)
	}
}

func New(cl client.Client, logger *slog.Logger, opts ...Option) Model {
	m := Model{
		cl:     cl,
		logger: logger,
		focus:  uploadPane,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.upload = upload.New(cl, logger, publishDocumentID)

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// publishDocumentID is the callback the upload pane reports new identifiers through.
func publishDocumentID(documentID model.DocumentID) tea.Msg {
	return documentPublishedMsg{documentID: documentID}
}

// DocumentID is the active document identifier.
func (m Model) DocumentID() model.DocumentID {
	return m.documentID
}

// Question returns the question pane, or nil while it is not shown.
func (m Model) Question() *question.Model {
	return m.question
}

func (m Model) Upload() upload.Model {
	return m.upload
}

func (m Model) Init() tea.Cmd {
	return m.upload.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchPane):
			return m, m.switchPane()
		}
		return m.updateFocused(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case documentPublishedMsg:
		return m, m.setDocumentID(msg.documentID)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.upload, cmd = m.upload.Update(msg)
	cmds = append(cmds, cmd)
	if m.question != nil {
		q, cmd := m.question.Update(msg)
		m.question = &q
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// updateFocused hands a key press to the focused pane only.
func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == questionPane && m.question != nil {
		q, cmd := m.question.Update(msg)
		m.question = &q
		return m, cmd
	}
	m.upload, cmd = m.upload.Update(msg)
	return m, cmd
}

// setDocumentID overwrites the active identifier.
// The question pane is built when the identifier becomes present and dropped
// when it stops being present. A present identifier replacing another one
// leaves the existing pane bound to the first.
func (m *Model) setDocumentID(documentID model.DocumentID) tea.Cmd {
	wasPresent := m.documentID.Present()
	m.documentID = documentID

	if !documentID.Present() {
		m.question = nil
		m.focus = uploadPane
		return nil
	}
	if wasPresent && m.question != nil {
		return nil
	}

	q := question.New(m.cl, m.logger, documentID)
	m.question = &q
	m.focus = questionPane
	return q.Init()
}

func (m *Model) switchPane() tea.Cmd {
	if m.question == nil {
		return nil
	}
	if m.focus == uploadPane {
		m.focus = questionPane
		return m.question.Focus()
	}
	m.focus = uploadPane
	m.question.Blur()
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	bindings := []key.Binding{m.keys.SwitchPane}
	if m.focus == questionPane && m.question != nil {
		keys := m.question.Keys()
		bindings = append(bindings, keys.Ask, keys.CopyAnswer)
	} else {
		keys := m.upload.Keys()
		bindings = append(bindings, keys.Upload, keys.ToggleFilter)
	}
	return append(bindings, m.keys.Quit)
}

func (m Model) styleFor(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedStyle
	}
	return paneStyle
}

func (m Model) View() string {
	views := []string{headerStyle.Render("pdfqa"), m.styleFor(uploadPane).Render(m.upload.View())}
	if m.question != nil {
		views = append(views, m.styleFor(questionPane).Render(m.question.View()))
	}
	views = append(views, m.help.ShortHelpView(m.ShortHelp()))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, views...))
}

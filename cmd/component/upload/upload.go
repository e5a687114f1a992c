package upload

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getsavvyinc/pdfqa-cli/client"
	"github.com/getsavvyinc/pdfqa-cli/model"
	"github.com/getsavvyinc/pdfqa-cli/preview"
)

// AcceptedType is the file type the picker offers by default.
// It is a hint: the filter can be switched off and nothing else checks the type.
const AcceptedType = ".pdf"

// OnUploadSuccess turns the identifier returned by the backend into the message
// the owner of the session handles.
type OnUploadSuccess func(documentID model.DocumentID) tea.Msg

// FileSelectedMsg replaces the file that the next upload sends.
type FileSelectedMsg struct {
	Path string
}

type previewMsg struct {
	path string
	text string
}

type KeyMap struct {
	Upload       key.Binding
	ToggleFilter key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Upload:       key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "upload PDF")),
		ToggleFilter: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "toggle PDF filter")),
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "21", Dark: "33"})
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#02CF92", Dark: "#02A877"})
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type Model struct {
	cl              client.Client
	logger          *slog.Logger
	onUploadSuccess OnUploadSuccess

	picker       filepicker.Model
	selectedFile string
	preview      string

	keys KeyMap
}

type Option func(m *Model)

// WithDirectory sets the directory the picker starts in.
func WithDirectory(dir string) Option {
	return func(m *Model) {
		m.picker.CurrentDirectory = dir
	}
}

func New(cl client.Client, logger *slog.Logger, onUploadSuccess OnUploadSuccess, opts ...Option) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{AcceptedType}
	fp.AutoHeight = false
	fp.Height = 8
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	m := Model{
		cl:              cl,
		logger:          logger,
		onUploadSuccess: onUploadSuccess,
		picker:          fp,
		keys:            DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.picker.Init()
}

// SelectedFile is the path the next upload sends. Empty means nothing was selected.
func (m Model) SelectedFile() string {
	return m.selectedFile
}

// PDFOnly reports whether the picker currently hides non PDF files.
func (m Model) PDFOnly() bool {
	return len(m.picker.AllowedTypes) > 0
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Upload):
			return m, m.submitUpload()
		case key.Matches(msg, m.keys.ToggleFilter):
			if m.PDFOnly() {
				m.picker.AllowedTypes = nil
			} else {
				m.picker.AllowedTypes = []string{AcceptedType}
			}
			return m, nil
		}
	case FileSelectedMsg:
		m.selectedFile = msg.Path
		m.preview = ""
		return m, inspect(msg.Path)
	case previewMsg:
		// a slower preview of an earlier selection must not overwrite the current one
		if msg.path == m.selectedFile {
			m.preview = msg.text
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		return m, tea.Batch(cmd, selectFile(path))
	}
	return m, cmd
}

func selectFile(path string) tea.Cmd {
	return func() tea.Msg {
		return FileSelectedMsg{Path: path}
	}
}

func inspect(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		info, err := preview.Inspect(path)
		if err != nil {
			return previewMsg{path: path, text: filepath.Base(path) + " (" + preview.ErrNotPDF.Error() + ")"}
		}
		return previewMsg{path: path, text: info.String()}
	}
}

// submitUpload sends whatever is selected, including nothing.
// On failure the error is only logged and no message is produced.
func (m Model) submitUpload() tea.Cmd {
	cl, logger, onUploadSuccess := m.cl, m.logger, m.onUploadSuccess
	path := m.selectedFile

	return func() tea.Msg {
		documentID, err := cl.UploadPDF(context.Background(), path)
		if err != nil {
			logger.Error("Error uploading PDF", "error", err, "file", path)
			return nil
		}
		logger.Debug("uploaded PDF", "file", path, "document_id", documentID.String())
		return onUploadSuccess(documentID)
	}
}

func (m Model) View() string {
	s := titleStyle.Render("Upload a PDF") + "\n"
	s += m.picker.View() + "\n"

	selected := "none"
	if m.selectedFile != "" {
		selected = m.selectedFile
		if m.preview != "" {
			selected = m.preview
		}
	}
	s += "Selected: " + selectedStyle.Render(selected) + "\n"

	if m.PDFOnly() {
		s += hintStyle.Render("Showing PDF files only")
	} else {
		s += hintStyle.Render("Showing all files")
	}
	return s
}

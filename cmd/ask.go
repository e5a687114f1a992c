package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	huhSpinner "github.com/charmbracelet/huh/spinner"
	"github.com/getsavvyinc/pdfqa-cli/client"
	"github.com/getsavvyinc/pdfqa-cli/display"
	"github.com/getsavvyinc/pdfqa-cli/model"
	"github.com/getsavvyinc/pdfqa-cli/theme"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about an uploaded PDF",
	Example: `
  pdfqa ask --doc 1 "what is the total?"
  pdfqa ask --doc 1 who signed the contract
  pdfqa ask --doc 1 --markdown "summarize the termination clause"
  pdfqa ask --doc 1 # interactive mode
  `,
	Long: `
  Ask sends a question about a previously uploaded PDF and prints the answer.

  The document id is the one printed by pdfqa upload.
  `,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if askDocumentID == "" {
			return errors.New("missing: --doc")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "ask")
		cl := client.New(configFromCtx(ctx))

		documentID := model.ParseDocumentID(askDocumentID)

		// be defensive: users can pass questions as one string or multiple strings
		question := strings.Join(args, " ")
		if len(args) == 0 {
			input := huh.NewInput().Title("Ask a question about document " + documentID.String()).Prompt("> ").Value(&question)
			if err := huh.NewForm(huh.NewGroup(input)).WithTheme(theme.New()).Run(); err != nil {
				display.FatalErr(err)
			}
		}

		qi := &model.QuestionInfo{
			DocumentID: documentID,
			Question:   question,
		}

		var answer model.Answer
		var err error
		ask := func() {
			answer, err = cl.AskQuestion(ctx, qi)
		}

		if isTerminal() {
			if serr := huhSpinner.New().Title("Asking...").Action(ask).Run(); serr != nil {
				display.FatalErr(serr)
			}
		} else {
			ask()
		}

		if err != nil {
			logger.Debug("ask failed", "error", err, "document_id", documentID.String())
			display.FatalErr(fmt.Errorf("error fetching answer: %w", err))
		}

		text := answer.Text()
		if askMarkdown && text != "" {
			rendered, rerr := renderMarkdown(text)
			if rerr == nil {
				fmt.Print(rendered)
				return
			}
			logger.Debug("failed to render markdown", "error", rerr)
		}
		fmt.Println("Answer: " + text)
	},
}

var (
	askDocumentID string
	askMarkdown   bool
)

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askDocumentID, "doc", "", "Document id returned by pdfqa upload")
	askCmd.Flags().BoolVar(&askMarkdown, "markdown", false, "Render the answer as markdown")
}

func renderMarkdown(text string) (string, error) {
	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render("**Answer:** " + text)
}

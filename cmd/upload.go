package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	huhSpinner "github.com/charmbracelet/huh/spinner"
	"github.com/getsavvyinc/pdfqa-cli/client"
	"github.com/getsavvyinc/pdfqa-cli/display"
	"github.com/getsavvyinc/pdfqa-cli/model"
	"github.com/getsavvyinc/pdfqa-cli/preview"
	"github.com/getsavvyinc/pdfqa-cli/theme"
	"github.com/spf13/cobra"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload [path]",
	Short: "Upload a PDF and print its document id",
	Args:  cobra.MaximumNArgs(1),
	Example: `
  pdfqa upload ./invoice.pdf
  pdfqa upload # interactive mode
  `,
	Long: `
  Upload sends a PDF to the backend and prints the document id it returns.

  Pass the id to pdfqa ask --doc to ask questions about the document.
  `,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "upload")
		cl := client.New(configFromCtx(ctx))

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			input := huh.NewInput().Title("Path to the PDF to upload").Prompt("> ").Value(&path)
			if err := huh.NewForm(huh.NewGroup(input)).WithTheme(theme.New()).Run(); err != nil {
				display.FatalErr(err)
			}
		}

		if path != "" {
			if info, err := preview.Inspect(path); err == nil {
				logger.Debug("uploading", "file", info.Name, "pages", info.Pages, "size", info.Size)
			} else if errors.Is(err, preview.ErrNotPDF) {
				display.Info(fmt.Sprintf("%s does not look like a PDF, uploading anyway", filepath.Base(path)))
			}
		}

		var documentID model.DocumentID
		var err error
		upload := func() {
			documentID, err = cl.UploadPDF(ctx, path)
		}

		if isTerminal() {
			if serr := huhSpinner.New().Title("Uploading " + filepath.Base(path)).Action(upload).Run(); serr != nil {
				display.FatalErr(serr)
			}
		} else {
			upload()
		}

		if err != nil {
			logger.Debug("upload failed", "error", err)
			display.FatalErr(fmt.Errorf("error uploading PDF: %w", err))
		}
		if !documentID.Present() {
			display.ErrorMsg("the backend did not return a document id")
			os.Exit(1)
		}

		if isTerminal() {
			display.Success("Uploaded! Ask away with: pdfqa ask --doc " + documentID.String())
		}
		fmt.Println(documentID.String())
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

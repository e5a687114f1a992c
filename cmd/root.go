package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getsavvyinc/pdfqa-cli/client"
	"github.com/getsavvyinc/pdfqa-cli/cmd/component/session"
	"github.com/getsavvyinc/pdfqa-cli/config"
	"github.com/getsavvyinc/pdfqa-cli/display"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdfqa",
	Short: "Upload a PDF and ask questions about it",
	Long: `
  Upload a PDF and ask questions about it from the command line.

  Run pdfqa without arguments to open the interactive session: pick a PDF, upload
  it, then ask as many questions as you like about it.
  `,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logLevel := slog.LevelInfo
		if debugFlag {
			logLevel = slog.LevelDebug
		}
		textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     logLevel,
		})
		logger := slog.New(textHandler)
		slog.SetDefault(logger)

		if err := config.LoadEnv(); err != nil {
			logger.Debug("failed to load .env", "error", err)
		}
		cfg, err := resolveConfig(config.DefaultConfigFilePath, backendFlag)
		if err != nil {
			return err
		}

		ctx := ctxWithLogger(cmd.Context(), logger)
		cmd.SetContext(ctxWithConfig(ctx, cfg))
		return nil
	},
	Run: runSession,
}

var (
	debugFlag   bool
	backendFlag string
	logFileFlag string
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Backend base url (default "+config.DefaultBackendURL+")")
	rootCmd.Flags().StringVar(&logFileFlag, "log-file", config.DefaultLogFilePath, "File the interactive session logs to")
}

// resolveConfig applies the --backend flag on top of env, file and defaults.
func resolveConfig(path, backendURL string) (*config.Config, error) {
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendURL != "" {
		cfg.BackendURL = strings.TrimSuffix(backendURL, "/")
	}
	return cfg, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runSession(cmd *cobra.Command, _ []string) {
	if !isTerminal() {
		cmd.Help()
		return
	}

	ctx := cmd.Context()
	cfg := configFromCtx(ctx)

	// the session owns the terminal, so diagnostics go to a file
	logFile, err := openLogFile(logFileFlag)
	if err != nil {
		display.FatalErr(fmt.Errorf("failed to open log file: %w", err))
	}
	defer logFile.Close()

	logLevel := slog.LevelInfo
	if debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel})).With("command", "session")
	logger.Info("starting session", "backend", cfg.BackendURL, "version", config.Version())

	m := session.New(client.New(cfg), logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		display.FatalErrWithSupportCTA(err)
	}
}

func openLogFile(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

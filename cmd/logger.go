package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsavvyinc/pdfqa-cli/config"
)

type cmdLogger struct{}

var cmdLoggerKey cmdLogger

func loggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(cmdLoggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return defaultLogger
}

func ctxWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, cmdLoggerKey, logger)
}

var defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

type cmdConfig struct{}

var cmdConfigKey cmdConfig

func configFromCtx(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(cmdConfigKey).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return &config.Config{BackendURL: config.DefaultBackendURL}
}

func ctxWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, cmdConfigKey, cfg)
}

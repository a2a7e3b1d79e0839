package cli

import (
	"io"
	"log/slog"
)

// setupLogging installs a text slog handler on w as the default logger.
// Verbose enables debug records.
func setupLogging(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return logger
}

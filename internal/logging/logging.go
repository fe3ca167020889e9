package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init configures the global slog default. When verbose is true the level is
// lowered to debug, which is what surfaces per-record skip diagnostics.
// If w is nil, os.Stderr is used.
func Init(verbose bool, w io.Writer) {
	var writer io.Writer = os.Stderr
	if w != nil {
		writer = w
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// New returns a logger with a "component" attribute for module-scoped logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

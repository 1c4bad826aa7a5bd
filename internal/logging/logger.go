package logging

import (
	"log/slog"
	"os"
)

// Setup installs the global slog logger: JSON to stdout, fanned out to any
// extra handlers (for example a PGHandler).
func Setup(appEnv string, extra ...slog.Handler) {
	level := slog.LevelInfo
	if appEnv == "dev" {
		level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}
	slog.SetDefault(slog.New(handler))
}

// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gngenomes/pkg/config"
	"github.com/google/uuid"
)

// LogFile is the name of the log file inside of the log directory.
const LogFile = "gngenomes.log"

// runID marks all records of one program run, so runs can be told apart
// in the appended log file.
var runID = uuid.NewString()

// RunID returns the id attached to every log record of the current run.
func RunID() string {
	return runID
}

// Init initializes the global slog logger with the given configuration.
// Creates or appends to the log file in logDir if destination is "file".
func Init(logDir string, cfg config.LogConfig) error {
	writer, err := logWriter(logDir, cfg.Destination)
	if err != nil {
		return err
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	slog.SetDefault(slog.New(handler).With("run_id", runID))
	return nil
}

func logWriter(logDir, destination string) (io.Writer, error) {
	switch destination {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		file, err := os.OpenFile(
			logPath,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0644,
		)
		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		return file, nil
	default:
		return os.Stderr, nil
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

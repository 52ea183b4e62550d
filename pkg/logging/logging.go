// Package logging configures the process wide slog logger
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/afero"
)

// Returns a logger that writes human readable records of at least the given level to console
// and, if file is not nil, every record as JSON to file
func NewLogger(console io.Writer, level slog.Level, file io.Writer) *slog.Logger {
	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}

	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// Installs the default logger. If logFile is not empty the file is created in fs, truncated,
// and receives all records; the returned function closes it
func Setup(fs afero.Fs, console io.Writer, level slog.Level, logFile string) (func() error, error) {
	if logFile == "" {
		slog.SetDefault(NewLogger(console, level, nil))
		return func() error { return nil }, nil
	}

	file, err := fs.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(NewLogger(console, level, file))
	return file.Close, nil
}

// Parses a level name (debug, info, warn, error), case insensitive
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(name)))
	return level, err
}

// Package logging provides zerolog-based logging for taskwatch.
// Entries go to a rotating file in the data dir (<data>/logs/tw.log);
// warnings and errors are also echoed to the console.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/runoshun/taskwatch/internal/domain"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings of the log file.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Logger owns the zerolog logger and the log file behind it.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file   io.WriteCloser
	logger zerolog.Logger
}

// ParseLevel parses a log level string. Unknown values fall back to info.
func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a Logger writing to the data dir log file and to console.
// If dataDir is empty the file is skipped. console may be nil.
func New(dataDir string, level zerolog.Level, console io.Writer) (*Logger, error) {
	var writers []io.Writer
	if console != nil {
		writers = append(writers, &minLevelWriter{w: console, min: zerolog.WarnLevel})
	}

	l := &Logger{}
	if dataDir != "" {
		logDir := domain.LogDir(dataDir)
		if err := os.MkdirAll(logDir, 0o750); err != nil {
			return nil, fmt.Errorf("create logs directory: %w", err)
		}
		l.file = &lumberjack.Logger{
			Filename:   filepath.Join(logDir, domain.LogFileName),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		writers = append(writers, l.file)
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = zerolog.MultiLevelWriter(writers...)
	}
	l.logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return l, nil
}

// ConsoleWriter returns a human readable writer for w when it is a terminal
// and NO_COLOR is unset, or w itself otherwise.
func ConsoleWriter(w *os.File) io.Writer {
	if term.IsTerminal(int(w.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return w
}

// Zerolog returns the underlying logger.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.logger
}

// WithContext attaches the logger to ctx for zerolog.Ctx.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.logger.WithContext(ctx)
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// minLevelWriter drops entries below min.
type minLevelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (m *minLevelWriter) Write(p []byte) (int, error) {
	return m.w.Write(p)
}

func (m *minLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < m.min {
		return len(p), nil
	}
	return m.w.Write(p)
}

// Package logging builds the application logger: human readable text on
// stderr plus JSON lines in a daily file under the app log directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// FilePrefix is the log file name prefix; the date is appended.
const FilePrefix = "terminal-archive"

// Options configures New
type Options struct {
	Level     string    // debug, info, warn or error
	Console   io.Writer // defaults to os.Stderr
	NoConsole bool      // skip the console handler
	Dir       string    // log directory; empty disables file output
}

// Logger wraps slog.Logger with the file it writes to
type Logger struct {
	*slog.Logger
	level    *slog.LevelVar
	file     *os.File
	filePath string
}

// ParseLevel maps a level name to slog.Level, defaulting to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates the logger. When the file cannot be opened the console
// handler is kept and the error is returned alongside a usable logger.
func New(opts Options) (*Logger, error) {
	level := new(slog.LevelVar)
	level.Set(ParseLevel(opts.Level))

	var handlers []slog.Handler
	if !opts.NoConsole {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		handlers = append(handlers, slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}))
	}

	l := &Logger{level: level}
	var fileErr error
	if opts.Dir != "" {
		fileErr = l.openFile(opts.Dir)
		if fileErr == nil {
			handlers = append(handlers, slog.NewJSONHandler(l.file, &slog.HandlerOptions{
				Level:     level,
				AddSource: true,
			}))
		}
	}

	l.Logger = slog.New(slogmulti.Fanout(handlers...))
	return l, fileErr
}

func (l *Logger) openFile(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.log", FilePrefix, time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = f
	l.filePath = path
	return nil
}

// SetLevel changes the minimum level of every handler
func (l *Logger) SetLevel(name string) {
	l.level.Set(ParseLevel(name))
}

// Level returns the current minimum level
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// FilePath returns the log file in use, or "" when logging to console only
func (l *Logger) FilePath() string {
	return l.filePath
}

// Close closes the log file if one is open
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// SPDX-License-Identifier: MPL-2.0

package termlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrLogFileExists is the sentinel error wrapped by LogFileExistsError.
var ErrLogFileExists = errors.New("logfile already exists")

// logTimeFormat is the timestamp layout used for logfile lines.
const logTimeFormat = "2006 Jan 02 15:04:05"

type (
	// Logger prints styled status messages to a terminal writer and mirrors
	// them, timestamped and plain, into an optional logfile.
	Logger struct {
		mu      sync.Mutex
		out     io.Writer
		noColor bool
		file    *os.File
		sink    *log.Logger
	}

	// Options configures a Logger.
	Options struct {
		// NoColor disables terminal styling (messages still reach the logfile).
		NoColor bool
	}

	// LogFileExistsError is returned when a logfile would overwrite an
	// existing file. It wraps ErrLogFileExists for errors.Is() compatibility.
	LogFileExistsError struct {
		Path string
	}
)

// Error implements the error interface for LogFileExistsError.
func (e *LogFileExistsError) Error() string {
	return fmt.Sprintf("can't create %q, the file already exists", e.Path)
}

// Unwrap returns ErrLogFileExists for errors.Is() compatibility.
func (e *LogFileExistsError) Unwrap() error { return ErrLogFileExists }

// NewWithOptions creates a Logger writing terminal output to out.
func NewWithOptions(out io.Writer, opts Options) *Logger {
	return &Logger{out: out, noColor: opts.NoColor}
}

// defaultLogger backs the package-level helpers.
var defaultLogger = NewWithOptions(os.Stdout, Options{})

// Default returns the package-level logger.
func Default() *Logger { return defaultLogger }

// OpenLogFile starts mirroring messages into the file at path. Without
// appendMode an existing file is refused; with it, new output is separated
// from the previous contents by a blank line.
func (l *Logger) OpenLogFile(path string, appendMode bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existed := false
	if _, err := os.Stat(path); err == nil {
		if !appendMode {
			return &LogFileExistsError{Path: path}
		}
		existed = true
	}

	l.closeLogFileLocked()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening logfile: %w", err)
	}
	if existed {
		if _, err := f.WriteString("\n"); err != nil {
			f.Close()
			return fmt.Errorf("writing logfile separator: %w", err)
		}
	}
	l.file = f
	l.sink = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
	})
	return nil
}

// CloseLogFile stops logfile mirroring.
func (l *Logger) CloseLogFile() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeLogFileLocked()
}

func (l *Logger) closeLogFileLocked() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.sink = nil
	return err
}

// LoggingEnabled reports whether a logfile is open.
func (l *Logger) LoggingEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file != nil
}

// LogFileWriter returns the raw logfile writer for verbatim subprocess
// capture, or nil when no logfile is open.
func (l *Logger) LogFileWriter() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file
}

// Msg shapes, prints, and logs a message. prog and msgType may be empty; the
// shaped text is returned so callers can reuse it in an error.
func (l *Logger) Msg(c Color, msgType, prog, text string) string {
	shaped := shape(prog, msgType, text)
	l.mu.Lock()
	defer l.mu.Unlock()

	rendered := shaped
	if !l.noColor {
		rendered = c.Render(shaped)
	}
	fmt.Fprintln(l.out, rendered)
	l.logLocked(msgType, shaped)
	return shaped
}

// LogOnly writes a message to the logfile without printing it.
func (l *Logger) LogOnly(prog, text string) {
	shaped := shape(prog, "", text)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logLocked("", shaped)
}

// logLocked routes a shaped message to the charm sink at a level matching
// its severity word.
func (l *Logger) logLocked(msgType, shaped string) {
	if l.sink == nil {
		return
	}
	switch msgType {
	case msgTypeError:
		l.sink.Error(shaped)
	case msgTypeWarning:
		l.sink.Warn(shaped)
	default:
		l.sink.Info(shaped)
	}
}

const (
	msgTypeError   = "Error:"
	msgTypeWarning = "Warning:"
	msgTypeInfo    = "Info:"
)

// shape joins "[prog]:", the severity word, and the text, skipping empties.
func shape(prog, msgType, text string) string {
	progTxt := ""
	if prog != "" {
		progTxt = "[" + prog + "]:"
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{progTxt, msgType, text} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Print prints and logs an unstyled message.
func (l *Logger) Print(prog, text string) { l.Msg(ColorNone, "", prog, text) }

// Info prints and logs an informational message.
func (l *Logger) Info(prog, text string) { l.Msg(ColorNone, msgTypeInfo, prog, text) }

// Err prints and logs an error message in red. The shaped text is returned
// for reuse in error values.
func (l *Logger) Err(prog, text string) string { return l.Msg(ColorRed, msgTypeError, prog, text) }

// Warn prints and logs a warning message in yellow.
func (l *Logger) Warn(prog, text string) { l.Msg(ColorYellow, msgTypeWarning, prog, text) }

// Caption prints and logs a section caption in cyan.
func (l *Logger) Caption(prog, text string) { l.Msg(ColorCyan, "", prog, text) }

// Bold prints and logs a message in bold; used for commands being executed.
func (l *Logger) Bold(prog, text string) { l.Msg(ColorBold, "", prog, text) }

// Green prints and logs a success message in green.
func (l *Logger) Green(prog, text string) { l.Msg(ColorGreen, "", prog, text) }

// Die prints an error message and exits with a bad status code.
func (l *Logger) Die(prog, text string) {
	l.Err(prog, text)
	osExit(1)
}

// osExit is swapped out in tests.
var osExit = os.Exit

// StartLogging enables logging for a script run: it refuses an existing
// logfile (use another name or remove it manually) and records how the
// process was started.
func (l *Logger) StartLogging(path, prog string) error {
	if err := l.OpenLogFile(path, false); err != nil {
		return err
	}
	args := append([]string{}, os.Args...)
	if len(args) > 0 {
		args[0] = filepath.Base(args[0])
	}
	l.LogOnly(prog, fmt.Sprintf("Started as %q", strings.Join(args, " ")))
	return nil
}

// Package-level helpers delegating to the default logger.

// Print prints and logs an unstyled message.
func Print(prog, text string) { defaultLogger.Print(prog, text) }

// Info prints and logs an informational message.
func Info(prog, text string) { defaultLogger.Info(prog, text) }

// Err prints and logs an error message in red.
func Err(prog, text string) string { return defaultLogger.Err(prog, text) }

// Warn prints and logs a warning message in yellow.
func Warn(prog, text string) { defaultLogger.Warn(prog, text) }

// Caption prints and logs a section caption in cyan.
func Caption(prog, text string) { defaultLogger.Caption(prog, text) }

// Bold prints and logs a message in bold.
func Bold(prog, text string) { defaultLogger.Bold(prog, text) }

// Green prints and logs a message in green.
func Green(prog, text string) { defaultLogger.Green(prog, text) }

// Die prints an error message and exits with a bad status code.
func Die(prog, text string) { defaultLogger.Die(prog, text) }

// LogOnly writes a message to the logfile without printing it.
func LogOnly(prog, text string) { defaultLogger.LogOnly(prog, text) }

// OpenLogFile starts logfile mirroring on the default logger.
func OpenLogFile(path string, appendMode bool) error {
	return defaultLogger.OpenLogFile(path, appendMode)
}

// CloseLogFile stops logfile mirroring on the default logger.
func CloseLogFile() error { return defaultLogger.CloseLogFile() }

// StartLogging enables logging for a script run on the default logger.
func StartLogging(path, prog string) error { return defaultLogger.StartLogging(path, prog) }

// PrintColored styles and prints text without logging it.
func PrintColored(c Color, text string) {
	fmt.Fprintln(os.Stdout, c.Render(text))
}

// SetTerminalCaption sets the terminal window title through the OSC 0
// escape sequence.
func SetTerminalCaption(text string) {
	fmt.Fprintf(os.Stdout, "\x1b]0;%s\a", text)
}

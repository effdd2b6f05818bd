// Package log provides a unified logging abstraction for minitext.
//
// CLI output goes through this package. Warnings and errors go to the error
// writer, everything else to the output writer. While the terminal UI owns the
// screen the writers are redirected (see SetOutput) so log lines never tear the
// rendered view.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// LogLevel controls the verbosity of log output.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn shows only warnings and errors.
	LevelWarn
	// LevelError shows only errors.
	LevelError
	// LevelSilent suppresses all output.
	LevelSilent
)

var levelNames = map[string]LogLevel{
	"debug":  LevelDebug,
	"info":   LevelInfo,
	"warn":   LevelWarn,
	"error":  LevelError,
	"silent": LevelSilent,
}

// ParseLevel converts a level name (debug, info, warn, error, silent) to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}

// LevelForDebugCount maps a repeated -d flag count to a level.
// Zero keeps the default info level; any positive count enables debug output.
func LevelForDebugCount(n int) LogLevel {
	if n > 0 {
		return LevelDebug
	}
	return LevelInfo
}

// config holds the global logger configuration.
type config struct {
	mu     sync.RWMutex
	level  LogLevel
	prefix bool
	quiet  bool
	out    io.Writer
	errOut io.Writer
}

var cfg = &config{
	level:  LevelInfo,
	out:    os.Stdout,
	errOut: os.Stderr,
}

var (
	dimStyle    = lipgloss.NewStyle().Faint(true)
	boldStyle   = lipgloss.NewStyle().Bold(true)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// --- Configuration functions ---

// SetLevel sets the minimum log level. Messages below this level are suppressed.
func SetLevel(level LogLevel) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.level = level
}

// GetLevel returns the current log level.
func GetLevel() LogLevel {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.level
}

// SetPrefix enables or disables the [minitext] prefix on all messages.
func SetPrefix(enabled bool) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.prefix = enabled
}

// SetOutput replaces the output and error writers. A nil writer discards.
// It returns a function restoring the previous writers.
func SetOutput(out, errOut io.Writer) (restore func()) {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	cfg.mu.Lock()
	prevOut, prevErr := cfg.out, cfg.errOut
	cfg.out, cfg.errOut = out, errOut
	cfg.mu.Unlock()

	return func() {
		cfg.mu.Lock()
		defer cfg.mu.Unlock()
		cfg.out, cfg.errOut = prevOut, prevErr
	}
}

// EnableQuietMode suppresses ALL output including errors.
// Only exit codes communicate success/failure.
func EnableQuietMode() {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.quiet = true
	cfg.level = LevelSilent
}

// DisableQuietMode restores normal output.
func DisableQuietMode() {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.quiet = false
	cfg.level = LevelInfo
}

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.quiet
}

// --- Internal helpers ---

func canOutput(level LogLevel) bool {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return !cfg.quiet && cfg.level <= level
}

func formatMessage(message string) string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	if cfg.prefix {
		return "[minitext] " + message
	}
	return message
}

func writers() (io.Writer, io.Writer) {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.out, cfg.errOut
}

func emit(level LogLevel, toErr bool, style *lipgloss.Style, message string) {
	if !canOutput(level) {
		return
	}
	out, errOut := writers()
	w := out
	if toErr {
		w = errOut
	}
	line := formatMessage(message)
	if style != nil {
		line = style.Render(line)
	}
	fmt.Fprintln(w, line)
}

// --- Log output functions ---

// Debug outputs a debug-level message (dim styling).
func Debug(message string) { emit(LevelDebug, false, &dimStyle, message) }

// Debugf outputs a formatted debug-level message.
func Debugf(format string, args ...any) {
	if canOutput(LevelDebug) {
		Debug(fmt.Sprintf(format, args...))
	}
}

// Info outputs an info-level message (no styling).
func Info(message string) { emit(LevelInfo, false, nil, message) }

// Infof outputs a formatted info-level message.
func Infof(format string, args ...any) {
	if canOutput(LevelInfo) {
		Info(fmt.Sprintf(format, args...))
	}
}

// Warn outputs a warning message (yellow, to the error writer).
func Warn(message string) { emit(LevelWarn, true, &yellowStyle, message) }

// Warnf outputs a formatted warning message.
func Warnf(format string, args ...any) {
	if canOutput(LevelWarn) {
		Warn(fmt.Sprintf(format, args...))
	}
}

// Error outputs an error message (red, to the error writer).
func Error(message string) { emit(LevelError, true, &redStyle, message) }

// Errorf outputs a formatted error message.
func Errorf(format string, args ...any) {
	if canOutput(LevelError) {
		Error(fmt.Sprintf(format, args...))
	}
}

// Success outputs a success message (green, info level).
func Success(message string) { emit(LevelInfo, false, &greenStyle, message) }

// Successf outputs a formatted success message.
func Successf(format string, args ...any) {
	if canOutput(LevelInfo) {
		Success(fmt.Sprintf(format, args...))
	}
}

// Dim outputs a subtle message (info level).
func Dim(message string) { emit(LevelInfo, false, &dimStyle, message) }

// Bold outputs an emphasized message (info level).
func Bold(message string) { emit(LevelInfo, false, &boldStyle, message) }

// Status outputs a progress note (dim, info level) to the error writer, keeping
// standard output free for command payloads.
func Status(message string) { emit(LevelInfo, true, &dimStyle, message) }

// Statusf outputs a formatted progress note.
func Statusf(format string, args ...any) {
	if canOutput(LevelInfo) {
		Status(fmt.Sprintf(format, args...))
	}
}

// Raw outputs a message without any styling (for pre-styled content).
func Raw(message string) { emit(LevelInfo, false, nil, message) }

// Write outputs text without a trailing newline. Command payloads (copied
// text) go through here so they can be piped.
func Write(message string) {
	if canOutput(LevelInfo) {
		out, _ := writers()
		fmt.Fprint(out, message)
	}
}

// Style provides string styling functions that return styled strings
// without printing them. Use with Raw() for compositions.
var Style = struct {
	Dim    func(...string) string
	Bold   func(...string) string
	Red    func(...string) string
	Green  func(...string) string
	Yellow func(...string) string
	Cyan   func(...string) string
}{
	Dim:    dimStyle.Render,
	Bold:   boldStyle.Render,
	Red:    redStyle.Render,
	Green:  greenStyle.Render,
	Yellow: yellowStyle.Render,
	Cyan:   cyanStyle.Render,
}

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log levels, ordered from most to least verbose.
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levelRank = map[string]int{
	LevelTrace: 0,
	LevelDebug: 1,
	LevelInfo:  2,
	LevelWarn:  3,
	LevelError: 4,
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := levelRank[strings.ToLower(strings.TrimSpace(level))]
	return ok
}

// Logger writes levelled progress messages prefixed with [HH:MM:SS]
// timestamps. It is safe for concurrent use by batch workers.
type Logger struct {
	writer io.Writer
	level  string
	color  bool
	mu     sync.Mutex
	now    func() time.Time
}

// NewLogger creates a Logger writing to w at the given minimum level.
// A nil writer discards everything; an unknown level falls back to info.
// Colour is enabled only for os.Stdout and os.Stderr on a terminal.
func NewLogger(w io.Writer, level string) *Logger {
	return &Logger{
		writer: w,
		level:  normalizeLevel(level),
		color:  w != nil && (w == os.Stdout || w == os.Stderr) && !color.NoColor,
		now:    time.Now,
	}
}

// Discard returns a Logger that drops every message.
func Discard() *Logger {
	return NewLogger(nil, LevelError)
}

func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if _, ok := levelRank[level]; ok {
		return level
	}
	return LevelInfo
}

// Level returns the configured minimum level.
func (l *Logger) Level() string {
	return l.level
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level string) bool {
	if l == nil || l.writer == nil {
		return false
	}
	return levelRank[normalizeLevel(level)] >= levelRank[l.level]
}

// Tracef logs at trace level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.logf(LevelTrace, format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

func (l *Logger) logf(level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	label := strings.ToUpper(level)
	if l.color {
		label = levelColor(level).Sprint(label)
	}
	line := fmt.Sprintf("[%s] [%s] %s\n", l.now().Format("15:04:05"), label, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, line)
}

func levelColor(level string) *color.Color {
	switch level {
	case LevelTrace:
		return color.New(color.FgHiBlack)
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelWarn:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

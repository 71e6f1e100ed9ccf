// Package logging provides the structured leveled logger used across the
// editing core.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown names mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// sink is the writer shared by a logger and every logger derived from it.
type sink struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// Logger writes leveled messages with key=value fields.
type Logger struct {
	sink     *sink
	level    Level
	prefix   string
	fields   map[string]any
	disabled bool
}

// Config configures a logger.
type Config struct {
	// Level is the minimum level written.
	Level Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to every message.
	Prefix string
	// Now defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
		Prefix: "vicore",
	}
}

// New creates a logger.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Logger{
		sink:   &sink{out: cfg.Output, now: cfg.Now},
		level:  cfg.Level,
		prefix: cfg.Prefix,
		fields: map[string]any{},
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{disabled: true}
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	next := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		next[k] = v
	}
	for k, v := range fields {
		next[k] = v
	}
	return &Logger{
		sink:     l.sink,
		level:    l.level,
		prefix:   l.prefix,
		fields:   next,
		disabled: l.disabled,
	}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// WithSession returns a new logger tagging every line with an editing
// session id.
func (l *Logger) WithSession(id string) *Logger {
	return l.WithField("session", id)
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && !l.disabled && level >= l.level
}

// Debug logs a debug message with key/value pairs.
func (l *Logger) Debug(msg string, kv ...any) {
	l.log(LevelDebug, msg, kv...)
}

// Info logs an info message with key/value pairs.
func (l *Logger) Info(msg string, kv ...any) {
	l.log(LevelInfo, msg, kv...)
}

// Warn logs a warning message with key/value pairs.
func (l *Logger) Warn(msg string, kv ...any) {
	l.log(LevelWarn, msg, kv...)
}

// Error logs an error message with key/value pairs.
func (l *Logger) Error(msg string, kv ...any) {
	l.log(LevelError, msg, kv...)
}

// log writes msg followed by the logger's fields in key order and then
// the call's key/value pairs in the order given. A trailing key without
// a value is written under !BADKEY.
func (l *Logger) log(level Level, msg string, kv ...any) {
	if !l.Enabled(level) {
		return
	}

	var sb strings.Builder
	sb.WriteString(l.sink.now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&sb, " [%s] ", level)
	if l.prefix != "" {
		sb.WriteString(l.prefix)
		sb.WriteString(": ")
	}
	sb.WriteString(msg)

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeField(&sb, k, l.fields[k])
	}
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			writeField(&sb, "!BADKEY", kv[i])
			break
		}
		writeField(&sb, fmt.Sprint(kv[i]), kv[i+1])
	}
	sb.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, sb.String())
}

// writeField writes one key=value pair, quoting values with spaces.
func writeField(sb *strings.Builder, key string, value any) {
	var v string
	switch x := value.(type) {
	case error:
		v = x.Error()
	case string:
		v = x
	default:
		v = fmt.Sprint(x)
	}
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		v = strconv.Quote(v)
	}
	fmt.Fprintf(sb, " %s=%s", key, v)
}

package parser

import (
	"log"
	"time"

	"encomendas/internal/domain"
)

// LogEntry is one timestamped, stage-tagged event from a parse run.
type LogEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Level     domain.LogLevel `json:"level"`
	Stage     string          `json:"stage"`
	Message   string          `json:"message"`
	Elapsed   time.Duration   `json:"elapsed"`
}

// Logger captures the diagnostic trail of a single parse invocation.
// A fresh instance is constructed per call; nothing is shared across calls.
type Logger struct {
	entries []LogEntry
	start   time.Time
	console bool
}

// NewLogger creates a Logger. When console is true entries are echoed to
// the process log as well.
func NewLogger(console bool) *Logger {
	return &Logger{start: time.Now(), console: console}
}

func (l *Logger) log(level domain.LogLevel, stage, message string) {
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Stage:     stage,
		Message:   message,
		Elapsed:   time.Since(l.start),
	}
	l.entries = append(l.entries, entry)

	if l.console {
		log.Printf("parser [%s] [+%dms] %s: %s", level, entry.Elapsed.Milliseconds(), stage, message)
	}
}

func (l *Logger) Debug(stage, message string) { l.log(domain.LogLevelDebug, stage, message) }
func (l *Logger) Info(stage, message string)  { l.log(domain.LogLevelInfo, stage, message) }
func (l *Logger) Warn(stage, message string)  { l.log(domain.LogLevelWarn, stage, message) }
func (l *Logger) Error(stage, message string) { l.log(domain.LogLevelError, stage, message) }

// Entries returns a copy of all captured entries in order.
func (l *Logger) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Logger) filter(level domain.LogLevel) []string {
	var out []string
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Warnings returns the messages of all warn-level entries.
func (l *Logger) Warnings() []string { return l.filter(domain.LogLevelWarn) }

// Errors returns the messages of all error-level entries.
func (l *Logger) Errors() []string { return l.filter(domain.LogLevelError) }

// TotalDuration returns the elapsed time since the logger was constructed.
func (l *Logger) TotalDuration() time.Duration { return time.Since(l.start) }

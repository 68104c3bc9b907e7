package logging

import (
	"sync"
)

// Entry is one message captured by MemoryLogger.
type Entry struct {
	Level   string // "verbose", "info", "warn" or "error"
	Message string
}

// MemoryLogger records every message in order.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryLogger creates an empty MemoryLogger.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Verbose(format string, args ...interface{}) { l.record("verbose", format, args) }
func (l *MemoryLogger) Info(format string, args ...interface{})    { l.record("info", format, args) }
func (l *MemoryLogger) Warn(format string, args ...interface{})    { l.record("warn", format, args) }
func (l *MemoryLogger) Error(format string, args ...interface{})   { l.record("error", format, args) }

func (l *MemoryLogger) record(level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Message: sprintf(format, args)})
}

// Entries returns a copy of the recorded messages.
func (l *MemoryLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Messages returns the recorded messages of one level.
func (l *MemoryLogger) Messages(level string) []string {
	var out []string
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

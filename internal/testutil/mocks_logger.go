package testutil

import (
	"strings"
	"sync"
)

// LogEntry is one message captured by MockLogger
type LogEntry struct {
	Level string
	Msg   string
}

// MockLogger records messages by level instead of writing them
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg})
}

func (l *MockLogger) Trace(msg string, _ ...any) { l.record("TRACE", msg) }
func (l *MockLogger) Debug(msg string, _ ...any) { l.record("DEBUG", msg) }
func (l *MockLogger) Info(msg string, _ ...any)  { l.record("INFO", msg) }
func (l *MockLogger) Warn(msg string, _ ...any)  { l.record("WARN", msg) }
func (l *MockLogger) Error(msg string, _ ...any) { l.record("ERROR", msg) }
func (l *MockLogger) Close()                     {}
func (l *MockLogger) GetLogPath() string         { return "" }

// Count returns how many messages were logged at level
func (l *MockLogger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, e := range l.entries {
		if strings.EqualFold(e.Level, level) {
			n++
		}
	}

	return n
}

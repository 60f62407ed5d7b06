// Package logging writes structured JSON-lines run logs. Console progress
// output is separate; this file log is the durable record of a run.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel represents the log level.
type LogLevel string

const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// LogEntry is one JSON line in the log file.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Service   string    `json:"service"`
	Operation string    `json:"operation,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Logger appends JSON entries to a log file. A nil *Logger is valid and
// discards everything, so callers can run without a log file.
type Logger struct {
	file    *os.File
	mu      sync.Mutex
	service string
}

// NewLogger opens (or creates) the log file at logPath in append mode.
// service tags every entry, e.g. "castfetch".
func NewLogger(logPath, service string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{file: file, service: service}, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) log(level LogLevel, operation, message string, err error) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Service:   l.service,
		Operation: operation,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	jsonData, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// Fall back to a hand-built line so the event is not lost.
		_, _ = fmt.Fprintf(l.file, "{\"timestamp\":%q,\"level\":%q,\"message\":%q,\"service\":%q}\n",
			time.Now().Format(time.RFC3339), level, message, l.service)
		return
	}
	_, _ = fmt.Fprintln(l.file, string(jsonData))
}

// Info logs an info message.
func (l *Logger) Info(operation, message string) {
	l.log(LogLevelInfo, operation, message, nil)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(operation, format string, args ...interface{}) {
	l.log(LogLevelInfo, operation, fmt.Sprintf(format, args...), nil)
}

// Warn logs a warning, optionally carrying an error.
func (l *Logger) Warn(operation, message string, err error) {
	l.log(LogLevelWarn, operation, message, err)
}

// Error logs an error message.
func (l *Logger) Error(operation, message string, err error) {
	l.log(LogLevelError, operation, message, err)
}

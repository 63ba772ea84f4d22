package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Fields carries structured context for a log line.
type Fields = map[string]any

// Logger is the logging interface used across bookchat.
type Logger interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Debug(msg string, fields Fields)
	Error(msg string, fields Fields)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Error(string, Fields) {}

type writerLogger struct {
	mu  *sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewWriterLogger builds a logger that writes timestamped lines to w.
func NewWriterLogger(w io.Writer) Logger {
	return writerLogger{mu: &sync.Mutex{}, w: w, now: time.Now}
}

func (l writerLogger) write(level, msg string, fields Fields) {
	if l.w == nil {
		return
	}
	ts := l.now().Format(time.RFC3339)
	line := fmt.Sprintf("%s %-5s %s", ts, level, msg)
	if len(fields) > 0 {
		b, err := json.Marshal(fields)
		if err != nil {
			line += fmt.Sprintf(" fields=%q", fmt.Sprintf("%+v", fields))
		} else {
			line += " " + string(b)
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.w, line)
}

func (l writerLogger) Info(msg string, fields Fields)  { l.write("INFO", msg, fields) }
func (l writerLogger) Warn(msg string, fields Fields)  { l.write("WARN", msg, fields) }
func (l writerLogger) Debug(msg string, fields Fields) { l.write("DEBUG", msg, fields) }
func (l writerLogger) Error(msg string, fields Fields) { l.write("ERROR", msg, fields) }

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, fields Fields) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, fields)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, fields Fields) {
	if logger == nil {
		return
	}
	logger.Info(msg, fields)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, fields Fields) {
	if logger == nil {
		return
	}
	logger.Warn(msg, fields)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, fields Fields) {
	if logger == nil {
		return
	}
	logger.Error(msg, fields)
}

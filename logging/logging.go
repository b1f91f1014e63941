// Package logging provides real-time console output for retry activity.
// It is intentionally small: a leveled key=value logger plus helpers for
// the events the retry loop produces.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Logger provides structured logging to stdout.
type Logger struct {
	mu        sync.Mutex
	output    io.Writer
	minLevel  Level
	component string
	taskID    string
}

// New creates a new Logger writing to stdout at info level.
func New() *Logger {
	return &Logger{
		output:   os.Stdout,
		minLevel: LevelInfo,
	}
}

// WithComponent returns a new logger with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: component,
		taskID:    l.taskID,
	}
}

// WithTask returns a new logger scoped to the given task ID.
func (l *Logger) WithTask(taskID string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: l.component,
		taskID:    taskID,
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer (default: stdout).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields formats a map of fields as key=value pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	var parts []string
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return " " + strings.Join(parts, " ")
}

// log writes a log entry: LEVEL TIMESTAMP [component] message key=value ...
func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var f map[string]interface{}
	if len(fields) > 0 && fields[0] != nil {
		f = fields[0]
	}
	if l.taskID != "" {
		merged := make(map[string]interface{}, len(f)+1)
		for k, v := range f {
			merged[k] = v
		}
		merged["task"] = l.taskID
		f = merged
	}
	fieldStr := formatFields(f)

	var line string
	if l.component != "" {
		line = fmt.Sprintf("%-5s %s [%s] %s%s\n", level, timestamp, l.component, msg, fieldStr)
	} else {
		line = fmt.Sprintf("%-5s %s %s%s\n", level, timestamp, msg, fieldStr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}

// --- Retry event helpers ---
// Called by the retry package so attempt and termination activity logs
// with consistent field names.

// AttemptStart logs the start of an attempt.
func (l *Logger) AttemptStart(taskID string, attempt, maxAttempts int) {
	l.Debug("attempt", map[string]interface{}{
		"task":         taskID,
		"attempt":      attempt,
		"max_attempts": maxAttempts,
	})
}

// TaskSucceeded logs a successful task termination.
func (l *Logger) TaskSucceeded(taskID string, attempts int, duration time.Duration) {
	l.Info("task_succeeded", map[string]interface{}{
		"task":     taskID,
		"attempts": attempts,
		"duration": duration.String(),
	})
}

// TaskFailed logs attempt-budget exhaustion.
func (l *Logger) TaskFailed(taskID string, attempts int, duration time.Duration) {
	l.Warn("task_failed", map[string]interface{}{
		"task":     taskID,
		"attempts": attempts,
		"duration": duration.String(),
	})
}

// TaskCanceled logs a task cancellation.
func (l *Logger) TaskCanceled(taskID string, attempts int) {
	l.Info("task_canceled", map[string]interface{}{
		"task":     taskID,
		"attempts": attempts,
	})
}

// GroupTaskAdded logs a task joining a group.
func (l *Logger) GroupTaskAdded(taskID string, tracked int) {
	l.Debug("group_task_added", map[string]interface{}{
		"task":    taskID,
		"tracked": tracked,
	})
}

// GroupDrained logs a group draining to empty.
func (l *Logger) GroupDrained() {
	l.Info("group_drained")
}

// GroupCancelAll logs a bulk cancellation.
func (l *Logger) GroupCancelAll(canceled int) {
	l.Info("group_cancel_all", map[string]interface{}{
		"canceled": canceled,
	})
}

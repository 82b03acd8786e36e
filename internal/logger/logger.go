// Package logger is a small leveled file logger. It logs to a file by
// default so nothing bleeds into the TUI's terminal; console output is
// opt-in.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// F is a shorthand for creating a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration.
type Config struct {
	Level      Level
	FilePath   string // empty disables file logging
	MaxSize    int64  // bytes before rotation
	MaxBackups int
	Console    bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".todoapp", "logs", "todo.log")
	}
	return Config{
		Level:      INFO,
		FilePath:   logPath,
		MaxSize:    10 * 1024 * 1024,
		MaxBackups: 3,
		Console:    false,
	}
}

// Logger writes leveled entries to a file and optionally stderr.
type Logger struct {
	config Config
	mu     sync.Mutex
	file   *os.File
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init initializes the global logger. Later calls are no-ops.
func Init(config Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(config)
	})
	return err
}

// New creates a logger instance.
func New(config Config) (*Logger, error) {
	l := &Logger{config: config}
	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
	}
	return l, nil
}

// rotateIfNeeded performs size-based rotation. Caller holds the lock.
func (l *Logger) rotateIfNeeded() {
	if l.file == nil || l.config.MaxSize <= 0 {
		return
	}
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.config.MaxSize {
		return
	}

	l.file.Close()
	for i := l.config.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", l.config.FilePath, i),
			fmt.Sprintf("%s.%d", l.config.FilePath, i+1))
	}
	os.Rename(l.config.FilePath, l.config.FilePath+".1")

	file, err := os.OpenFile(l.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		l.file = nil
		return
	}
	l.file = file
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if level < l.config.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rotateIfNeeded()

	caller := "???"
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	entry := fmt.Sprintf("[%s] %s %s: %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, caller, msg)
	if len(fields) > 0 {
		entry += " |"
		for _, f := range fields {
			entry += fmt.Sprintf(" %s=%v", f.Key, f.Value)
		}
	}
	entry += "\n"

	var writers []io.Writer
	if l.file != nil {
		writers = append(writers, l.file)
	}
	if l.config.Console {
		writers = append(writers, os.Stderr)
	}
	for _, w := range writers {
		w.Write([]byte(entry))
	}
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Debug logs a debug message using the global logger.
func Debug(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(DEBUG, msg, fields)
	}
}

// Info logs an info message using the global logger.
func Info(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(INFO, msg, fields)
	}
}

// Warn logs a warning message using the global logger.
func Warn(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(WARN, msg, fields)
	}
}

// Error logs an error message using the global logger.
func Error(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(ERROR, msg, fields)
	}
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

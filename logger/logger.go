// Package logger is a small leveled logger that writes to a single file and
// trims it in place once it grows past a line cap.
package logger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultMaxLines is the line cap applied when none is configured.
const DefaultMaxLines = 5000

// maxLogLineBytes bounds a single line when the file is read back for
// trimming.
const maxLogLineBytes = 1024 * 1024

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level's log-line tag.
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

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes timestamped, leveled lines to a file, trimming the file to
// the newest maxLines lines whenever the cap is exceeded.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	level     Level
	maxLines  int
	lineCount int
}

var global *Logger

// fallback covers logging before Init; it writes to stderr and never trims.
var fallback = &Logger{file: os.Stderr, level: LevelInfo, maxLines: 0}

// Init opens (or creates) the log file at path and installs the global
// logger. Caller must Close it on shutdown.
func Init(path string, level Level) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := &Logger{file: f, level: level, maxLines: DefaultMaxLines}
	l.lineCount = l.countLines()
	global = l
	return l, nil
}

// SetLevel changes the minimum severity that gets written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	return l.file.Close()
}

func (l *Logger) log(level Level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	line := fmt.Sprintf("%s [%s] %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		level.String(),
		fmt.Sprintf(format, v...))

	if _, err := l.file.WriteString(line); err != nil {
		return
	}
	l.lineCount++

	if l.maxLines > 0 && l.lineCount > l.maxLines {
		l.trim()
	}
}

// countLines scans the existing file so the cap accounts for old content.
func (l *Logger) countLines() int {
	l.file.Seek(0, 0)
	scanner := bufio.NewScanner(l.file)
	count := 0
	for scanner.Scan() {
		count++
	}
	l.file.Seek(0, 2)
	return count
}

// trim rewrites the file keeping only the newest maxLines lines.
func (l *Logger) trim() {
	l.file.Seek(0, 0)
	scanner := bufio.NewScanner(l.file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLineBytes)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil {
		// Unreadable content must not be truncated away; retry on a later write.
		l.file.Seek(0, 2)
		return
	}
	if len(lines) > l.maxLines {
		lines = lines[len(lines)-l.maxLines:]
	}

	l.file.Truncate(0)
	l.file.Seek(0, 0)
	for _, line := range lines {
		l.file.WriteString(line + "\n")
	}
	l.lineCount = len(lines)
}

func active() *Logger {
	if global != nil {
		return global
	}
	return fallback
}

// Debug logs a debug message through the global logger.
func Debug(format string, v ...any) { active().log(LevelDebug, format, v...) }

// Info logs an info message through the global logger.
func Info(format string, v ...any) { active().log(LevelInfo, format, v...) }

// Warn logs a warning through the global logger.
func Warn(format string, v ...any) { active().log(LevelWarn, format, v...) }

// Error logs an error through the global logger.
func Error(format string, v ...any) { active().log(LevelError, format, v...) }

// Fatal logs an error through the global logger and exits.
func Fatal(format string, v ...any) {
	active().log(LevelError, format, v...)
	os.Exit(1)
}

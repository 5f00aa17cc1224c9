// Package log is a small levelled wrapper around the standard logger.
package log

import (
	"io"
	"log"
	"os"
	"strings"
)

// Level is a logging severity. Messages below the logger's level are dropped.
type Level int

// Levels in increasing severity. LevelNone silences everything.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// String returns the upper-case level name used as the line prefix.
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
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name case-insensitively. Unknown names map
// to LevelInfo.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger prefixes each line with its level. A nil Logger is silent.
type Logger struct {
	logger *log.Logger
	level  Level
}

// New returns a Logger writing to out at the given level.
func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.LstdFlags),
		level:  level,
	}
}

// Default logs to stderr at info level.
func Default() *Logger { return New(os.Stderr, LevelInfo) }

// Discard drops everything.
func Discard() *Logger { return New(io.Discard, LevelNone) }

func (l *Logger) logf(level Level, format string, v ...any) {
	if l == nil || l.level > level {
		return
	}
	l.logger.Printf(level.String()+": "+format, v...)
}

// Debugf, Infof, Warnf and Errorf log at their level.
func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v...) }

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Level returns the minimum level that is written.
func (l *Logger) Level() Level {
	return l.level
}

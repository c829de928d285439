// Package applog provides the leveled log sink used throughout tockemu.
//
// The core transport never talks to logrus directly; it talks to the small
// interface below so that tests can substitute a silent or capturing sink
// without dragging in real I/O, per the "logging as a capability" guidance.
package applog

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is one of the five severities the embedded target's logging
// facility exposes: NONE, ERROR, WARNING, INFO, DEBUG.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel maps the five severity names onto a Level. It is case
// insensitive, matching the tolerance a command-line front-end usually
// wants for a --log-level flag.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "NONE":
		return LevelNone, nil
	case "ERROR":
		return LevelError, nil
	case "WARNING", "WARN":
		return LevelWarning, nil
	case "INFO":
		return LevelInfo, nil
	case "DEBUG":
		return LevelDebug, nil
	default:
		return LevelNone, fmt.Errorf("applog: unknown level %q", s)
	}
}

// Sink is the logging capability the core transport depends on. A Logger
// implements it; tests can implement their own for assertions.
type Sink interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Logger gates a logrus.Logger behind a severity threshold. Unlike logrus's
// own level, LevelNone suppresses everything including ERROR, matching the
// embedded target's "NONE" severity.
type Logger struct {
	level Level
	base  *logrus.Logger
}

// New returns a Logger that only emits entries at or above level.
func New(level Level) *Logger {
	base := logrus.New()
	base.SetLevel(logrus.TraceLevel)
	return &Logger{level: level, base: base}
}

func (l *Logger) enabled(level Level) bool {
	return l != nil && l.level >= level
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.enabled(LevelDebug) {
		l.base.Debugf(format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.enabled(LevelInfo) {
		l.base.Infof(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.enabled(LevelWarning) {
		l.base.Warnf(format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	if l.enabled(LevelError) {
		l.base.Errorf(format, args...)
	}
}

// Discard is a Sink that drops every entry. Useful as a default so callers
// never need a nil check before logging.
var Discard Sink = discard{}

type discard struct{}

func (discard) Debugf(string, ...any) {}
func (discard) Infof(string, ...any)  {}
func (discard) Warnf(string, ...any)  {}
func (discard) Errorf(string, ...any) {}

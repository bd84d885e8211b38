// Package logger holds the process-wide zap logger used by every package of the viewer.
package logger

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the severity of a viewer log message.
type Level int

const (
	LevelMsg Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelMsg:
		return "msg"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// ParseLevel accepts both the viewer names (msg, warning) and zap names (debug, warn).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "msg", "debug", "":
		return LevelMsg, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	}
	return LevelMsg, errors.Errorf("unknown log level %q", s)
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarning:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.DebugLevel
}

func fromZap(l zapcore.Level) Level {
	switch {
	case l >= zapcore.ErrorLevel:
		return LevelError
	case l == zapcore.WarnLevel:
		return LevelWarning
	case l == zapcore.InfoLevel:
		return LevelInfo
	}
	return LevelMsg
}

// Sink receives every entry that passes the level filter.
type Sink func(level Level, message string)

// Log is the shared logger. It is a no-op until Init is called.
var Log = zap.NewNop()

var (
	mu    sync.Mutex
	sinks []Sink
)

// Init builds the shared logger with the given minimum level.
func Init(level Level) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level.zap())
	cfg.DisableStacktrace = true
	l, err := cfg.Build(zap.Hooks(dispatch))
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	Log = l
	return nil
}

// AddSink registers an additional receiver of log entries.
func AddSink(s Sink) {
	mu.Lock()
	sinks = append(sinks, s)
	mu.Unlock()
}

// ResetSinks drops every registered sink.
func ResetSinks() {
	mu.Lock()
	sinks = nil
	mu.Unlock()
}

// Use replaces the shared logger, keeping the sink hook attached.
func Use(l *zap.Logger) {
	Log = l.WithOptions(zap.Hooks(dispatch))
}

func dispatch(e zapcore.Entry) error {
	mu.Lock()
	defer mu.Unlock()
	for _, s := range sinks {
		s(fromZap(e.Level), e.Message)
	}
	return nil
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}

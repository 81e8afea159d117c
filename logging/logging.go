// Package logging is the system's single mutable global logger: one
// mutex-guarded sink that every goroutine (the search engine, the worker
// pool, the result store) writes through, exposed as a small set of free
// functions plus a level filter, per spec.md §9's "mutable global logger"
// requirement.
//
// Lines render as `DD.MM.YYYY HH:MM:SS [LEVEL] message`, per spec.md §6.
// Large integers in a message should be pre-formatted with GroupDigits so
// they render with underscore separators every three digits.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	log   *zap.Logger
	level = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	mu.Lock()
	log = newLogger()
	mu.Unlock()
}

func newLogger() *zap.Logger {
	cfg := zapcore.EncoderConfig{
		MessageKey:       "M",
		LevelKey:         "L",
		TimeKey:          "T",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      bracketLevelEncoder,
		EncodeTime:       stampTimeEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(zapcore.AddSync(os.Stdout)),
		level,
	)

	return zap.New(core)
}

// bracketLevelEncoder renders a zap level as spec.md §6's "[LEVEL]" token,
// mapping zap's "warn" to the spec's "WARNING".
func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	name := strings.ToUpper(l.String())
	if l == zapcore.WarnLevel {
		name = "WARNING"
	}
	enc.AppendString("[" + name + "]")
}

// stampTimeEncoder renders a timestamp as spec.md §6's "DD.MM.YYYY HH:MM:SS".
func stampTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("02.01.2006 15:04:05"))
}

// SetVerbose switches the global level filter between Info (default) and
// Debug (set by the CLI's -v/--verbose flag).
func SetVerbose(v bool) {
	if v {
		level.SetLevel(zap.DebugLevel)
	} else {
		level.SetLevel(zap.InfoLevel)
	}
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return log
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) { current().Debug(fmt.Sprintf(format, args...)) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { current().Info(fmt.Sprintf(format, args...)) }

// Warnf logs a formatted message at warning level.
func Warnf(format string, args ...interface{}) { current().Warn(fmt.Sprintf(format, args...)) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) { current().Error(fmt.Sprintf(format, args...)) }

// Sync flushes any buffered log entries; callers invoke this before process exit.
func Sync() error {
	return current().Sync()
}

// Package monitor holds the logging and configuration shared by the upowerchart commands.
package monitor

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var baseLogger = newLogger(os.Stderr)

// newLogger builds a console logger writing to w, sharing the package level.
func newLogger(w io.Writer) *zap.SugaredLogger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), atomicLevel)
	return zap.New(core).Sugar()
}

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomicLevel.SetLevel(zapLevels[l])
}

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel {
	switch atomicLevel.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.InfoLevel:
		return LevelInfo
	default:
		return LevelError
	}
}

// ValidLogLevel reports whether s names a known level.
func ValidLogLevel(s string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

func logf(l LogLevel, format string, args ...interface{}) {
	msg := format
	// Plain messages skip formatting so literal % characters survive.
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	switch l {
	case LevelDebug:
		baseLogger.Debug(msg)
	case LevelWarn:
		baseLogger.Warn(msg)
	case LevelError:
		baseLogger.Error(msg)
	default:
		baseLogger.Info(msg)
	}
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// Sync flushes buffered log output.
func Sync() { _ = baseLogger.Sync() }

// Timing helper for phases.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}

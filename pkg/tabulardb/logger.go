package tabulardb

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
)

// LogLevel mirrors the teacher's pkg/api/logger.go severity levels.
type LogLevel int

const (
	LogError LogLevel = iota
	LogWarn
	LogInfo
	LogDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogError:
		return "ERROR"
	case LogWarn:
		return "WARN"
	case LogInfo:
		return "INFO"
	case LogDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger is the injected logging interface a Table uses to report
// operation events (spec.md §9's design note: "model as an injected
// Logger interface on the table; do not use process-wide state").
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DefaultLogger writes formatted lines to an io.Writer, gated by level.
// Grounded on the teacher's pkg/api/logger.go DefaultLogger.
type DefaultLogger struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
}

// NewDefaultLogger creates a DefaultLogger writing to os.Stdout.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level, output: os.Stdout}
}

// NewDefaultLoggerWithOutput creates a DefaultLogger writing to output.
func NewDefaultLoggerWithOutput(level LogLevel, output io.Writer) *DefaultLogger {
	return &DefaultLogger{level: level, output: output}
}

func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *DefaultLogger) log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level > l.level {
		return
	}
	fmt.Fprintf(l.output, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debug(format string, args ...interface{}) { l.log(LogDebug, format, args...) }
func (l *DefaultLogger) Info(format string, args ...interface{})  { l.log(LogInfo, format, args...) }
func (l *DefaultLogger) Warn(format string, args ...interface{})  { l.log(LogWarn, format, args...) }
func (l *DefaultLogger) Error(format string, args ...interface{}) { l.log(LogError, format, args...) }

// zapLogger adapts a *zap.SugaredLogger to the Logger interface, so
// callers who already run zap elsewhere (as the teacher does, pulling it
// in transitively through pingcap/log) can route a table's verbose/
// paranoia event stream through their existing structured logger instead
// of the plain DefaultLogger.
type zapLogger struct {
	mu     sync.Mutex
	level  LogLevel
	sugar  *zap.SugaredLogger
}

// NewZapLogger wraps z as a tabulardb Logger.
func NewZapLogger(z *zap.Logger, level LogLevel) Logger {
	return &zapLogger{level: level, sugar: z.Sugar()}
}

func (l *zapLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *zapLogger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *zapLogger) allowed(level LogLevel) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level <= l.level
}

func (l *zapLogger) Debug(format string, args ...interface{}) {
	if l.allowed(LogDebug) {
		l.sugar.Debugf(format, args...)
	}
}

func (l *zapLogger) Info(format string, args ...interface{}) {
	if l.allowed(LogInfo) {
		l.sugar.Infof(format, args...)
	}
}

func (l *zapLogger) Warn(format string, args ...interface{}) {
	if l.allowed(LogWarn) {
		l.sugar.Warnf(format, args...)
	}
}

func (l *zapLogger) Error(format string, args ...interface{}) {
	if l.allowed(LogError) {
		l.sugar.Errorf(format, args...)
	}
}

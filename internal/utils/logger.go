package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelError LogLevel = "error"
)

// Logger wraps logrus with a printf-style API. Every method takes an optional
// request id that is attached as the "reqid" field.
type Logger struct {
	level      LogLevel
	base       *logrus.Logger
	RawBodyLog bool
}

func NewLogger(level string, rawBodyLog bool) *Logger {
	return NewLoggerWithOutput(os.Stdout, level, rawBodyLog)
}

func NewLoggerWithOutput(out io.Writer, level string, rawBodyLog bool) *Logger {
	logLevel := parseLogLevel(level)

	base := logrus.New()
	base.SetOutput(out)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	base.SetLevel(toLogrusLevel(logLevel))

	return &Logger{
		level:      logLevel,
		base:       base,
		RawBodyLog: rawBodyLog,
	}
}

func NewDiscardLogger() *Logger {
	return NewLoggerWithOutput(io.Discard, string(LevelInfo), false)
}

func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) entry(reqID *string) *logrus.Entry {
	if reqID == nil || *reqID == "" {
		return logrus.NewEntry(l.base)
	}
	return l.base.WithField("reqid", *reqID)
}

func (l *Logger) Info(reqID *string, format string, v ...any) {
	l.entry(reqID).Infof(format, v...)
}

func (l *Logger) Error(reqID *string, format string, v ...any) {
	l.entry(reqID).Errorf(format, v...)
}

func (l *Logger) Debug(reqID *string, format string, v ...any) {
	l.entry(reqID).Debugf(format, v...)
}

func (l *Logger) Fatal(v ...any) {
	l.base.Fatal(v...)
}

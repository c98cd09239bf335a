package logger

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

// RequestIDKey is the context key under which middleware stores the request id
const RequestIDKey contextKey = "request_id"

// Options configures the process-wide logrus logger
type Options struct {
	Level      string
	File       string // rotating log file; empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Output     io.Writer // console sink; defaults to stdout
}

// Setup configures the standard logrus logger: JSON to the console, plus a rotating file when requested.
// The returned closer releases the log file and is safe to call when no file is configured.
func Setup(opts Options) io.Closer {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(ParseLevel(opts.Level))

	console := opts.Output
	if console == nil {
		console = os.Stdout
	}

	if opts.File == "" {
		logrus.SetOutput(console)
		return nopCloser{}
	}

	fileWriter := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(console, fileWriter))
	return fileWriter
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps LOG_LEVEL values onto logrus levels, defaulting to info
func ParseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger wraps logrus for structured logging with context support
type Logger struct {
	*logrus.Entry
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithContext creates a logger tagged with the request id carried by ctx, if any
func WithContext(ctx context.Context) *Logger {
	logger := New()
	if ctx == nil {
		return logger
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		logger.Entry = logger.Entry.WithField("request_id", id)
	}
	return logger
}

// ContextWithRequestID returns a copy of ctx carrying the request id
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// WithError attaches an error to the logger
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Entry: l.Entry.WithError(err),
	}
}

package ros

import (
	"os"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/sirupsen/logrus"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// LogModule is the name of the child logger used by nodes, publishers and
// subscribers.
const LogModule = "ros"

// Logger is the root of a tree of module loggers. Each package logs through
// its own child so levels can be set per module.
type Logger interface {
	modular.RootLogger
	// Module returns the named child, created at the root level if missing.
	Module(name string) modular.ModuleLogger
	Severity() LogLevel
	// SetSeverity sets the root level. It propagates to every module.
	SetSeverity(severity LogLevel)
}

type defaultLogger struct {
	modular.RootLogger
}

// NewDefaultLogger logs to stderr at info severity.
func NewDefaultLogger() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return NewLogger(l)
}

// NewLogger wraps an existing logrus logger. The logger's level becomes the
// root level; module levels are filtered before entries reach it.
func NewLogger(l *logrus.Logger) Logger {
	return &defaultLogger{modular.NewRootLogger(l)}
}

func (logger *defaultLogger) Module(name string) modular.ModuleLogger {
	return logger.GetOrCreateChild(name, logger.GetLevel())
}

func (logger *defaultLogger) Severity() LogLevel {
	switch logger.GetLevel() {
	case logrus.DebugLevel, logrus.TraceLevel:
		return LogLevelDebug
	case logrus.InfoLevel:
		return LogLevelInfo
	case logrus.WarnLevel:
		return LogLevelWarn
	case logrus.ErrorLevel:
		return LogLevelError
	default:
		return LogLevelFatal
	}
}

func (logger *defaultLogger) SetSeverity(severity LogLevel) {
	logger.SetLevel(severity.logrusLevel())
}

func (severity LogLevel) logrusLevel() logrus.Level {
	switch severity {
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelInfo:
		return logrus.InfoLevel
	case LogLevelWarn:
		return logrus.WarnLevel
	case LogLevelError:
		return logrus.ErrorLevel
	default:
		return logrus.FatalLevel
	}
}

// ParseLogLevel accepts the logrus level names ("debug", "info", "warning", ...).
func ParseLogLevel(s string) (LogLevel, error) {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return LogLevelInfo, err
	}
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return LogLevelDebug, nil
	case logrus.InfoLevel:
		return LogLevelInfo, nil
	case logrus.WarnLevel:
		return LogLevelWarn, nil
	case logrus.ErrorLevel:
		return LogLevelError, nil
	default:
		return LogLevelFatal, nil
	}
}

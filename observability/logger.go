package observability

import (
	"io"
	"strings"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"
)

// Logger is the subset of an mtlog logger that path rewriting and watching use.
// Messages are mtlog message templates: "Updating {Kind}: {Old} --> {New}".
type Logger interface {
	Verbose(messageTemplate string, args ...any)
	Debug(messageTemplate string, args ...any)
	Info(messageTemplate string, args ...any)
	Warn(messageTemplate string, args ...any)
	Error(messageTemplate string, args ...any)

	// ForContext returns a child logger that attaches key to every event.
	ForContext(key string, value any) Logger
}

// LogLevel is the minimum level of events a logger writes.
type LogLevel = core.LogEventLevel

// Levels selectable from --verbosity.
const (
	VerboseLevel = core.VerboseLevel
	DebugLevel   = core.DebugLevel
	InfoLevel    = core.InformationLevel
	WarnLevel    = core.WarningLevel
	ErrorLevel   = core.ErrorLevel
)

// ParseLogLevel maps a CLI verbosity name to a log level.
// Unknown names fall back to InfoLevel.
func ParseLogLevel(verbosity string) LogLevel {
	switch strings.ToLower(verbosity) {
	case "q", "quiet":
		return WarnLevel
	case "d", "detailed":
		return DebugLevel
	case "diag", "diagnostic":
		return VerboseLevel
	default:
		return InfoLevel
	}
}

// NewLogger returns a timestamped console logger writing events at or above level
// to w.
func NewLogger(w io.Writer, level LogLevel) Logger {
	return mtlogLogger{mtlog.New(
		mtlog.WithSink(sinks.NewConsoleSinkWithWriter(w)),
		mtlog.WithTimestamp(),
		mtlog.WithMinimumLevel(level),
	)}
}

type mtlogLogger struct {
	core.Logger
}

func (l mtlogLogger) ForContext(key string, value any) Logger {
	return mtlogLogger{l.Logger.ForContext(key, value)}
}

// NewNullLogger returns a logger that discards everything.
func NewNullLogger() Logger {
	return nullLogger{}
}

type nullLogger struct{}

func (nullLogger) Verbose(string, ...any)          {}
func (nullLogger) Debug(string, ...any)            {}
func (nullLogger) Info(string, ...any)             {}
func (nullLogger) Warn(string, ...any)             {}
func (nullLogger) Error(string, ...any)            {}
func (n nullLogger) ForContext(string, any) Logger { return n }

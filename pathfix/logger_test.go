package pathfix

import (
	"fmt"
	"strings"
	"sync"

	"github.com/willibrandon/gohintpath/observability"
)

type logEntry struct {
	Level    string
	Template string
	Args     []any
}

// Message renders the template by substituting each {Property} with the next argument.
func (e logEntry) Message() string {
	var b strings.Builder
	args := e.Args
	rest := e.Template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		b.WriteString(rest[:open])
		if len(args) > 0 {
			b.WriteString(fmt.Sprint(args[0]))
			args = args[1:]
		}
		rest = rest[open+end+1:]
	}
	b.WriteString(rest)
	return b.String()
}

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *recordingLogger) record(level, template string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{Level: level, Template: template, Args: args})
}

func (l *recordingLogger) Verbose(t string, args ...any) { l.record("verbose", t, args) }
func (l *recordingLogger) Debug(t string, args ...any)   { l.record("debug", t, args) }
func (l *recordingLogger) Info(t string, args ...any)    { l.record("info", t, args) }
func (l *recordingLogger) Warn(t string, args ...any)    { l.record("warn", t, args) }
func (l *recordingLogger) Error(t string, args ...any)   { l.record("error", t, args) }

func (l *recordingLogger) ForContext(string, any) observability.Logger { return l }

func (l *recordingLogger) at(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range *l.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (l *recordingLogger) messages(level string) []string {
	var out []string
	for _, e := range l.at(level) {
		out = append(out, e.Message())
	}
	return out
}

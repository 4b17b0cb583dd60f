package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Verbosity levels
type Verbosity int

const (
	// VerbosityQuiet shows errors and warnings only
	VerbosityQuiet Verbosity = iota
	// VerbosityNormal shows the run summary and every changed path (default)
	VerbosityNormal
	// VerbosityDetailed shows above + per-project progress
	VerbosityDetailed
	// VerbosityDiagnostic shows above + skipped paths and state changes
	VerbosityDiagnostic
)

// ParseVerbosity maps a --verbosity value to a level. Unknown values mean normal.
func ParseVerbosity(s string) Verbosity {
	switch strings.ToLower(s) {
	case "q", "quiet":
		return VerbosityQuiet
	case "d", "detailed":
		return VerbosityDetailed
	case "diag", "diagnostic":
		return VerbosityDiagnostic
	default:
		return VerbosityNormal
	}
}

// Console provides output abstraction
type Console struct {
	out       io.Writer
	err       io.Writer
	verbosity Verbosity
	mu        sync.Mutex
	colors    bool
}

// NewConsole creates a new console
func NewConsole(out, err io.Writer, verbosity Verbosity) *Console {
	c := &Console{
		out:       out,
		err:       err,
		verbosity: verbosity,
		colors:    IsColorEnabled(),
	}

	if !c.colors {
		DisableColors()
	}

	return c
}

// DefaultConsole creates a console with stdout/stderr and normal verbosity
func DefaultConsole() *Console {
	return NewConsole(os.Stdout, os.Stderr, VerbosityNormal)
}

// Out returns the writer for regular output; log sinks write here.
func (c *Console) Out() io.Writer {
	return c.out
}

// SetVerbosity sets the verbosity level
func (c *Console) SetVerbosity(v Verbosity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verbosity = v
}

// GetVerbosity returns the current verbosity level
func (c *Console) GetVerbosity() Verbosity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verbosity
}

// Println writes line to output
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, a...)
}

// Printf writes formatted output
func (c *Console) Printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, format, a...)
}

func (c *Console) write(w io.Writer, col colorPrinter, format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.colors {
		_, _ = col.Fprintf(w, format+"\n", a...)
	} else {
		_, _ = fmt.Fprintf(w, format+"\n", a...)
	}
}

type colorPrinter interface {
	Fprintf(w io.Writer, format string, a ...any) (int, error)
}

// Success writes success message (green)
func (c *Console) Success(format string, a ...any) {
	if c.GetVerbosity() >= VerbosityNormal {
		c.write(c.out, ColorSuccess, format, a...)
	}
}

// Error writes error message (red)
func (c *Console) Error(format string, a ...any) {
	c.write(c.err, ColorError, "Error: "+format, a...)
}

// Warning writes warning message (yellow)
func (c *Console) Warning(format string, a ...any) {
	c.write(c.out, ColorWarning, "Warning: "+format, a...)
}

// Info writes info message (cyan)
func (c *Console) Info(format string, a ...any) {
	if c.GetVerbosity() >= VerbosityNormal {
		c.write(c.out, ColorInfo, format, a...)
	}
}

// Header writes a bold section heading
func (c *Console) Header(format string, a ...any) {
	if c.GetVerbosity() >= VerbosityNormal {
		c.write(c.out, ColorHeader, format, a...)
	}
}

// Detail writes detailed message
func (c *Console) Detail(format string, a ...any) {
	if c.GetVerbosity() >= VerbosityDetailed {
		c.mu.Lock()
		defer c.mu.Unlock()
		_, _ = fmt.Fprintf(c.out, format+"\n", a...)
	}
}

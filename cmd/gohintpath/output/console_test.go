package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConsole(v Verbosity) (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut, v)
	c.colors = false
	return c, &out, &errOut
}

func TestConsole_Verbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity Verbosity
		write     func(c *Console)
		want      string
	}{
		{"info at normal", VerbosityNormal, func(c *Console) { c.Info("fixed %d", 2) }, "fixed 2\n"},
		{"info at quiet", VerbosityQuiet, func(c *Console) { c.Info("fixed") }, ""},
		{"warning at quiet", VerbosityQuiet, func(c *Console) { c.Warning("careful") }, "Warning: careful\n"},
		{"detail at normal", VerbosityNormal, func(c *Console) { c.Detail("x") }, ""},
		{"detail at detailed", VerbosityDetailed, func(c *Console) { c.Detail("x") }, "x\n"},
		{"success", VerbosityNormal, func(c *Console) { c.Success("done") }, "done\n"},
		{"header", VerbosityNormal, func(c *Console) { c.Header("== %s ==", "App") }, "== App ==\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := newTestConsole(tt.verbosity)
			tt.write(c)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestConsole_ErrorGoesToStderr(t *testing.T) {
	c, out, errOut := newTestConsole(VerbosityQuiet)
	c.Error("broken %s", "thing")

	assert.Empty(t, out.String())
	assert.Equal(t, "Error: broken thing\n", errOut.String())
}

func TestParseVerbosity(t *testing.T) {
	assert.Equal(t, VerbosityQuiet, ParseVerbosity("q"))
	assert.Equal(t, VerbosityQuiet, ParseVerbosity("Quiet"))
	assert.Equal(t, VerbosityDetailed, ParseVerbosity("detailed"))
	assert.Equal(t, VerbosityDiagnostic, ParseVerbosity("diag"))
	assert.Equal(t, VerbosityNormal, ParseVerbosity("minimal"))
	assert.Equal(t, VerbosityNormal, ParseVerbosity(""))
}

package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func setupBufferedTracing(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	config := DefaultTracerConfig()
	config.ExporterType = "stdout"
	config.Output = buf

	ctx := context.Background()
	tp, err := SetupTracing(ctx, config)
	if err != nil {
		t.Fatalf("SetupTracing() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := ShutdownTracing(ctx, tp); err != nil {
			t.Errorf("ShutdownTracing() failed: %v", err)
		}
	})
	return buf
}

func TestStartBatchSpan(t *testing.T) {
	buf := setupBufferedTracing(t)

	ctx, span := StartBatchSpan(context.Background(), "run-1", "forward", 3, 2)
	if !span.SpanContext().IsValid() {
		t.Error("Span context should be valid")
	}
	RecordChanges(ctx, 5)
	EndSpanWithError(span, nil)

	output := buf.String()
	for _, want := range []string{"hintpath.batch", "run-1", "hintpath.change.count"} {
		if !strings.Contains(output, want) {
			t.Errorf("exported span missing %q:\n%s", want, output)
		}
	}
}

func TestStartProjectSpan(t *testing.T) {
	buf := setupBufferedTracing(t)

	batchCtx, batch := StartBatchSpan(context.Background(), "run-2", "backward", 1, 1)
	_, span := StartProjectSpan(batchCtx, "/sln/App/App.csproj", "backward")

	if span.SpanContext().TraceID() != batch.SpanContext().TraceID() {
		t.Error("project span should share the batch trace")
	}

	EndSpanWithError(span, errors.New("failed to parse project XML"))
	EndSpanWithError(batch, nil)

	output := buf.String()
	if !strings.Contains(output, "/sln/App/App.csproj") {
		t.Errorf("exported span missing project path:\n%s", output)
	}
	if !strings.Contains(output, "failed to parse project XML") {
		t.Errorf("exported span missing error:\n%s", output)
	}
}

func TestTracerName(t *testing.T) {
	expected := "github.com/willibrandon/gohintpath"
	if TracerName != expected {
		t.Errorf("TracerName = %q, want %q", TracerName, expected)
	}
}

func TestAttributeKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"RunID", string(AttrRunID), "hintpath.run.id"},
		{"Direction", string(AttrDirection), "hintpath.direction"},
		{"ProjectPath", string(AttrProjectPath), "hintpath.project.path"},
		{"PackageCount", string(AttrPackageCount), "hintpath.package.count"},
		{"ChangeCount", string(AttrChangeCount), "hintpath.change.count"},
	}

	for _, tt := range tests {
		if tt.key != tt.expected {
			t.Errorf("%s = %q, want %q", tt.name, tt.key, tt.expected)
		}
	}
}

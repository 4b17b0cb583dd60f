package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the tracer name for gohintpath operations
	TracerName = "github.com/willibrandon/gohintpath"
)

// Common attribute keys
const (
	AttrRunID        = attribute.Key("hintpath.run.id")
	AttrDirection    = attribute.Key("hintpath.direction")
	AttrProjectPath  = attribute.Key("hintpath.project.path")
	AttrPackageCount = attribute.Key("hintpath.package.count")
	AttrChangeCount  = attribute.Key("hintpath.change.count")
)

// StartBatchSpan starts a span covering one sweep over a solution's projects
func StartBatchSpan(ctx context.Context, runID, direction string, projectCount, packageCount int) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, "hintpath.batch",
		trace.WithAttributes(
			AttrRunID.String(runID),
			AttrDirection.String(direction),
			attribute.Int("hintpath.project.count", projectCount),
			AttrPackageCount.Int(packageCount),
		),
	)
}

// StartProjectSpan starts a span for rewriting one project
func StartProjectSpan(ctx context.Context, projectPath, direction string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, "hintpath.project",
		trace.WithAttributes(
			AttrProjectPath.String(projectPath),
			AttrDirection.String(direction),
		),
	)
}

// RecordChanges records the number of rewritten paths on the current span
func RecordChanges(ctx context.Context, changes int) {
	SetAttributes(ctx, AttrChangeCount.Int(changes))
}

// EndSpanWithError ends a span with an error status
func EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

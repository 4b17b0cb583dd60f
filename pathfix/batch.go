package pathfix

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/willibrandon/gohintpath/msbuild"
	"github.com/willibrandon/gohintpath/observability"
)

// ProjectLoader loads a project with the given global properties.
type ProjectLoader func(path string, globals map[string]string) (*msbuild.Project, error)

// Batch rewrites every project of a solution, one project at a time.
type Batch struct {
	// SolutionDir is the absolute solution directory.
	SolutionDir string

	// Packages are the installed packages; records without an install path are
	// reported once and ignored.
	Packages []PackageRecord

	// Direction selects fix (Forward) or revert (Backward).
	Direction Direction

	// DryRun reports changes without saving any project.
	DryRun bool

	// Logger receives progress, change and failure messages. Defaults to a null logger.
	Logger observability.Logger

	// Load loads one project. Defaults to msbuild.LoadProject.
	Load ProjectLoader
}

// ProjectResult is the outcome of one project of a batch.
type ProjectResult struct {
	Path    string
	Changes int
	Saved   bool
	Err     error
}

// Summary is the outcome of a batch.
type Summary struct {
	RunID     string
	Direction Direction
	Projects  []ProjectResult
	Changes   int
	Failed    int
	Excluded  int
}

// Run processes projectPaths strictly in order. A failure in one project is logged
// and recorded in the summary; it never prevents the remaining projects from being
// processed. Run stops early only when ctx is cancelled.
func (b *Batch) Run(ctx context.Context, projectPaths []string) (*Summary, error) {
	logger := b.Logger
	if logger == nil {
		logger = observability.NewNullLogger()
	}
	load := b.Load
	if load == nil {
		load = msbuild.LoadProject
	}

	runID := uuid.NewString()
	logger = logger.ForContext("RunId", runID)

	packages := UsablePackages(b.Packages, logger)
	summary := &Summary{
		RunID:     runID,
		Direction: b.Direction,
		Excluded:  len(b.Packages) - len(packages),
	}

	ctx, span := observability.StartBatchSpan(ctx, runID, b.Direction.String(), len(projectPaths), len(packages))
	rewriter := NewRewriter(logger)

	for _, path := range projectPaths {
		if err := ctx.Err(); err != nil {
			observability.EndSpanWithError(span, err)
			return summary, err
		}

		if b.Direction == Backward {
			logger.Info("===== Restore paths for NuGet packages in project {Project} =====", path)
		} else {
			logger.Info("===== Fix paths for NuGet packages in project {Project} =====", path)
		}

		result := b.processProject(ctx, rewriter, load, path, packages)
		switch {
		case result.Err != nil:
			logger.Error("Unexpected error: {Error}", result.Err)
			summary.Failed++
			observability.ProjectsProcessedTotal.WithLabelValues("failed").Inc()
		case result.Changes > 0:
			summary.Changes += result.Changes
			observability.ProjectsProcessedTotal.WithLabelValues("changed").Inc()
		default:
			logger.Debug("No paths to update in {Project}", path)
			observability.ProjectsProcessedTotal.WithLabelValues("unchanged").Inc()
		}

		summary.Projects = append(summary.Projects, result)
	}

	observability.RecordChanges(ctx, summary.Changes)
	observability.EndSpanWithError(span, nil)
	return summary, nil
}

// processProject loads, rewrites and saves one project. Errors and panics are
// converted into a *ProjectError on the result.
func (b *Batch) processProject(ctx context.Context, rewriter *Rewriter, load ProjectLoader, path string, packages []PackageRecord) (result ProjectResult) {
	result.Path = path

	ctx, span := observability.StartProjectSpan(ctx, path, b.Direction.String())
	defer func() {
		if r := recover(); r != nil {
			result.Err = &ProjectError{ProjectPath: path, Err: fmt.Errorf("panic: %v", r)}
		}
		observability.EndSpanWithError(span, result.Err)
	}()

	fail := func(err error) ProjectResult {
		result.Err = &ProjectError{ProjectPath: path, Err: err}
		return result
	}

	proj, err := load(path, map[string]string{"SolutionDir": solutionDirProperty(b.SolutionDir)})
	if err != nil {
		return fail(err)
	}

	rc, err := NewContext(b.SolutionDir, proj.Directory(), packages)
	if err != nil {
		return fail(err)
	}

	changes, err := rewriter.RewritePaths(proj, rc, b.Direction)
	if err != nil {
		return fail(err)
	}
	result.Changes = changes
	observability.RecordChanges(ctx, changes)

	if changes == 0 || b.DryRun {
		return result
	}
	if err := proj.Save(); err != nil {
		return fail(err)
	}
	result.Saved = true
	return result
}

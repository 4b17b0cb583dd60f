package pathfix

import (
	"errors"
	"regexp"

	"github.com/willibrandon/gohintpath/msbuild"
	"github.com/willibrandon/gohintpath/observability"
)

// EnsureBuildImportsTarget is the target NuGet generates to fail the build when a
// package's build imports are missing.
const EnsureBuildImportsTarget = "EnsureNuGetPackageBuildImports"

// Construct kinds, as they appear in "Updating <kind>: <old> --> <new>" log lines.
const (
	KindHintPath        = "HintPath"
	KindImport          = "Import"
	KindImportCondition = "Import condition"
	KindErrorCondition  = "Error condition"
	KindErrorText       = "Error text"
)

// Template shapes NuGet writes into projects. Group 1 is the embedded path.
var (
	importConditionPattern = regexp.MustCompile(`^Exists\('([^']*)'\)$`)
	errorConditionPattern  = regexp.MustCompile(`^!Exists\('([^']*)'\)$`)
	errorTextPattern       = regexp.MustCompile(`^\$\(\[System\.String\]::Format\('\$\(ErrorText\)', '([^']*)'\)\)$`)
)

// Rewriter walks a project and rewrites every package path it finds.
type Rewriter struct {
	logger observability.Logger
}

// NewRewriter creates a Rewriter that reports each change and each unusual skip
// to logger. A nil logger discards output.
func NewRewriter(logger observability.Logger) *Rewriter {
	if logger == nil {
		logger = observability.NewNullLogger()
	}
	return &Rewriter{logger: logger}
}

// RewritePaths rewrites, in place, the package paths of proj in direction dir and
// returns the number of changed strings. Candidates are visited in a fixed order:
// reference HintPaths, Import statements (with their Exists condition), then the
// Condition and Text of the Error tasks in EnsureBuildImportsTarget.
//
// A candidate that cannot be rewritten is skipped and the walk goes on. A count of
// zero means the project must not be saved.
func (r *Rewriter) RewritePaths(proj *msbuild.Project, ctx *Context, dir Direction) (int, error) {
	if proj == nil {
		return 0, errors.New("project is nil")
	}
	if ctx == nil {
		return 0, errors.New("rewrite context is nil")
	}

	proj.SetGlobalProperty("SolutionDir", ctx.SolutionDirProperty())

	w := &walk{
		logger: r.logger,
		ctx:    ctx,
		dir:    dir,
		props:  proj.Properties(),
	}

	checks := proj.ErrorChecks(EnsureBuildImportsTarget)

	count := w.references(proj.References())
	count += w.imports(proj.Imports())
	count += w.errorConditions(checks)
	count += w.errorTexts(checks)
	return count, nil
}

type walk struct {
	logger observability.Logger
	ctx    *Context
	dir    Direction
	props  *msbuild.Properties
}

func (w *walk) references(refs []*msbuild.Reference) int {
	n := 0
	for _, ref := range refs {
		old := ref.HintPath()
		if old == "" {
			continue
		}
		value, ok := w.decide(KindHintPath, old, ref.EvaluatedHintPath())
		if !ok {
			continue
		}
		ref.SetHintPath(value)
		w.updated(KindHintPath, old, value)
		n++
	}
	return n
}

// imports rewrites each Import's Project attribute and, in lock-step, an
// Exists('...') condition that guards exactly the same literal path.
func (w *walk) imports(imports []*msbuild.Import) int {
	n := 0
	for _, imp := range imports {
		old := imp.Project()
		if old == "" {
			continue
		}
		value, ok := w.decide(KindImport, old, imp.EvaluatedProject())
		if !ok {
			continue
		}
		imp.SetProject(value)
		w.updated(KindImport, old, value)
		n++

		cond := imp.Condition()
		m := importConditionPattern.FindStringSubmatchIndex(cond)
		if m == nil || cond[m[2]:m[3]] != old {
			continue
		}
		imp.SetCondition(splice(cond, m[2], m[3], value))
		w.updated(KindImportCondition, old, value)
		n++
	}
	return n
}

func (w *walk) errorConditions(checks []*msbuild.ErrorCheck) int {
	n := 0
	for _, check := range checks {
		if updated, ok := w.rewriteTemplate(KindErrorCondition, check.Condition(), errorConditionPattern); ok {
			check.SetCondition(updated)
			n++
		}
	}
	return n
}

func (w *walk) errorTexts(checks []*msbuild.ErrorCheck) int {
	n := 0
	for _, check := range checks {
		if updated, ok := w.rewriteTemplate(KindErrorText, check.Text(), errorTextPattern); ok {
			check.SetText(updated)
			n++
		}
	}
	return n
}

// rewriteTemplate rewrites the path captured by pattern inside s. The captured
// expression is expanded for classification only; the replacement is spliced into
// the original string so text outside the capture stays verbatim.
func (w *walk) rewriteTemplate(kind, s string, pattern *regexp.Regexp) (string, bool) {
	m := pattern.FindStringSubmatchIndex(s)
	if m == nil {
		return "", false
	}
	expr := s[m[2]:m[3]]
	value, ok := w.decide(kind, expr, w.props.Expand(expr))
	if !ok {
		return "", false
	}
	w.updated(kind, expr, value)
	return splice(s, m[2], m[3], value), true
}

func (w *walk) decide(kind, unevaluated, evaluated string) (string, bool) {
	out := Classify(unevaluated, evaluated, w.ctx, w.dir)
	switch out.Action {
	case Rewrite:
		return out.Value, out.Value != unevaluated
	case Skipped:
		observability.PathSkipsTotal.WithLabelValues(kind, out.Reason.String()).Inc()
		if out.Reason == NotOwnedByPackage {
			w.logger.Verbose("Skipping {Kind} {Path}: not owned by a package", kind, unevaluated)
		} else {
			w.logger.Warn("Skipping {Kind} {Path}: {Error}", kind, unevaluated, out.Err)
		}
	}
	return "", false
}

func (w *walk) updated(kind, old, value string) {
	w.logger.Info("Updating {Kind}: {Old} --> {New}", kind, old, value)
	observability.PathRewritesTotal.WithLabelValues(kind, w.dir.String()).Inc()
}

func splice(s string, start, end int, replacement string) string {
	return s[:start] + replacement + s[end:]
}

package pathfix

import (
	"fmt"
	"strings"

	"github.com/willibrandon/gohintpath/mspath"
)

// SolutionDirToken is the property reference MSBuild resolves to the solution directory.
const SolutionDirToken = "$(SolutionDir)"

// Direction selects which way paths are rewritten.
type Direction int

const (
	// Forward rewrites project-relative or absolute package paths to $(SolutionDir) form.
	Forward Direction = iota
	// Backward rewrites $(SolutionDir) package paths to project-relative form.
	Backward
)

// String returns the lower-case direction name used in logs and metrics.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Action is the decision Classify makes for one path.
type Action int

const (
	// Unchanged means the path is already in the requested form.
	Unchanged Action = iota
	// Rewrite means the path must be replaced by Outcome.Value.
	Rewrite
	// Skipped means the path cannot or must not be rewritten; see Outcome.Reason.
	Skipped
)

// SkipReason explains a Skipped outcome.
type SkipReason int

const (
	// NoReason is the reason of outcomes that were not skipped.
	NoReason SkipReason = iota
	// InvalidCharacters means the path could not be resolved to an absolute form.
	InvalidCharacters
	// NotOwnedByPackage means no known package under the solution owns the path.
	NotOwnedByPackage
	// NoCommonAncestor means no relative path leads from the project to the target.
	NoCommonAncestor
)

// String returns the reason name used in logs and metrics.
func (r SkipReason) String() string {
	switch r {
	case InvalidCharacters:
		return "invalid_characters"
	case NotOwnedByPackage:
		return "not_owned_by_package"
	case NoCommonAncestor:
		return "no_common_ancestor"
	default:
		return "none"
	}
}

// Outcome is the result of classifying one path.
type Outcome struct {
	Action Action

	// Value is the replacement string when Action is Rewrite.
	Value string

	// Reason and Err describe a Skipped outcome.
	Reason SkipReason
	Err    error

	// Package is the package owning the path when Action is Rewrite.
	Package *PackageRecord
}

func skipped(reason SkipReason, err error) Outcome {
	return Outcome{Action: Skipped, Reason: reason, Err: err}
}

// HasSolutionDirToken reports whether value starts with $(SolutionDir). Property
// names are case-insensitive in MSBuild.
func HasSolutionDirToken(value string) bool {
	return mspath.HasPrefixFold(value, SolutionDirToken)
}

// Classify decides how one path should be rewritten. unevaluated is the raw string
// stored in the project; evaluated is the same string with properties expanded.
//
// Forward and backward share the ownership rule: the resolved absolute path must lie
// under the solution directory and under a package install path, both compared on
// whole path segments.
func Classify(unevaluated, evaluated string, ctx *Context, dir Direction) Outcome {
	tokenized := HasSolutionDirToken(unevaluated)
	if (dir == Forward && tokenized) || (dir == Backward && !tokenized) {
		return Outcome{Action: Unchanged}
	}

	if strings.TrimSpace(evaluated) == "" {
		return skipped(NotOwnedByPackage, ErrNotOwnedByPackage)
	}
	if mspath.HasInvalidChars(evaluated) {
		return skipped(InvalidCharacters, fmt.Errorf("%w: %s", ErrInvalidPathCharacters, evaluated))
	}

	absolute := mspath.Join(ctx.ProjectDir, evaluated)
	sep := outputSeparator(unevaluated, ctx)

	remainder, underSolution := mspath.TrimPrefixSep(absolute, ctx.SolutionDir, sep)
	if !underSolution {
		return skipped(NotOwnedByPackage, ErrNotOwnedByPackage)
	}
	owner, owned := ctx.Owner(absolute)
	if !owned {
		return skipped(NotOwnedByPackage, ErrNotOwnedByPackage)
	}

	if dir == Forward {
		return Outcome{Action: Rewrite, Value: SolutionRelative(remainder), Package: owner}
	}

	relative, err := relativePath(ctx.ProjectDir, absolute, sep)
	if err != nil {
		return skipped(NoCommonAncestor, err)
	}
	return Outcome{Action: Rewrite, Value: relative, Package: owner}
}

// outputSeparator is the separator a rewritten value is written with. A value
// written with backslashes keeps them on every host.
func outputSeparator(unevaluated string, ctx *Context) byte {
	if strings.Contains(unevaluated, `\`) {
		return '\\'
	}
	return mspath.Separator(ctx.ProjectDir)
}

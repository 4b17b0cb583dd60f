package pathfix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPathCharacters means a path could not be resolved to an absolute form
	// because it contains characters that are illegal in a path.
	ErrInvalidPathCharacters = errors.New("path contains invalid characters")

	// ErrNotOwnedByPackage means a path is not under the solution directory or not
	// under any known package install path. It is the common "nothing to do" case.
	ErrNotOwnedByPackage = errors.New("path is not owned by an installed package")

	// ErrNoCommonAncestor means no relative path connects the project directory and
	// the target path (for example, they are on different drives).
	ErrNoCommonAncestor = errors.New("paths have no common ancestor")

	// ErrEmptyInstallPath means a package record has no install path and cannot take
	// part in ownership checks.
	ErrEmptyInstallPath = errors.New("package install path is empty")
)

// ProjectError is an unexpected failure while processing one project of a batch.
// It never stops the remaining projects from being processed.
type ProjectError struct {
	ProjectPath string
	Err         error
}

// Error implements the error interface.
func (e *ProjectError) Error() string {
	return fmt.Sprintf("project '%s': %v", e.ProjectPath, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProjectError) Unwrap() error {
	return e.Err
}

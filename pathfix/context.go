// Package pathfix rewrites package paths inside MSBuild projects so that they are
// relative to the solution directory ($(SolutionDir)packages\...) rather than to the
// project or to one developer's machine, and reverts them again.
//
// The engine works on one loaded project at a time and keeps no state between calls.
// Classify decides what a single path should become; Rewriter.RewritePaths walks a
// project and applies those decisions; Batch sweeps every project of a solution.
package pathfix

import (
	"fmt"
	"strings"

	"github.com/willibrandon/gohintpath/mspath"
	"github.com/willibrandon/gohintpath/observability"
)

// PackageRecord identifies an installed package and the directory it was installed to.
type PackageRecord struct {
	ID          string
	InstallPath string
}

// Validate reports ErrEmptyInstallPath for a record that has no install path.
func (r PackageRecord) Validate() error {
	if strings.TrimSpace(r.InstallPath) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyInstallPath, r.ID)
	}
	return nil
}

// UsablePackages returns the records that have an install path, in their original
// order. Each record without one is logged once as a warning and counted.
func UsablePackages(records []PackageRecord, logger observability.Logger) []PackageRecord {
	usable := make([]PackageRecord, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			logger.Warn("Can't fix paths for {PackageId} because the install path is empty", r.ID)
			observability.PackagesExcludedTotal.Inc()
			continue
		}
		usable = append(usable, r)
	}
	return usable
}

// Context is the read-only input of one rewrite pass over one project.
type Context struct {
	// SolutionDir is the absolute solution directory, without a trailing separator.
	SolutionDir string

	// ProjectDir is the absolute directory of the project being rewritten.
	ProjectDir string

	// Packages are the packages whose paths may be rewritten. Earlier records win
	// when install paths overlap.
	Packages []PackageRecord
}

// NewContext validates and normalizes the inputs of a rewrite pass. Both directories
// must be absolute. Package records with an empty install path are dropped; callers
// that need to report them should filter with UsablePackages first.
func NewContext(solutionDir, projectDir string, packages []PackageRecord) (*Context, error) {
	if !mspath.IsAbs(solutionDir) {
		return nil, fmt.Errorf("solution directory must be absolute: %q", solutionDir)
	}
	if !mspath.IsAbs(projectDir) {
		return nil, fmt.Errorf("project directory must be absolute: %q", projectDir)
	}

	ctx := &Context{
		SolutionDir: mspath.Clean(solutionDir),
		ProjectDir:  mspath.Clean(projectDir),
		Packages:    make([]PackageRecord, 0, len(packages)),
	}
	for _, p := range packages {
		if p.Validate() != nil || !mspath.IsAbs(p.InstallPath) {
			continue
		}
		ctx.Packages = append(ctx.Packages, PackageRecord{
			ID:          p.ID,
			InstallPath: mspath.Clean(p.InstallPath),
		})
	}
	return ctx, nil
}

// SolutionDirProperty returns the value MSBuild assigns to $(SolutionDir): the
// solution directory with a trailing separator.
func (c *Context) SolutionDirProperty() string {
	return solutionDirProperty(c.SolutionDir)
}

func solutionDirProperty(dir string) string {
	return strings.TrimRight(dir, `\/`) + string(mspath.Separator(dir))
}

// Owner returns the first package, in supplied order, whose install path contains
// the absolute path p on a segment boundary.
func (c *Context) Owner(p string) (*PackageRecord, bool) {
	for i := range c.Packages {
		if _, ok := mspath.TrimPrefix(p, c.Packages[i].InstallPath); ok {
			return &c.Packages[i], true
		}
	}
	return nil, false
}

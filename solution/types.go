// Package solution reads .NET solution files (.sln, .slnx and .slnf filters) and
// lists the MSBuild projects they contain.
package solution

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Solution is a parsed solution file.
type Solution struct {
	// FilePath is the absolute path of the solution (or solution filter) file.
	FilePath string

	// Dir is the directory of the solution file; for a filter, of its parent solution.
	// It is the value MSBuild uses for $(SolutionDir), without the trailing separator.
	Dir string

	// FormatVersion is the .sln format version ("12.00"), empty for other formats.
	FormatVersion string

	// Projects lists the projects in file order. Solution folders are excluded.
	Projects []Project
}

// Project is a project entry of a solution.
type Project struct {
	// Name is the display name of the project.
	Name string

	// Path is the project path as written in the solution, relative to Dir.
	Path string

	// TypeGUID identifies the project type. It is empty for .slnx entries.
	TypeGUID string
}

// Project type GUIDs that matter when enumerating a solution.
const (
	ProjectTypeCSProject      = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"
	ProjectTypeCSProjectSDK   = "{9A19103F-16F7-4668-BE54-9A1E7A4F7556}"
	ProjectTypeVBProject      = "{F184B08F-C81C-45F6-A57F-5ABD9991F28F}"
	ProjectTypeFSProject      = "{F2A71F9B-5D33-465A-A702-920D77279786}"
	ProjectTypeSolutionFolder = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"
)

// ParseError is a failure to read or parse a solution file.
type ParseError struct {
	FilePath string
	Line     int
	Message  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// IsProjectFile reports whether path has an MSBuild project extension that can carry
// package references (.csproj, .vbproj or .fsproj).
func IsProjectFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csproj", ".vbproj", ".fsproj":
		return true
	}
	return false
}

// AbsolutePath returns the project path resolved against the solution directory.
func (p Project) AbsolutePath(solutionDir string) string {
	return ResolveProjectPath(solutionDir, p.Path)
}

// ProjectPaths returns the absolute paths of the solution's MSBuild projects, in
// solution order and without duplicates.
func (s *Solution) ProjectPaths() []string {
	seen := make(map[string]bool, len(s.Projects))
	paths := make([]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		if !IsProjectFile(p.Path) {
			continue
		}
		abs := p.AbsolutePath(s.Dir)
		if seen[abs] {
			continue
		}
		seen[abs] = true
		paths = append(paths, abs)
	}
	return paths
}

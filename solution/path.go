package solution

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts a path written in a solution file to the host's separator.
// Solution files are authored on Windows and always use backslashes.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
}

// ResolveProjectPath resolves a project path from a solution file against the
// solution directory and cleans it.
func ResolveProjectPath(solutionDir, projectPath string) string {
	if projectPath == "" {
		return ""
	}

	normalized := NormalizePath(projectPath)
	if filepath.IsAbs(normalized) {
		return filepath.Clean(normalized)
	}
	return filepath.Join(solutionDir, normalized)
}

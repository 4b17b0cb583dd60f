package solution

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsSolutionFile checks if a file path has a solution file extension
func IsSolutionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sln", ".slnx", ".slnf":
		return true
	}
	return false
}

// AmbiguousError is returned by Find when a directory holds several solutions.
type AmbiguousError struct {
	Dir   string
	Files []string
}

func (e *AmbiguousError) Error() string {
	names := make([]string, len(e.Files))
	for i, f := range e.Files {
		names[i] = filepath.Base(f)
	}
	return fmt.Sprintf("found more than one solution file in %s (%s); specify which one to use", e.Dir, strings.Join(names, ", "))
}

// Find resolves the solution to work on. A file argument must be a solution file.
// A directory argument (or "" for the working directory) must contain exactly one
// .sln or .slnx file; filters are only used when named explicitly.
func Find(pathOrDir string) (string, error) {
	if pathOrDir == "" {
		pathOrDir = "."
	}

	absPath, err := filepath.Abs(pathOrDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("solution file not found: %s", absPath)
		}
		return "", fmt.Errorf("cannot access solution file: %w", err)
	}

	if !info.IsDir() {
		if !IsSolutionFile(absPath) {
			return "", fmt.Errorf("not a solution file (must have .sln, .slnx, or .slnf extension): %s", absPath)
		}
		return absPath, nil
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return "", fmt.Errorf("error searching for solution files: %w", err)
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".sln", ".slnx":
			found = append(found, filepath.Join(absPath, entry.Name()))
		}
	}
	sort.Strings(found)

	switch len(found) {
	case 0:
		return "", fmt.Errorf("no solution file found in %s", absPath)
	case 1:
		return found[0], nil
	default:
		return "", &AmbiguousError{Dir: absPath, Files: found}
	}
}

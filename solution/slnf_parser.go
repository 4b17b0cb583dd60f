package solution

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// slnfParser parses JSON-based .slnf solution filter files. The result holds the
// parent solution's directory and only the projects the filter selects.
type slnfParser struct{}

type slnfDocument struct {
	Solution struct {
		Path     string   `json:"path"`
		Projects []string `json:"projects"`
	} `json:"solution"`
}

func (slnfParser) Parse(path string) (*Solution, error) {
	file, absPath, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var doc slnfDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, &ParseError{
			FilePath: absPath,
			Message:  fmt.Sprintf("failed to parse JSON: %v", err),
		}
	}

	if doc.Solution.Path == "" {
		return nil, &ParseError{FilePath: absPath, Message: "missing solution path in filter file"}
	}

	parentPath := ResolveProjectPath(filepath.Dir(absPath), doc.Solution.Path)
	if strings.EqualFold(filepath.Ext(parentPath), ".slnf") {
		return nil, &ParseError{FilePath: absPath, Message: "a solution filter cannot reference another filter"}
	}

	parent, err := Load(parentPath)
	if err != nil {
		return nil, &ParseError{
			FilePath: absPath,
			Message:  fmt.Sprintf("failed to parse parent solution: %v", err),
		}
	}

	selected := make(map[string]bool, len(doc.Solution.Projects))
	for _, p := range doc.Solution.Projects {
		selected[filterKey(p)] = true
	}

	filtered := &Solution{
		FilePath:      absPath,
		Dir:           parent.Dir,
		FormatVersion: parent.FormatVersion,
		Projects:      []Project{},
	}
	for _, p := range parent.Projects {
		if selected[filterKey(p.Path)] {
			filtered.Projects = append(filtered.Projects, p)
		}
	}
	return filtered, nil
}

// filterKey makes project paths from the filter and the solution comparable.
// Both are relative to the parent solution and use Windows conventions.
func filterKey(path string) string {
	return strings.ToLower(filepath.ToSlash(filepath.Clean(NormalizePath(path))))
}

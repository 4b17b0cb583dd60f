package solution

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// slnxParser parses XML-based .slnx files.
type slnxParser struct{}

type slnxDocument struct {
	XMLName  xml.Name      `xml:"Solution"`
	Projects []slnxProject `xml:"Project"`
	Folders  []slnxFolder  `xml:"Folder"`
}

type slnxFolder struct {
	Name     string        `xml:"Name,attr"`
	Projects []slnxProject `xml:"Project"`
	Folders  []slnxFolder  `xml:"Folder"`
}

type slnxProject struct {
	Path        string `xml:"Path,attr"`
	DisplayName string `xml:"DisplayName,attr,omitempty"`
}

func (slnxParser) Parse(path string) (*Solution, error) {
	file, absPath, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var doc slnxDocument
	if err := xml.NewDecoder(file).Decode(&doc); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ParseError{
				FilePath: absPath,
				Line:     syntaxErr.Line,
				Message:  fmt.Sprintf("XML syntax error: %v", syntaxErr.Msg),
			}
		}
		return nil, &ParseError{
			FilePath: absPath,
			Message:  fmt.Sprintf("failed to parse XML: %v", err),
		}
	}

	sol := &Solution{
		FilePath: absPath,
		Dir:      filepath.Dir(absPath),
		Projects: []Project{},
	}
	sol.Projects = appendSlnxProjects(sol.Projects, doc.Projects)
	for _, folder := range doc.Folders {
		sol.Projects = appendSlnxFolder(sol.Projects, folder)
	}
	return sol, nil
}

func appendSlnxFolder(projects []Project, folder slnxFolder) []Project {
	projects = appendSlnxProjects(projects, folder.Projects)
	for _, nested := range folder.Folders {
		projects = appendSlnxFolder(projects, nested)
	}
	return projects
}

func appendSlnxProjects(projects []Project, entries []slnxProject) []Project {
	for _, entry := range entries {
		name := entry.DisplayName
		if name == "" {
			base := filepath.Base(NormalizePath(entry.Path))
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		projects = append(projects, Project{Name: name, Path: entry.Path})
	}
	return projects
}

package solution

import (
	"bufio"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	formatVersionRegex = regexp.MustCompile(`^Microsoft Visual Studio Solution File, Format Version (\S+)`)

	// Project("{TypeGUID}") = "Name", "Path", "{ProjectGUID}"
	projectRegex = regexp.MustCompile(
		`(?i)^Project\("\{([A-F0-9-]+)\}"\)\s*=\s*"([^"]+)",\s*"([^"]+)",\s*"\{([A-F0-9-]+)\}"`,
	)
)

// slnParser parses text-based .sln files.
type slnParser struct{}

func (slnParser) Parse(path string) (*Solution, error) {
	file, absPath, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sol := &Solution{
		FilePath: absPath,
		Dir:      filepath.Dir(absPath),
		Projects: []Project{},
	}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	openProjectLine := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimPrefix(scanner.Text(), "\uFEFF")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if matches := formatVersionRegex.FindStringSubmatch(trimmed); matches != nil {
			sol.FormatVersion = matches[1]
			continue
		}

		if matches := projectRegex.FindStringSubmatch(trimmed); matches != nil {
			if openProjectLine > 0 {
				return nil, &ParseError{FilePath: absPath, Line: openProjectLine, Message: "missing EndProject"}
			}
			openProjectLine = lineNum

			typeGUID := "{" + strings.ToUpper(matches[1]) + "}"
			if typeGUID == ProjectTypeSolutionFolder {
				continue
			}
			sol.Projects = append(sol.Projects, Project{
				Name:     matches[2],
				Path:     matches[3],
				TypeGUID: typeGUID,
			})
			continue
		}

		if trimmed == "EndProject" {
			openProjectLine = 0
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &ParseError{
			FilePath: absPath,
			Message:  fmt.Sprintf("error reading file: %v", err),
		}
	}

	if openProjectLine > 0 {
		return nil, &ParseError{
			FilePath: absPath,
			Line:     openProjectLine,
			Message:  "unexpected end of file: missing EndProject",
		}
	}

	if sol.FormatVersion == "" {
		return nil, &ParseError{FilePath: absPath, Message: "missing solution file header"}
	}

	return sol, nil
}

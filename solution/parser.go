package solution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Parser parses one solution file format.
type Parser interface {
	Parse(path string) (*Solution, error)
}

// GetParser returns the parser for the solution file's extension.
func GetParser(path string) (Parser, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".sln":
		return slnParser{}, nil
	case ".slnx":
		return slnxParser{}, nil
	case ".slnf":
		return slnfParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported solution format: %s (supported: .sln, .slnx, .slnf)", ext)
	}
}

// Load parses the solution file at path with the parser for its format.
func Load(path string) (*Solution, error) {
	parser, err := GetParser(path)
	if err != nil {
		return nil, err
	}
	return parser.Parse(path)
}

// open opens a solution file and returns it together with its absolute path.
func open(path string) (*os.File, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, absPath, &ParseError{
			FilePath: absPath,
			Message:  fmt.Sprintf("cannot open file: %v", err),
		}
	}
	return file, absPath, nil
}

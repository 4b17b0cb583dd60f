// Package packages discovers the NuGet packages installed for a solution that uses
// packages.config files and a solution-level package repository (packages\).
package packages

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the per-project package manifest of classic NuGet.
const ConfigFileName = "packages.config"

// Entry is one <package> element of a packages.config file.
type Entry struct {
	ID                    string
	Version               string
	TargetFramework       string
	DevelopmentDependency bool
}

type packagesDocument struct {
	XMLName  xml.Name         `xml:"packages"`
	Packages []packageElement `xml:"package"`
}

type packageElement struct {
	ID                    string `xml:"id,attr"`
	Version               string `xml:"version,attr"`
	TargetFramework       string `xml:"targetFramework,attr,omitempty"`
	DevelopmentDependency bool   `xml:"developmentDependency,attr,omitempty"`
}

// ReadConfig reads a packages.config file.
func ReadConfig(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open packages config: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseConfig parses packages.config XML. Elements without an id are ignored.
func ParseConfig(r io.Reader) ([]Entry, error) {
	var doc packagesDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse packages config XML: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Packages))
	for _, p := range doc.Packages {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		entries = append(entries, Entry{
			ID:                    p.ID,
			Version:               p.Version,
			TargetFramework:       p.TargetFramework,
			DevelopmentDependency: p.DevelopmentDependency,
		})
	}
	return entries, nil
}

// ConfigPathForProject returns the packages.config used by a project:
// packages.<ProjectName>.config when present, packages.config otherwise.
func ConfigPathForProject(projectPath string) string {
	dir := filepath.Dir(projectPath)
	name := strings.TrimSuffix(filepath.Base(projectPath), filepath.Ext(projectPath))

	named := filepath.Join(dir, "packages."+name+".config")
	if _, err := os.Stat(named); err == nil {
		return named
	}
	return filepath.Join(dir, ConfigFileName)
}

package packages

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/willibrandon/gohintpath/pathfix"
	"github.com/willibrandon/gohintpath/version"
)

// DefaultRepositoryName is the package folder NuGet creates next to the solution file.
const DefaultRepositoryName = "packages"

// SplitDirectoryName splits a package folder name such as "Newtonsoft.Json.13.0.3"
// into its id and version at the first dot that starts a valid version. Folders
// installed without a version (-ExcludeVersion) return the whole name as id and an
// empty version.
func SplitDirectoryName(name string) (id, ver string) {
	for i := 1; i < len(name)-1; i++ {
		if name[i] != '.' || name[i+1] < '0' || name[i+1] > '9' {
			continue
		}
		if _, err := version.Parse(name[i+1:]); err == nil {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}

// InstallPath returns the directory a package was installed to inside repositoryDir,
// or "" when none of "<id>.<version>", "<id>.<normalized version>" and "<id>" exists
// there.
func InstallPath(repositoryDir, id, ver string) string {
	var candidates []string
	for _, v := range version.FolderVersions(ver) {
		candidates = append(candidates, id+"."+v)
	}
	candidates = append(candidates, id)

	for _, name := range candidates {
		dir := filepath.Join(repositoryDir, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// Discover returns one record per distinct package (by id and version, ignoring
// case) referenced by the projects' packages.config files, in first-seen order.
// Packages that are not present in repositoryDir get an empty install path.
//
// Projects without a packages.config are skipped. Unreadable files do not stop
// discovery; their errors are joined into the returned error.
func Discover(projectPaths []string, repositoryDir string) ([]pathfix.PackageRecord, error) {
	var (
		records []pathfix.PackageRecord
		errs    []error
	)
	seen := make(map[string]bool)

	for _, projectPath := range projectPaths {
		configPath := ConfigPathForProject(projectPath)
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		entries, err := ReadConfig(configPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, e := range entries {
			key := strings.ToLower(e.ID + "/" + e.Version)
			if seen[key] {
				continue
			}
			seen[key] = true
			records = append(records, pathfix.PackageRecord{
				ID:          e.ID,
				InstallPath: InstallPath(repositoryDir, e.ID, e.Version),
			})
		}
	}

	return records, errors.Join(errs...)
}

// Scan returns a record for every package folder directly inside repositoryDir.
// A missing repository yields no records.
func Scan(repositoryDir string) ([]pathfix.PackageRecord, error) {
	entries, err := os.ReadDir(repositoryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read package repository: %w", err)
	}

	var records []pathfix.PackageRecord
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		records = append(records, FromDirectory(repositoryDir, entry.Name()))
	}
	return records, nil
}

// FromDirectory builds the record of the package folder name inside repositoryDir.
func FromDirectory(repositoryDir, name string) pathfix.PackageRecord {
	id, _ := SplitDirectoryName(name)
	return pathfix.PackageRecord{
		ID:          id,
		InstallPath: filepath.Join(repositoryDir, name),
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultRepositoryName is the package folder NuGet creates next to the solution.
const DefaultRepositoryName = "packages"

var configFileNames = []string{"NuGet.Config", "NuGet.config", "nuget.config"}

// ConfigLocations returns the NuGet.config files that apply to a solution, nearest
// first: each directory from the solution up to the file system root (including its
// .nuget folder), then the user config.
func ConfigLocations(solutionDir string) []string {
	var locations []string
	seen := make(map[string]bool)

	add := func(dir string) {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
			// Case-insensitive file systems report every spelling.
			key := strings.ToLower(path)
			if seen[key] {
				continue
			}
			seen[key] = true
			locations = append(locations, path)
			return
		}
	}

	dir := filepath.Clean(solutionDir)
	for {
		add(dir)
		add(filepath.Join(dir, ".nuget"))
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if userDir := UserConfigDir(); userDir != "" {
		add(userDir)
	}
	return locations
}

// UserConfigDir returns the directory of the user-level NuGet.config.
func UserConfigDir() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "NuGet")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nuget", "NuGet")
}

// RepositoryPath returns the absolute package repository of the solution in
// solutionDir. The nearest config that sets repositoryPath wins, and a relative
// value is resolved against that config file's directory. Without one the
// repository is <solutionDir>/packages.
func RepositoryPath(solutionDir string) (string, error) {
	for _, path := range ConfigLocations(solutionDir) {
		cfg, err := LoadNuGetConfig(path)
		if err != nil {
			return "", err
		}
		if value, ok := cfg.GetConfigValue(RepositoryPathKey); ok && strings.TrimSpace(value) != "" {
			return resolve(filepath.Dir(path), value), nil
		}
		if cfg.Clears() {
			break
		}
	}
	return filepath.Join(solutionDir, DefaultRepositoryName), nil
}

func resolve(baseDir, value string) string {
	value = os.ExpandEnv(filepath.FromSlash(strings.ReplaceAll(value, `\`, "/")))
	if strings.HasPrefix(value, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, value[2:])
		}
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(baseDir, value)
}

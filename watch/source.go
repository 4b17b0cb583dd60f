package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/willibrandon/gohintpath/packages"
)

// Source watches a package repository and the project directories of a solution
// with fsnotify and translates their notifications into package events.
type Source struct {
	watcher       *fsnotify.Watcher
	repositoryDir string
	watchingRepo  bool
}

// NewSource starts watching repositoryDir and projectDirs. When the repository does
// not exist yet, its parent is watched until it is created.
func NewSource(repositoryDir string, projectDirs []string) (*Source, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	s := &Source{watcher: watcher, repositoryDir: filepath.Clean(repositoryDir)}

	if err := s.watchRepository(); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	seen := map[string]bool{s.repositoryDir: true}
	for _, dir := range projectDirs {
		dir = filepath.Clean(dir)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return s, nil
}

func (s *Source) watchRepository() error {
	if info, err := os.Stat(s.repositoryDir); err == nil && info.IsDir() {
		if err := s.watcher.Add(s.repositoryDir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", s.repositoryDir, err)
		}
		s.watchingRepo = true
		return nil
	}

	parent := filepath.Dir(s.repositoryDir)
	if err := s.watcher.Add(parent); err != nil {
		return fmt.Errorf("failed to watch %s: %w", parent, err)
	}
	return nil
}

// Notifications returns the raw fsnotify event channel.
func (s *Source) Notifications() <-chan fsnotify.Event {
	return s.watcher.Events
}

// Errors returns the fsnotify error channel.
func (s *Source) Errors() <-chan error {
	return s.watcher.Errors
}

// Close stops watching.
func (s *Source) Close() error {
	return s.watcher.Close()
}

// Translate maps one notification to package events:
//
//   - a directory created in the repository is a package that was installed
//     (PackageInstalling then PackageInstalled);
//   - a packages.config created or written is a PackageReferenceAdded;
//   - a directory removed or renamed away from the repository is a PackageUninstalling.
//
// Everything else yields no events.
func (s *Source) Translate(n fsnotify.Event) []Event {
	path := filepath.Clean(n.Name)
	name := filepath.Base(path)

	if !s.watchingRepo && path == s.repositoryDir && n.Has(fsnotify.Create) {
		if err := s.watchRepository(); err == nil && s.watchingRepo {
			// Packages extracted before the watch was added.
			return s.scanRepository()
		}
		return nil
	}

	if filepath.Dir(path) == s.repositoryDir {
		switch {
		case n.Has(fsnotify.Create):
			if info, err := os.Stat(path); err != nil || !info.IsDir() {
				return nil
			}
			pkg := packages.FromDirectory(s.repositoryDir, name)
			return []Event{
				{Kind: PackageInstalling, Package: pkg},
				{Kind: PackageInstalled, Package: pkg},
			}
		case n.Has(fsnotify.Remove) || n.Has(fsnotify.Rename):
			if filepath.Ext(name) == ".config" || filepath.Ext(name) == ".nupkg" || strings.HasPrefix(name, ".") {
				return nil
			}
			return []Event{{Kind: PackageUninstalling, Package: packages.FromDirectory(s.repositoryDir, name)}}
		}
		return nil
	}

	if isPackagesConfig(name) && (n.Has(fsnotify.Create) || n.Has(fsnotify.Write)) {
		return []Event{{Kind: PackageReferenceAdded}}
	}
	return nil
}

func (s *Source) scanRepository() []Event {
	records, err := packages.Scan(s.repositoryDir)
	if err != nil {
		return nil
	}
	var events []Event
	for _, pkg := range records {
		events = append(events,
			Event{Kind: PackageInstalling, Package: pkg},
			Event{Kind: PackageInstalled, Package: pkg},
		)
	}
	return events
}

func isPackagesConfig(name string) bool {
	lower := strings.ToLower(name)
	return lower == packages.ConfigFileName ||
		(strings.HasPrefix(lower, "packages.") && strings.HasSuffix(lower, ".config"))
}

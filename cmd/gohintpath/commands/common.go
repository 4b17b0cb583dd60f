package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/cli"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/config"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/output"
	"github.com/willibrandon/gohintpath/observability"
	"github.com/willibrandon/gohintpath/packages"
	"github.com/willibrandon/gohintpath/pathfix"
	"github.com/willibrandon/gohintpath/solution"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Options are the flags shared by fix, revert and watch.
type Options struct {
	Packages       []string
	Projects       []string
	DryRun         bool
	RepositoryPath string
	MetricsFile    string
	Trace          string
	OTLPEndpoint   string
}

func bindCommonFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringSliceVar(&opts.Packages, "package", nil, "Only rewrite paths of these package ids (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Projects, "project", nil, "Only process these projects, by name or path (repeatable)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report the paths that would change without saving any project")
	cmd.Flags().StringVar(&opts.RepositoryPath, "repository", "", "Package repository folder (default: repositoryPath from NuGet.config, or <solution>/packages)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	cmd.Flags().StringVar(&opts.Trace, "trace", "none", "Trace exporter: none, stdout or otlp")
	cmd.Flags().StringVar(&opts.OTLPEndpoint, "otlp-endpoint", "localhost:4317", "OTLP collector endpoint for --trace otlp")
}

// session is one command run against one solution.
type session struct {
	console    *output.Console
	logger     observability.Logger
	opts       *Options
	solution   *solution.Solution
	projects   []string
	repository string
	tracer     *sdktrace.TracerProvider
}

func openSession(ctx context.Context, cmd *cobra.Command, console *output.Console, args []string, opts *Options) (*session, error) {
	verbosity, _ := cmd.Flags().GetString("verbosity")
	console.SetVerbosity(output.ParseVerbosity(verbosity))

	var target string
	if len(args) > 0 {
		target = args[0]
	}
	slnPath, err := solution.Find(target)
	if err != nil {
		return nil, err
	}

	sol, err := solution.Load(slnPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load solution: %w", err)
	}

	projects, err := selectProjects(sol.ProjectPaths(), opts.Projects)
	if err != nil {
		return nil, err
	}

	repository := opts.RepositoryPath
	if repository == "" {
		repository, err = config.RepositoryPath(sol.Dir)
		if err != nil {
			return nil, err
		}
	} else if !filepath.IsAbs(repository) {
		if repository, err = filepath.Abs(repository); err != nil {
			return nil, fmt.Errorf("failed to resolve repository path: %w", err)
		}
	}

	tracerConfig := observability.DefaultTracerConfig()
	tracerConfig.ServiceVersion = cli.GetVersion()
	tracerConfig.ExporterType = opts.Trace
	tracerConfig.OTLPEndpoint = opts.OTLPEndpoint
	tp, err := observability.SetupTracing(ctx, tracerConfig)
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(console.Out(), observability.ParseLogLevel(verbosity)).
		ForContext("Solution", filepath.Base(sol.FilePath))

	logger.Debug("Solution {Solution} has {Count} project(s); package repository is {Repository}",
		sol.FilePath, len(projects), repository)

	return &session{
		console:    console,
		logger:     logger,
		opts:       opts,
		solution:   sol,
		projects:   projects,
		repository: repository,
		tracer:     tp,
	}, nil
}

// close flushes traces and writes the metrics file.
func (s *session) close(ctx context.Context) error {
	var firstErr error
	if err := s.writeMetrics(); err != nil {
		firstErr = err
	}
	if s.tracer != nil {
		if err := observability.ShutdownTracing(context.WithoutCancel(ctx), s.tracer); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *session) writeMetrics() error {
	if s.opts.MetricsFile == "" {
		return nil
	}
	return observability.WriteMetricsFile(s.opts.MetricsFile)
}

// installedPackages discovers the packages referenced by the session's projects,
// restricted to the --package filter.
func (s *session) installedPackages() []pathfix.PackageRecord {
	records, err := packages.Discover(s.projects, s.repository)
	if err != nil {
		s.logger.Warn("Some packages.config files could not be read: {Error}", err)
	}
	return filterPackages(records, s.opts.Packages, s.logger)
}

// run rewrites the session's projects in one direction and prints a summary. A nil
// load reads projects with msbuild.LoadProject.
func (s *session) run(ctx context.Context, dir pathfix.Direction, records []pathfix.PackageRecord, load pathfix.ProjectLoader) (*pathfix.Summary, error) {
	batch := &pathfix.Batch{
		SolutionDir: s.solution.Dir,
		Packages:    records,
		Direction:   dir,
		DryRun:      s.opts.DryRun,
		Logger:      s.logger,
		Load:        load,
	}

	summary, err := batch.Run(ctx, s.projects)
	if summary != nil {
		printSummary(s.console, summary, s.opts.DryRun)
	}
	return summary, err
}

func selectProjects(all, filter []string) ([]string, error) {
	if len(filter) == 0 {
		return all, nil
	}

	var selected []string
	for _, want := range filter {
		found := false
		for _, path := range all {
			if matchesProject(path, want) {
				selected = appendUnique(selected, path)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("project %q is not part of the solution", want)
		}
	}
	return selected, nil
}

func matchesProject(path, want string) bool {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(name, want) || strings.EqualFold(filepath.Base(path), want) {
		return true
	}
	abs, err := filepath.Abs(want)
	return err == nil && abs == path
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// filterPackages keeps the records named by ids, in ids order. A nil logger
// suppresses the warning for ids that match nothing.
func filterPackages(records []pathfix.PackageRecord, ids []string, logger observability.Logger) []pathfix.PackageRecord {
	if len(ids) == 0 {
		return records
	}

	var filtered []pathfix.PackageRecord
	for _, id := range ids {
		found := false
		for _, r := range records {
			if strings.EqualFold(r.ID, id) {
				filtered = append(filtered, r)
				found = true
			}
		}
		if !found && logger != nil {
			logger.Warn("Package {PackageId} is not installed in this solution", id)
		}
	}
	return filtered
}

func printSummary(console *output.Console, summary *pathfix.Summary, dryRun bool) {
	verb := "Updated"
	if dryRun {
		verb = "Would update"
	}

	changed := 0
	for _, p := range summary.Projects {
		if p.Err == nil && p.Changes > 0 {
			changed++
			console.Detail("  %s: %d path(s)", p.Path, p.Changes)
		}
	}

	if summary.Failed > 0 {
		console.Warning("%d project(s) could not be processed", summary.Failed)
	}
	if summary.Changes == 0 {
		console.Info("No package paths to update (%s).", summary.Direction)
		return
	}
	console.Success("%s %d package path(s) in %d project(s) (%s).", verb, summary.Changes, changed, summary.Direction)
}

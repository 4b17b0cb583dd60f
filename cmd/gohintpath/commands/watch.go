package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/output"
	"github.com/willibrandon/gohintpath/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(console *output.Console) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "watch [<SOLUTION|DIRECTORY>]",
		Short: "Fix package paths as packages are installed",
		Long: `Watches the solution's package repository and packages.config files. When a
package (and its dependencies) finishes installing, its paths are rewritten to
$(SolutionDir) form; when a package folder is removed, its paths are reverted first.

Press Ctrl+C to stop.

Examples:
  gohintpath watch
  gohintpath watch MySolution.sln -v diag`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, console, args, opts)
		},
	}

	bindCommonFlags(cmd, opts)

	return cmd
}

func runWatch(cmd *cobra.Command, console *output.Console, args []string, opts *Options) (err error) {
	ctx := cmd.Context()

	s, err := openSession(ctx, cmd, console, args, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	dirs := make([]string, 0, len(s.projects))
	for _, p := range s.projects {
		dirs = append(dirs, filepath.Dir(p))
	}

	source, err := watch.NewSource(s.repository, dirs)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	loop := &watch.Loop{
		Machine: watch.NewMachine(s.solution.Dir),
		Source:  source,
		Handler: s.watchHandler(),
		Logger:  s.logger,
	}

	console.Info("Watching %s for package changes. Press Ctrl+C to stop.", s.repository)
	return loop.Run(ctx)
}

// watchHandler rewrites the packages of one install or uninstall sequence across
// every project of the session. Projects still being saved by the IDE are retried.
func (s *session) watchHandler() watch.Handler {
	return func(ctx context.Context, action watch.Action) error {
		records := filterPackages(action.Packages, s.opts.Packages, nil)
		if len(records) == 0 {
			return nil
		}

		_, err := s.run(ctx, action.Direction, records, watch.RetryingLoader(ctx, nil, nil))
		if err != nil {
			return err
		}
		return s.writeMetrics()
	}
}

package commands

import (
	"github.com/spf13/cobra"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/output"
	"github.com/willibrandon/gohintpath/pathfix"
)

// NewFixCommand creates the fix command.
func NewFixCommand(console *output.Console) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "fix [<SOLUTION|DIRECTORY>]",
		Short: "Rewrite package paths to $(SolutionDir) form",
		Long: `Rewrites the package paths of every project in the solution so that they start
with $(SolutionDir): reference HintPaths, package build imports with their Exists
conditions, and the EnsureNuGetPackageBuildImports checks.

Installed packages are read from each project's packages.config and located in the
solution's package repository. Paths already starting with a property are left alone.

Examples:
  gohintpath fix
  gohintpath fix MySolution.sln
  gohintpath fix --package Newtonsoft.Json --dry-run
  gohintpath fix --project App -v detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirection(cmd, console, args, opts, pathfix.Forward)
		},
	}

	bindCommonFlags(cmd, opts)

	return cmd
}

// runDirection runs one batch over the whole solution. Per-project failures are
// reported in the summary; only a solution that cannot be loaded is an error.
func runDirection(cmd *cobra.Command, console *output.Console, args []string, opts *Options, dir pathfix.Direction) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, cmd, console, args, opts)
	if err != nil {
		return err
	}

	_, runErr := s.run(ctx, dir, s.installedPackages(), nil)
	if err := s.close(ctx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

package commands

import (
	"github.com/spf13/cobra"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/output"
	"github.com/willibrandon/gohintpath/pathfix"
)

// NewRevertCommand creates the revert command.
func NewRevertCommand(console *output.Console) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "revert [<SOLUTION|DIRECTORY>]",
		Short: "Rewrite $(SolutionDir) package paths back to project-relative form",
		Long: `Rewrites package paths that start with $(SolutionDir) back to paths relative to
each project's directory, the form NuGet itself writes. Run it before uninstalling
or updating packages with tools that expect the original paths.

Examples:
  gohintpath revert
  gohintpath revert MySolution.sln --project App
  gohintpath revert --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirection(cmd, console, args, opts, pathfix.Backward)
		},
	}

	bindCommonFlags(cmd, opts)

	return cmd
}

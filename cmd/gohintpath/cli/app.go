package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/output"
)

var rootCmd = &cobra.Command{
	Use:   "gohintpath",
	Short: "Rewrite NuGet package paths in MSBuild projects to $(SolutionDir) form",
	Long: `gohintpath rewrites the package paths NuGet writes into classic MSBuild projects
(reference HintPaths, package build imports and their EnsureNuGetPackageBuildImports
checks) so that they start with $(SolutionDir) instead of a project-relative or
machine-specific path. Projects then build no matter which solution includes them.

Use "fix" to rewrite, "revert" to go back to project-relative paths and "watch" to fix
packages as they are installed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Console is the global console for CLI commands
var Console *output.Console

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	Console = output.DefaultConsole()

	rootCmd.PersistentFlags().StringP("verbosity", "v", "normal", "Verbosity level: q[uiet], n[ormal], d[etailed], or diag[nostic]")
}

// SetupVersion configures version information after variables are set
func SetupVersion() {
	rootCmd.SetVersionTemplate(GetFullVersion() + "\n")
	rootCmd.Version = GetVersion()
}

// AddCommand adds a command to the root command
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

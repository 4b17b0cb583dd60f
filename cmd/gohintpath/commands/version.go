// cmd/gohintpath/commands/version.go
package commands

import (
	"github.com/spf13/cobra"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/cli"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/output"
)

// NewVersionCommand creates the version command
func NewVersionCommand(console *output.Console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display detailed version information including commit and build date.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(console)
		},
	}

	return cmd
}

func runVersion(console *output.Console) error {
	console.Println(cli.GetFullVersion())
	return nil
}

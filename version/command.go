package version

import (
	"fmt"

	"github.com/jongio/procinspect/cliout"
	"github.com/spf13/cobra"
)

// NewCommand creates a version command that displays build information.
func NewCommand(info *Info) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cliout.New(cmd.OutOrStdout())
			if quiet {
				return out.Printf("%s\n", info.Version)
			}

			if err := out.Banner(info.Name + " Version"); err != nil {
				return err
			}
			_ = out.Row("Version", info.Version)
			_ = out.Row("Built", info.BuildDate)
			return out.Row("Commit", info.GitCommit)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	return cmd
}

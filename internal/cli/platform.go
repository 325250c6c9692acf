package cli

import (
	"fmt"

	"github.com/ralt/lockedpip/internal/platform"
	"github.com/spf13/cobra"
)

func newPlatformCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the platform detected for this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			detected, err := platform.Detect(env.probe)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), detected)
			return nil
		},
	}
}

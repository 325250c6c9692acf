package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ralt/lockedpip/internal/models"
	"github.com/spf13/cobra"
)

func newListCmd(env *environment, cfg *models.InstallConfig, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the pip packages that would be installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prepareConfig(cmd, *configPath, cfg); err != nil {
				return err
			}

			selected, err := selectPackages(env, cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPLATFORM\tCATEGORY\tURL")
			for _, rec := range selected {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.Name(), rec.Platform(), rec.Category(), rec.URL())
			}
			return w.Flush()
		},
	}
}

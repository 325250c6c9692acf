package cli

import (
	"github.com/ralt/lockedpip/internal/installer"
	"github.com/ralt/lockedpip/internal/models"
	"github.com/ralt/lockedpip/internal/platform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// environment holds the host-facing collaborators of the commands
type environment struct {
	runner installer.Runner
	probe  platform.HostProbe
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&environment{
		runner: installer.NewExecRunner(),
		probe:  platform.NewRuntimeProbe(),
	})
}

func newRootCmd(env *environment) *cobra.Command {
	var config models.InstallConfig
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "lockedpip",
		Short: "Install pip dependencies from conda-lock lockfiles",
		Long: `Lockedpip reads the package section of a conda-lock style lockfile,
selects the packages managed by pip for one platform and the requested
categories, and installs (or uninstalls) exactly those URLs with pip,
without letting pip resolve further dependencies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prepareConfig(cmd, configPath, &config); err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", config)

			return runInstall(cmd.Context(), env, &config, cmd.OutOrStdout())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with default settings")

	// Lockfile selection flags, shared with list
	rootCmd.PersistentFlags().StringVarP(&config.Lockfile, "lockfile", "f", "conda-lock.yml", "Filename of the lockfile")
	rootCmd.PersistentFlags().StringSliceVarP(&config.Categories, "category", "c", []string{"main"}, "Category to install (repeatable)")
	rootCmd.PersistentFlags().StringVar(&config.Platform, "platform", "", "Platform to install for (inferred from the lockfile when unset)")
	rootCmd.PersistentFlags().BoolVar(&config.DetectPlatform, "detect-platform", false, "Compute the platform from the host OS and architecture")

	// Verification flags
	rootCmd.PersistentFlags().StringVar(&config.SignaturePath, "signature", "", "Detached OpenPGP signature of the lockfile")
	rootCmd.PersistentFlags().StringVar(&config.KeyringPath, "keyring", "", "Public keyring used to verify --signature")

	// Installer flags
	rootCmd.Flags().BoolVar(&config.DryRun, "dry-run", false, "Do not actually install anything")
	rootCmd.Flags().BoolVar(&config.Uninstall, "uninstall", false, "Uninstall the selected packages instead of installing them")
	rootCmd.Flags().StringVar(&config.PipLocation, "pip-location", installer.DefaultPipLocation, "Location of pip executable")

	// Add subcommands
	rootCmd.AddCommand(newListCmd(env, &config, &configPath))
	rootCmd.AddCommand(newPlatformCmd(env))

	return rootCmd
}

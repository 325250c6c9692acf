package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ralt/lockedpip/internal/config"
	"github.com/ralt/lockedpip/internal/installer"
	"github.com/ralt/lockedpip/internal/lockfile"
	"github.com/ralt/lockedpip/internal/models"
	"github.com/ralt/lockedpip/internal/platform"
	"github.com/ralt/lockedpip/internal/selection"
	"github.com/ralt/lockedpip/internal/signer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// prepareConfig merges the optional config file under the flags and validates the result
func prepareConfig(cmd *cobra.Command, configPath string, cfg *models.InstallConfig) error {
	if configPath != "" {
		file, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logrus.Debugf("Loaded defaults from %s", configPath)
		file.Apply(cfg, cmd.Flags().Changed)
	}
	return validateConfig(cfg)
}

func validateConfig(cfg *models.InstallConfig) error {
	if cfg.Lockfile == "" {
		return &models.LockError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("lockfile is required"),
		}
	}

	if (cfg.SignaturePath == "") != (cfg.KeyringPath == "") {
		return &models.LockError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("--signature and --keyring must be given together"),
		}
	}

	// Set defaults if not specified
	if len(cfg.Categories) == 0 {
		cfg.Categories = []string{selection.DefaultCategory}
	}
	if cfg.PipLocation == "" {
		cfg.PipLocation = installer.DefaultPipLocation
	}

	return nil
}

func runInstall(ctx context.Context, env *environment, cfg *models.InstallConfig, out io.Writer) error {
	selected, err := selectPackages(env, cfg)
	if err != nil {
		return err
	}

	inst := installer.New(env.runner, installer.Options{
		PipLocation: cfg.PipLocation,
		Uninstall:   cfg.Uninstall,
		DryRun:      cfg.DryRun,
		Out:         out,
	})
	if err := inst.Run(ctx, selection.URLs(selected)); err != nil {
		return err
	}

	if !cfg.DryRun && len(selected) > 0 {
		action := "Installed"
		if cfg.Uninstall {
			action = "Uninstalled"
		}
		logrus.Infof("%s %d pip packages", action, len(selected))
	}
	return nil
}

// selectPackages reads the lockfile and returns the pip packages to act on
func selectPackages(env *environment, cfg *models.InstallConfig) ([]*models.PackageRecord, error) {
	platformName, err := platform.Resolve(cfg.Platform, cfg.DetectPlatform, env.probe)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("Reading lockfile: %s", cfg.Lockfile)
	raw, err := lockfile.ReadFile(cfg.Lockfile)
	if err != nil {
		return nil, err
	}

	if cfg.SignaturePath != "" {
		if err := verifyLockfile(cfg, raw); err != nil {
			return nil, err
		}
	}

	table, err := lockfile.LoadBytes(cfg.Lockfile, raw, platformName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfg.Lockfile, err)
	}
	logrus.Debugf("Found %d packages for platform %s", table.Len(), table.Platform)

	selected, err := selection.Select(table, selection.PipManager, cfg.Categories)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Selected %d pip packages in categories %s", len(selected), strings.Join(cfg.Categories, ", "))

	return selected, nil
}

func verifyLockfile(cfg *models.InstallConfig, raw []byte) error {
	verifier, err := signer.NewGPGVerifier(cfg.KeyringPath)
	if err != nil {
		return &models.LockError{
			Type: models.ErrSignature,
			Err:  fmt.Errorf("failed to initialize verifier: %w", err),
		}
	}

	signature, err := os.ReadFile(cfg.SignaturePath)
	if err != nil {
		return &models.LockError{
			Type: models.ErrSignature,
			Err:  fmt.Errorf("failed to read signature: %w", err),
		}
	}

	who, err := verifier.VerifyDetached(raw, signature)
	if err != nil {
		return &models.LockError{
			Type: models.ErrSignature,
			Err:  err,
		}
	}

	logrus.Infof("Lockfile signature verified (signed by %s)", who)
	return nil
}

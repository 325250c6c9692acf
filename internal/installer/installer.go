package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/ralt/lockedpip/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultPipLocation is the pip executable used when none is configured
const DefaultPipLocation = "pip"

const manifestPattern = "lockedpip-requirements-*.txt"

// Options configures an Installer
type Options struct {
	PipLocation string
	Uninstall   bool
	DryRun      bool

	// Out receives the dry-run preview
	Out io.Writer

	// TempDir holds the manifest file, os.TempDir() when empty
	TempDir string
}

// Installer installs or uninstalls a set of package URLs with pip
type Installer struct {
	runner Runner
	opts   Options
}

// New creates an Installer
func New(runner Runner, opts Options) *Installer {
	if opts.PipLocation == "" {
		opts.PipLocation = DefaultPipLocation
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Installer{runner: runner, opts: opts}
}

// Command returns the pip command line for the given manifest file
func (i *Installer) Command(manifest string) []string {
	action := "install"
	if i.opts.Uninstall {
		action = "uninstall"
	}

	cmd := []string{
		i.opts.PipLocation,
		action,
		"--no-cache-dir",
		"--requirement",
		manifest,
	}
	if i.opts.Uninstall {
		cmd = append(cmd, "--yes")
	} else {
		cmd = append(cmd, "--no-deps")
	}
	return cmd
}

// Run writes urls to a manifest file and hands it to pip. The manifest is
// removed before Run returns, whatever the outcome.
func (i *Installer) Run(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		if i.opts.DryRun {
			fmt.Fprintln(i.opts.Out, "No packages found to install.")
		} else {
			logrus.Info("No pip packages to install")
		}
		return nil
	}

	manifest, err := writeManifest(i.opts.TempDir, urls)
	if err != nil {
		return err
	}
	defer removeManifest(manifest)

	cmd := i.Command(manifest)
	if i.opts.DryRun {
		return i.preview(ctx, cmd, manifest)
	}

	logrus.Infof("Running %s", shellescape.QuoteCommand(cmd))
	return i.exec(ctx, cmd)
}

// preview prints the planned command and manifest. For installs it then
// lets pip resolve the manifest with --dry-run, which changes nothing.
func (i *Installer) preview(ctx context.Context, cmd []string, manifest string) error {
	contents, err := os.ReadFile(manifest)
	if err != nil {
		return &models.LockError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to read manifest: %w", err),
		}
	}

	out := i.opts.Out
	fmt.Fprintf(out, "Planning to run:\n\n    %s\n", shellescape.QuoteCommand(cmd))
	fmt.Fprintf(out, "\nwhere the file %s contains:\n\n    %s\n",
		manifest, strings.Join(strings.Split(string(contents), "\n"), "\n    "))

	if i.opts.Uninstall {
		return nil
	}

	fmt.Fprint(out, "\nRunning the above command with --dry-run:\n\n")
	return i.exec(ctx, append(cmd, "--dry-run"))
}

func (i *Installer) exec(ctx context.Context, cmd []string) error {
	if err := i.runner.Run(ctx, cmd[0], cmd[1:]); err != nil {
		return &models.LockError{
			Type: models.ErrInstaller,
			Err:  fmt.Errorf("%s failed: %w", cmd[0], err),
		}
	}
	return nil
}

func writeManifest(dir string, urls []string) (string, error) {
	f, err := os.CreateTemp(dir, manifestPattern)
	if err != nil {
		return "", &models.LockError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to create manifest: %w", err),
		}
	}

	_, werr := f.WriteString(strings.Join(urls, "\n"))
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		removeManifest(f.Name())
		return "", &models.LockError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write manifest: %w", werr),
		}
	}

	logrus.Debugf("Wrote %d URLs to %s", len(urls), f.Name())
	return f.Name(), nil
}

func removeManifest(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Failed to remove manifest %s: %v", path, err)
	}
}

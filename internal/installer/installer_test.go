package installer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ralt/lockedpip/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name     string
	args     []string
	manifest string
}

// recordingRunner captures each command and the manifest it points at
type recordingRunner struct {
	calls []call
	err   error
}

func (r *recordingRunner) Run(ctx context.Context, name string, args []string) error {
	c := call{name: name, args: append([]string(nil), args...)}
	for i, a := range args {
		if a == "--requirement" && i+1 < len(args) {
			data, err := os.ReadFile(args[i+1])
			if err != nil {
				return err
			}
			c.manifest = string(data)
		}
	}
	r.calls = append(r.calls, c)
	return r.err
}

func manifestPath(t *testing.T, args []string) string {
	t.Helper()
	for i, a := range args {
		if a == "--requirement" {
			return args[i+1]
		}
	}
	t.Fatalf("no --requirement in %v", args)
	return ""
}

func assertNoManifestLeft(t *testing.T, dir string) {
	t.Helper()
	left, err := filepath.Glob(filepath.Join(dir, manifestPattern))
	require.NoError(t, err)
	assert.Empty(t, left, "manifest files left behind")
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	runner := &recordingRunner{}
	inst := New(runner, Options{PipLocation: "/opt/env/bin/pip", TempDir: dir})

	urls := []string{"https://example/foo.whl", "https://example/bar.whl"}
	require.NoError(t, inst.Run(context.Background(), urls))

	require.Len(t, runner.calls, 1)
	c := runner.calls[0]
	assert.Equal(t, "/opt/env/bin/pip", c.name)
	manifest := manifestPath(t, c.args)
	assert.Equal(t, []string{"install", "--no-cache-dir", "--requirement", manifest, "--no-deps"}, c.args)
	assert.Equal(t, "https://example/foo.whl\nhttps://example/bar.whl", c.manifest)
	assertNoManifestLeft(t, dir)
}

func TestUninstall(t *testing.T) {
	dir := t.TempDir()
	runner := &recordingRunner{}
	inst := New(runner, Options{Uninstall: true, TempDir: dir})

	require.NoError(t, inst.Run(context.Background(), []string{"https://example/foo.whl"}))

	require.Len(t, runner.calls, 1)
	c := runner.calls[0]
	assert.Equal(t, DefaultPipLocation, c.name)
	assert.Equal(t, "uninstall", c.args[0])
	assert.Equal(t, "--yes", c.args[len(c.args)-1])
	assert.NotContains(t, c.args, "--no-deps")
	assertNoManifestLeft(t, dir)
}

func TestInstallerFailureRemovesManifest(t *testing.T) {
	dir := t.TempDir()
	runner := &recordingRunner{err: errors.New("exit status 1")}
	inst := New(runner, Options{TempDir: dir})

	err := inst.Run(context.Background(), []string{"https://example/foo.whl"})
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrInstaller))
	assert.Contains(t, err.Error(), "exit status 1")
	assertNoManifestLeft(t, dir)
}

func TestCancelledContextRemovesManifest(t *testing.T) {
	dir := t.TempDir()
	inst := New(NewExecRunner(), Options{PipLocation: "pip-that-does-not-exist", TempDir: dir})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := inst.Run(ctx, []string{"https://example/foo.whl"})
	require.Error(t, err)
	assertNoManifestLeft(t, dir)
}

func TestDryRunInstall(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	runner := &recordingRunner{}
	inst := New(runner, Options{DryRun: true, Out: &out, TempDir: dir})

	require.NoError(t, inst.Run(context.Background(), []string{"https://example/foo.whl"}))

	require.Len(t, runner.calls, 1)
	c := runner.calls[0]
	assert.Equal(t, "--dry-run", c.args[len(c.args)-1])
	assert.Contains(t, c.args, "--no-deps")
	manifest := manifestPath(t, c.args)

	expected := "Planning to run:\n\n" +
		"    pip install --no-cache-dir --requirement " + manifest + " --no-deps\n" +
		"\nwhere the file " + manifest + " contains:\n\n" +
		"    https://example/foo.whl\n" +
		"\nRunning the above command with --dry-run:\n\n"
	assert.Equal(t, expected, out.String())
	assertNoManifestLeft(t, dir)
}

func TestDryRunUninstallDoesNotRunPip(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	runner := &recordingRunner{}
	inst := New(runner, Options{DryRun: true, Uninstall: true, Out: &out, TempDir: dir})

	urls := []string{"https://example/a.whl", "https://example/b.whl"}
	require.NoError(t, inst.Run(context.Background(), urls))

	assert.Empty(t, runner.calls)
	assert.Contains(t, out.String(), " uninstall --no-cache-dir --requirement ")
	assert.Contains(t, out.String(), "--yes\n")
	assert.Contains(t, out.String(), "    https://example/a.whl\n    https://example/b.whl\n")
	assert.NotContains(t, out.String(), "--dry-run")
	assertNoManifestLeft(t, dir)
}

func TestDryRunQuotesCommand(t *testing.T) {
	var out bytes.Buffer
	inst := New(&recordingRunner{}, Options{PipLocation: "/opt/my env/pip", DryRun: true, Uninstall: true, Out: &out, TempDir: t.TempDir()})

	require.NoError(t, inst.Run(context.Background(), []string{"https://example/a.whl"}))
	assert.True(t, strings.HasPrefix(out.String(), "Planning to run:\n\n    '/opt/my env/pip' uninstall"), out.String())
}

func TestNothingToInstall(t *testing.T) {
	runner := &recordingRunner{}

	var out bytes.Buffer
	require.NoError(t, New(runner, Options{DryRun: true, Out: &out}).Run(context.Background(), nil))
	assert.Equal(t, "No packages found to install.\n", out.String())

	out.Reset()
	require.NoError(t, New(runner, Options{Out: &out}).Run(context.Background(), nil))
	assert.Empty(t, out.String())
	assert.Empty(t, runner.calls)
}

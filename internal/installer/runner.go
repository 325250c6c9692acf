package installer

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Runner runs an external command to completion
type Runner interface {
	Run(ctx context.Context, name string, args []string) error
}

// ExecRunner runs commands as subprocesses. Cancelling the context kills
// the process.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner attached to the process' stdout and stderr
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts name with args and waits for it
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

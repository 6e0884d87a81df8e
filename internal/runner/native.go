// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"venvctl/pkg/types"
)

// NativeRunner executes commands as host processes via os/exec.
type NativeRunner struct{}

// NewNativeRunner creates a new native runner.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Run executes the command, streaming output to the configured writers
// (defaulting to the parent's standard streams).
func (r *NativeRunner) Run(ctx context.Context, cmd Command) *Result {
	c, err := r.prepare(ctx, cmd)
	if err != nil {
		return NewErrorResult(1, err)
	}

	c.Stdin = cmd.Stdin
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	c.Stdout = cmd.Stdout
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	c.Stderr = cmd.Stderr
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	return mapRunError(c.Run())
}

// RunCapture executes the command and captures stdout/stderr.
func (r *NativeRunner) RunCapture(ctx context.Context, cmd Command) *Result {
	c, err := r.prepare(ctx, cmd)
	if err != nil {
		return NewErrorResult(1, err)
	}

	var stdout, stderr bytes.Buffer
	c.Stdin = cmd.Stdin
	c.Stdout = &stdout
	c.Stderr = &stderr

	result := mapRunError(c.Run())
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *NativeRunner) prepare(ctx context.Context, cmd Command) (*exec.Cmd, error) {
	if len(cmd.Argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	if cmd.Env != nil {
		c.Env = cmd.Env
	}
	return c, nil
}

// mapRunError converts an exec error into a Result. A child process that
// ran and exited non-zero is a normal exit-code result; everything else
// (binary not found, permission, cancellation) is an infrastructure error.
func mapRunError(err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return NewExitCodeResult(types.ExitCode(exitErr.ExitCode()))
	}
	return NewErrorResult(1, fmt.Errorf("failed to execute command: %w", err))
}

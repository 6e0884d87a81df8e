// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"io"

	"venvctl/pkg/types"
)

type (
	// Command describes a single external command invocation.
	Command struct {
		// Argv is the program and its arguments. Argv[0] is resolved via PATH
		// unless it contains a path separator.
		Argv []string
		// Dir is the working directory ("" means inherit).
		Dir string
		// Env is the complete child environment (nil means inherit).
		Env []string
		// Stdin, Stdout, Stderr wire the child's standard streams.
		// Nil streams are connected to the parent's.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Result contains the result of a command execution.
	Result struct {
		// ExitCode is the exit code of the command.
		ExitCode types.ExitCode
		// Error contains any infrastructure error that occurred. A non-zero
		// ExitCode with a nil Error is a normal child failure.
		Error error
		// Output contains captured stdout (if captured).
		Output string
		// ErrOutput contains captured stderr (if captured).
		ErrOutput string
	}

	// Runner executes commands on behalf of the provisioner and launcher.
	Runner interface {
		// Run executes the command, streaming its output.
		Run(ctx context.Context, cmd Command) *Result
		// RunCapture executes the command and captures stdout/stderr.
		RunCapture(ctx context.Context, cmd Command) *Result
	}
)

// Success returns true if the command executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

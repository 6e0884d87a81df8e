// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"

	"venvctl/pkg/types"
)

// ErrStepFailed is the sentinel error wrapped by StepError.
var ErrStepFailed = errors.New("provisioning step failed")

type (
	// step is one stage of the provisioning pipeline. plan is evaluated at
	// execution time so decisions (notably the create-env existence check)
	// see the host state left behind by earlier steps.
	step struct {
		// name identifies the step in status output and errors.
		name string
		// title is the human-readable status line printed before the step.
		title string
		// plan returns the argv to execute, or a non-empty skip reason when
		// the step is a no-op for the current state.
		plan func(ctx context.Context) (argv []string, skip string, err error)
		// env optionally supplies the child environment for the step's argv.
		env func() ([]string, error)
	}

	// StepError reports the first failing step. It carries the child's exit
	// code so the command layer can propagate it as the run's own status.
	StepError struct {
		// Step is the name of the failing step.
		Step string
		// ExitCode is the failing child's exit status.
		ExitCode types.ExitCode
		// Cause is the underlying infrastructure error, if any. A nil Cause
		// means the step's tool ran and exited non-zero; its own diagnostic
		// has already been streamed to stderr.
		Cause error
	}
)

// Error implements the error interface.
func (e *StepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("step %q failed: %v", e.Step, e.Cause)
	}
	return fmt.Sprintf("step %q failed with exit code %d", e.Step, e.ExitCode)
}

// Unwrap returns ErrStepFailed so callers can use errors.Is for detection.
func (e *StepError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrStepFailed
}

// Is reports whether target is ErrStepFailed regardless of the cause chain.
func (e *StepError) Is(target error) bool {
	return target == ErrStepFailed
}

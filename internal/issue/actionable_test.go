// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")
	err := NewErrorContext().
		WithOperation("refresh package index").
		WithResource("apt-get").
		Wrap(cause).
		Build()

	want := "failed to refresh package index: apt-get: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() does not reach the wrapped cause")
	}
}

func TestActionableErrorFormat(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("launch entrypoint").
		WithSuggestion("Run 'venvctl setup' first").
		Wrap(errors.New("environment not found")).
		Build()

	t.Run("default includes suggestions", func(t *testing.T) {
		t.Parallel()

		out := err.Format(false)
		if !strings.Contains(out, "Run 'venvctl setup' first") {
			t.Errorf("Format(false) missing suggestion: %q", out)
		}
		if strings.Contains(out, "Error chain:") {
			t.Errorf("Format(false) should not include error chain: %q", out)
		}
	})

	t.Run("verbose includes chain", func(t *testing.T) {
		t.Parallel()

		out := err.Format(true)
		if !strings.Contains(out, "Error chain:") {
			t.Errorf("Format(true) missing error chain: %q", out)
		}
	})
}

func TestErrorContextRequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("venv").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}

	wrapped := WrapWithOperation(errors.New("boom"), "install libraries")
	if wrapped.Operation != "install libraries" {
		t.Errorf("Operation = %q", wrapped.Operation)
	}
}

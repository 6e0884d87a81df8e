// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"venvctl/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner executes shell snippets using the embedded mvdan/sh
// interpreter. It backs the setup hooks, which are written as POSIX
// shell rather than argv lists.
type VirtualRunner struct{}

// NewVirtualRunner creates a new virtual runner.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// ValidateScript parses the snippet and reports syntax errors without
// executing anything. Used by dry-run.
func (r *VirtualRunner) ValidateScript(script string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// RunScript parses and executes a shell snippet. The Argv field of cmd is
// ignored; the snippet is carried separately so Command keeps its
// argv-oriented shape for native execution.
func (r *VirtualRunner) RunScript(ctx context.Context, script string, cmd Command) *Result {
	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(script), "script")
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse script: %w", err))
	}

	opts := []interp.RunnerOption{
		interp.StdIO(cmd.Stdin, cmd.Stdout, cmd.Stderr),
	}
	if cmd.Dir != "" {
		opts = append(opts, interp.Dir(cmd.Dir))
	}
	if cmd.Env != nil {
		opts = append(opts, interp.Env(expand.ListEnviron(cmd.Env...)))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if err := sh.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(types.ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("script execution failed: %w", err))
	}

	return NewSuccessResult()
}

// RunScriptCapture executes a shell snippet and captures stdout/stderr.
func (r *VirtualRunner) RunScriptCapture(ctx context.Context, script string, cmd Command) *Result {
	var stdout, stderr bytes.Buffer
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := r.RunScript(ctx, script, cmd)
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

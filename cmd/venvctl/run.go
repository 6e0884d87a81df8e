// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"venvctl/internal/launch"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [-- args...]",
	Short: "Launch the entrypoint inside the virtual environment",
	Long: `Launch the entrypoint inside the virtual environment.

Checks that the environment directory exists, activates it for the
child process only, and starts the configured entrypoint with the
environment's interpreter. Arguments after -- are passed through
verbatim, and the entrypoint's exit code becomes run's exit code.

If the environment directory does not exist nothing is started; run
prints what to do about it and exits non-zero.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLaunch(cmd, args)
	},
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	l, err := launch.New(launch.Options{Config: cfg})
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	code, err := l.Launch(cmd.Context(), args)
	if err != nil {
		// The missing-environment diagnostic has already been printed.
		if errors.Is(err, launch.ErrEnvironmentMissing) {
			return &ExitError{Code: code}
		}
		return &ExitError{Code: code, Err: err}
	}
	if !code.IsSuccess() {
		// Normal child failure: the entrypoint's own output is the
		// diagnostic, venvctl only mirrors its exit code.
		return &ExitError{Code: code}
	}
	return nil
}

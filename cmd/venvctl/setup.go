// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"venvctl/internal/issue"
	"venvctl/internal/provision"

	"github.com/spf13/cobra"
)

var (
	// setupDryRun prints the provisioning plan without executing it.
	setupDryRun bool
	// setupSkipSystem omits the host package manager steps.
	setupSkipSystem bool

	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Provision the virtual environment",
		Long: `Provision the virtual environment.

Runs the provisioning pipeline in order: refresh the system package
index, install system packages, create the virtual environment (skipped
when the directory already exists), upgrade the installer, and install
the configured libraries. The first failing step aborts the run and its
exit code becomes setup's own exit code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd)
		},
	}
)

func init() {
	setupCmd.Flags().BoolVar(&setupDryRun, "dry-run", false, "print the provisioning plan without executing it")
	setupCmd.Flags().BoolVar(&setupSkipSystem, "skip-system", false, "skip the system package manager steps")
}

func runSetup(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	p, err := provision.New(provision.Options{
		Config:     cfg,
		Out:        cmd.OutOrStdout(),
		DryRun:     setupDryRun,
		SkipSystem: setupSkipSystem,
	})
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if err := p.Provision(cmd.Context()); err != nil {
		if errors.Is(err, provision.ErrStepFailed) {
			if rendered, renderErr := issue.Get(issue.StepFailedId).Render("auto"); renderErr == nil {
				fmt.Fprint(os.Stderr, rendered)
			}
		}
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Setup failed: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: provision.ExitCodeOf(err)}
	}

	if setupDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("Dry run complete; nothing was executed."))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Environment ready: ")+string(cfg.EnvDir))
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"venvctl/internal/config"
	"venvctl/internal/envdir"
	"venvctl/internal/issue"
	"venvctl/internal/runner"
	"venvctl/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Provisioner drives the setup pipeline for one environment.
	Provisioner struct {
		cfg    *config.Config
		env    *envdir.Environment
		runner runner.Runner
		shell  *runner.VirtualRunner
		logger *log.Logger
		out    io.Writer

		dryRun     bool
		skipSystem bool
	}

	// Options configures a Provisioner. Config is required; everything
	// else has a working default.
	Options struct {
		// Config is the loaded application configuration.
		Config *config.Config
		// Runner executes external commands. Defaults to the native runner.
		Runner runner.Runner
		// Shell executes the hook snippets. Defaults to the embedded interpreter.
		Shell *runner.VirtualRunner
		// Logger receives debug-level step details.
		Logger *log.Logger
		// Out receives the human-readable step status lines. Defaults to stdout.
		Out io.Writer
		// DryRun prints the pipeline without executing anything.
		DryRun bool
		// SkipSystem omits the host package manager steps.
		SkipSystem bool
	}
)

// New creates a Provisioner from the given options.
func New(opts Options) (*Provisioner, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if valid, errs := opts.Config.IsValid(); !valid {
		return nil, errs[0]
	}

	env, err := envdir.New(opts.Config.EnvDir)
	if err != nil {
		return nil, err
	}

	p := &Provisioner{
		cfg:        opts.Config,
		env:        env,
		runner:     opts.Runner,
		shell:      opts.Shell,
		logger:     opts.Logger,
		out:        opts.Out,
		dryRun:     opts.DryRun,
		skipSystem: opts.SkipSystem,
	}
	if p.runner == nil {
		p.runner = runner.NewNativeRunner()
	}
	if p.shell == nil {
		p.shell = runner.NewVirtualRunner()
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	return p, nil
}

// Provision runs the full pipeline: pre-setup hook, the provisioning
// steps in order, the post-setup hook, then the environment manifest.
// The first failure aborts the run; completed steps are left in place.
func (p *Provisioner) Provision(ctx context.Context) error {
	if err := p.runHook(ctx, "pre-setup", p.cfg.Hooks.PreSetup); err != nil {
		return err
	}

	for _, s := range p.steps() {
		if err := p.runStep(ctx, s); err != nil {
			return err
		}
	}

	if err := p.runHook(ctx, "post-setup", p.cfg.Hooks.PostSetup); err != nil {
		return err
	}

	if p.dryRun {
		return nil
	}

	// Structural verification is informational: a missing interpreter after
	// a clean pipeline is worth a warning, not a failure.
	if !p.env.Probe() {
		p.logger.Warn("environment looks incomplete", "interpreter", p.env.Interpreter())
	}
	return p.writeManifest()
}

// Environment returns the environment being provisioned.
func (p *Provisioner) Environment() *envdir.Environment {
	return p.env
}

// steps builds the pipeline in execution order. Each step's plan runs
// lazily so it observes the host state left behind by earlier steps.
func (p *Provisioner) steps() []step {
	return []step{
		{
			name:  "refresh-index",
			title: "Refreshing system package index",
			plan: func(context.Context) ([]string, string, error) {
				if p.skipSystem {
					return nil, "system steps disabled", nil
				}
				if !p.cfg.System.RefreshIndex {
					return nil, "index refresh disabled in config", nil
				}
				return []string{p.cfg.System.InstallCmd, "update"}, "", nil
			},
		},
		{
			name:  "install-system",
			title: "Installing system packages",
			plan: func(context.Context) ([]string, string, error) {
				if p.skipSystem {
					return nil, "system steps disabled", nil
				}
				if len(p.cfg.System.Packages) == 0 {
					return nil, "no system packages configured", nil
				}
				argv := []string{p.cfg.System.InstallCmd, "install", "-y"}
				for _, pkg := range p.cfg.System.Packages {
					argv = append(argv, string(pkg))
				}
				return argv, "", nil
			},
		},
		{
			name:  "create-env",
			title: "Creating virtual environment",
			plan: func(context.Context) ([]string, string, error) {
				exists, err := p.env.Exists()
				if err != nil {
					return nil, "", err
				}
				if exists {
					return nil, fmt.Sprintf("%s already present", p.env.Root), nil
				}
				return []string{p.cfg.Python, "-m", "venv", string(p.env.Root)}, "", nil
			},
		},
		{
			name:  "upgrade-installer",
			title: "Upgrading installer",
			env:   p.activationEnviron,
			plan: func(context.Context) ([]string, string, error) {
				if !p.cfg.UpgradeInstaller {
					return nil, "installer upgrade disabled in config", nil
				}
				return []string{p.env.Installer(), "install", "--upgrade", "pip"}, "", nil
			},
		},
		{
			name:  "install-libraries",
			title: "Installing libraries",
			env:   p.activationEnviron,
			plan: func(context.Context) ([]string, string, error) {
				if len(p.cfg.Libraries) == 0 {
					return nil, "no libraries configured", nil
				}
				argv := []string{p.env.Installer(), "install"}
				for _, lib := range p.cfg.Libraries {
					argv = append(argv, lib.Spec().String())
				}
				return argv, "", nil
			},
		},
	}
}

// runStep prints the step's status line, evaluates its plan, and
// executes the resulting argv through the runner with inherited stdio.
func (p *Provisioner) runStep(ctx context.Context, s step) error {
	fmt.Fprintf(p.out, "==> %s\n", s.title)

	argv, skip, err := s.plan(ctx)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("plan provisioning step").
			WithResource(s.name).
			Wrap(err).
			BuildError()
	}
	if skip != "" {
		fmt.Fprintf(p.out, "    skipped: %s\n", skip)
		return nil
	}

	if p.dryRun {
		fmt.Fprintf(p.out, "    would run: %s\n", strings.Join(argv, " "))
		return nil
	}

	cmd := runner.Command{Argv: argv}
	if s.env != nil {
		cmd.Env, err = s.env()
		if err != nil {
			return issue.NewErrorContext().
				WithOperation("build step environment").
				WithResource(s.name).
				Wrap(err).
				BuildError()
		}
	}

	p.logger.Debug("executing provisioning step", "step", s.name, "argv", argv)
	result := p.runner.Run(ctx, cmd)
	if result.Error != nil {
		return &StepError{Step: s.name, ExitCode: result.ExitCode, Cause: result.Error}
	}
	if !result.ExitCode.IsSuccess() {
		return &StepError{Step: s.name, ExitCode: result.ExitCode}
	}
	return nil
}

// runHook executes one of the configured shell snippets. In dry-run
// mode the snippet is only parsed, never executed.
func (p *Provisioner) runHook(ctx context.Context, name, script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}

	fmt.Fprintf(p.out, "==> Running %s hook\n", name)

	if p.dryRun {
		if err := p.shell.ValidateScript(script); err != nil {
			return issue.NewErrorContext().
				WithOperation("validate hook").
				WithResource(name).
				Wrap(err).
				BuildError()
		}
		fmt.Fprintf(p.out, "    would run %s hook\n", name)
		return nil
	}

	result := p.shell.RunScript(ctx, script, runner.Command{
		Stdout: p.out,
		Stderr: os.Stderr,
	})
	if result.Error != nil {
		return &StepError{Step: name + "-hook", ExitCode: result.ExitCode, Cause: result.Error}
	}
	if !result.ExitCode.IsSuccess() {
		return &StepError{Step: name + "-hook", ExitCode: result.ExitCode}
	}
	return nil
}

// activationEnviron builds the child environment for steps that run
// tools from inside the environment.
func (p *Provisioner) activationEnviron() ([]string, error) {
	activation, err := p.env.Activate()
	if err != nil {
		return nil, err
	}
	return activation.Environ(os.Environ()), nil
}

// writeManifest records the run's inputs inside the environment root.
// Failure to write the manifest does not fail the run: the environment
// itself is complete at this point.
func (p *Provisioner) writeManifest() error {
	libs := make([]string, 0, len(p.cfg.Libraries))
	for _, lib := range p.cfg.Libraries {
		libs = append(libs, lib.Spec().String())
	}
	var sysPkgs []string
	if !p.skipSystem {
		sysPkgs = make([]string, 0, len(p.cfg.System.Packages))
		for _, pkg := range p.cfg.System.Packages {
			sysPkgs = append(sysPkgs, string(pkg))
		}
	}

	err := p.env.WriteManifest(&envdir.Manifest{
		ProvisionedAt:  time.Now().UTC(),
		Python:         p.cfg.Python,
		SystemPackages: sysPkgs,
		Libraries:      libs,
	})
	if err != nil {
		p.logger.Warn("failed to write environment manifest", "err", err)
	}
	return nil
}

// ExitCodeOf extracts the exit code a failed Provision call should
// propagate: the failing step's child exit code when available,
// otherwise a generic failure.
func ExitCodeOf(err error) types.ExitCode {
	var stepErr *StepError
	if errors.As(err, &stepErr) && !stepErr.ExitCode.IsSuccess() {
		return stepErr.ExitCode
	}
	return 1
}

// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"venvctl/internal/config"
	"venvctl/internal/envdir"
	"venvctl/internal/issue"
	"venvctl/internal/runner"
	"venvctl/pkg/types"

	"github.com/charmbracelet/log"
)

// ErrEnvironmentMissing is returned when the environment directory does
// not exist. The launcher has already printed the remediation message by
// the time this error surfaces.
var ErrEnvironmentMissing = errors.New("environment not found")

type (
	// Launcher checks the environment and hands off to the entrypoint.
	Launcher struct {
		cfg    *config.Config
		env    *envdir.Environment
		runner runner.Runner
		logger *log.Logger
		errOut io.Writer
	}

	// Options configures a Launcher. Config is required; everything else
	// has a working default.
	Options struct {
		// Config is the loaded application configuration.
		Config *config.Config
		// Runner executes the entrypoint. Defaults to the native runner.
		Runner runner.Runner
		// Logger receives debug-level launch details.
		Logger *log.Logger
		// ErrOut receives the missing-environment diagnostic. Defaults to stderr.
		ErrOut io.Writer
	}
)

// New creates a Launcher from the given options.
func New(opts Options) (*Launcher, error) {
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

	l := &Launcher{
		cfg:    opts.Config,
		env:    env,
		runner: opts.Runner,
		logger: opts.Logger,
		errOut: opts.ErrOut,
	}
	if l.runner == nil {
		l.runner = runner.NewNativeRunner()
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	if l.errOut == nil {
		l.errOut = os.Stderr
	}
	return l, nil
}

// Environment returns the environment the launcher targets.
func (l *Launcher) Environment() *envdir.Environment {
	return l.env
}

// Launch runs the entrypoint inside the environment, passing args
// through verbatim, and returns the entrypoint's exit code.
//
// When the environment directory is absent, Launch prints the
// remediation message, returns the missing-environment exit code and
// ErrEnvironmentMissing, and never attempts a start. Presence of the
// directory is the only gate: an existing but broken environment still
// gets a start attempt, and the resulting interpreter error is the
// user's diagnostic.
func (l *Launcher) Launch(ctx context.Context, args []string) (types.ExitCode, error) {
	exists, err := l.env.Exists()
	if err != nil {
		return 1, issue.NewErrorContext().
			WithOperation("check environment").
			WithResource(string(l.env.Root)).
			Wrap(err).
			BuildError()
	}
	if !exists {
		l.reportMissing()
		return types.ExitMissingEnvironment, fmt.Errorf("%w: %s", ErrEnvironmentMissing, l.env.Root)
	}

	activation, err := l.env.Activate()
	if err != nil {
		return 1, issue.NewErrorContext().
			WithOperation("activate environment").
			WithResource(string(l.env.Root)).
			Wrap(err).
			BuildError()
	}

	argv := append([]string{l.env.Interpreter(), string(l.cfg.Entrypoint)}, args...)
	l.logger.Debug("launching entrypoint", "argv", argv, "virtual_env", activation.VirtualEnv)

	result := l.runner.Run(ctx, runner.Command{
		Argv: argv,
		Env:  activation.Environ(os.Environ()),
	})
	if result.Error != nil {
		return result.ExitCode, issue.NewErrorContext().
			WithOperation("launch entrypoint").
			WithResource(string(l.cfg.Entrypoint)).
			WithSuggestion("Re-run `venvctl setup` if the environment is incomplete").
			Wrap(result.Error).
			BuildError()
	}
	return result.ExitCode, nil
}

// reportMissing renders the missing-environment issue. If rendering
// fails the plain markdown is printed instead; the message always
// reaches the user.
func (l *Launcher) reportMissing() {
	found := issue.Get(issue.EnvNotFoundId)
	msg, err := found.Render("auto")
	if err != nil {
		msg = string(found.MarkdownMsg())
	}
	fmt.Fprintln(l.errOut, msg)
}

// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"venvctl/internal/config"
	"venvctl/internal/runner"
	"venvctl/pkg/types"
)

// mockRunner records commands and replays a single scripted result.
type mockRunner struct {
	commands []runner.Command
	result   *runner.Result
}

func (m *mockRunner) Run(_ context.Context, cmd runner.Command) *runner.Result {
	m.commands = append(m.commands, cmd)
	if m.result != nil {
		return m.result
	}
	return runner.NewSuccessResult()
}

func (m *mockRunner) RunCapture(ctx context.Context, cmd runner.Command) *runner.Result {
	return m.Run(ctx, cmd)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.EnvDir = types.FilesystemPath(filepath.Join(t.TempDir(), "venv"))
	cfg.Entrypoint = "app.py"
	return cfg
}

func newTestLauncher(t *testing.T, cfg *config.Config, mock *mockRunner) (*Launcher, *bytes.Buffer) {
	t.Helper()
	var errOut bytes.Buffer
	l, err := New(Options{Config: cfg, Runner: mock, ErrOut: &errOut})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return l, &errOut
}

func TestLaunchMissingEnvironment(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	mock := &mockRunner{}
	l, errOut := newTestLauncher(t, cfg, mock)

	code, err := l.Launch(context.Background(), nil)

	if code != types.ExitMissingEnvironment {
		t.Errorf("exit code = %d, want %d", code, types.ExitMissingEnvironment)
	}
	if !errors.Is(err, ErrEnvironmentMissing) {
		t.Errorf("error = %v, want ErrEnvironmentMissing", err)
	}
	if len(mock.commands) != 0 {
		t.Errorf("launcher started %d commands for a missing environment, want 0", len(mock.commands))
	}

	msg := errOut.String()
	if !strings.Contains(msg, "not found") {
		t.Errorf("diagnostic %q should state the environment was not found", msg)
	}
	if !strings.Contains(msg, "setup") {
		t.Errorf("diagnostic %q should point at the setup command", msg)
	}
}

func TestLaunchEmptyDirectoryStillStarts(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	if err := os.MkdirAll(string(cfg.EnvDir), 0o755); err != nil {
		t.Fatal(err)
	}

	mock := &mockRunner{}
	l, _ := newTestLauncher(t, cfg, mock)

	code, err := l.Launch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Launch() unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if len(mock.commands) != 1 {
		t.Fatalf("launcher started %d commands, want exactly 1", len(mock.commands))
	}
}

func TestLaunchArgvAndEnviron(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	if err := os.MkdirAll(string(cfg.EnvDir), 0o755); err != nil {
		t.Fatal(err)
	}

	mock := &mockRunner{}
	l, _ := newTestLauncher(t, cfg, mock)

	if _, err := l.Launch(context.Background(), []string{"--port", "8080"}); err != nil {
		t.Fatalf("Launch() unexpected error: %v", err)
	}

	cmd := mock.commands[0]
	want := []string{l.Environment().Interpreter(), "app.py", "--port", "8080"}
	if strings.Join(cmd.Argv, " ") != strings.Join(want, " ") {
		t.Errorf("Argv = %v, want %v", cmd.Argv, want)
	}

	var virtualEnv string
	for _, kv := range cmd.Env {
		if name, value, ok := strings.Cut(kv, "="); ok && name == "VIRTUAL_ENV" {
			virtualEnv = value
		}
	}
	abs, err := l.Environment().AbsRoot()
	if err != nil {
		t.Fatal(err)
	}
	if virtualEnv != abs {
		t.Errorf("VIRTUAL_ENV = %q, want %q", virtualEnv, abs)
	}
}

func TestLaunchPropagatesExitCode(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	if err := os.MkdirAll(string(cfg.EnvDir), 0o755); err != nil {
		t.Fatal(err)
	}

	mock := &mockRunner{result: runner.NewExitCodeResult(42)}
	l, _ := newTestLauncher(t, cfg, mock)

	code, err := l.Launch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Launch() unexpected error: %v", err)
	}
	if code != 42 {
		t.Errorf("exit code = %d, want the entrypoint's own 42", code)
	}
}

func TestLaunchFileAtEnvironmentPath(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	if err := os.WriteFile(string(cfg.EnvDir), []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}

	mock := &mockRunner{}
	l, _ := newTestLauncher(t, cfg, mock)

	code, err := l.Launch(context.Background(), nil)
	if err == nil {
		t.Fatal("Launch() should fail when the environment path is a file")
	}
	if code == 0 {
		t.Error("exit code should be non-zero")
	}
	if len(mock.commands) != 0 {
		t.Errorf("launcher started %d commands, want 0", len(mock.commands))
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.EnvDir = ""

	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("New() should reject a config with an empty environment directory")
	}
	if _, err := New(Options{}); err == nil {
		t.Error("New() should reject a nil config")
	}
}

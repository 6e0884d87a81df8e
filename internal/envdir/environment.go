// SPDX-License-Identifier: MPL-2.0

package envdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"venvctl/pkg/types"
)

// ErrNotDirectory is returned when the environment path exists but is a file.
var ErrNotDirectory = errors.New("environment path is not a directory")

type (
	// Environment is the virtual environment directory on disk. Its mere
	// existence is the launch precondition; internal structure is never
	// validated before launching.
	Environment struct {
		// Root is the environment directory (absolute or relative to the
		// working directory of the invocation).
		Root types.FilesystemPath
	}
)

// New creates an Environment for the given root directory.
func New(root types.FilesystemPath) (*Environment, error) {
	if valid, errs := root.IsValid(); !valid {
		return nil, errs[0]
	}
	return &Environment{Root: root}, nil
}

// Exists reports whether the environment directory is present.
// It is a pure read-only check with no side effects. A file at the
// environment path is reported as an error rather than presence.
func (e *Environment) Exists() (bool, error) {
	info, err := os.Stat(string(e.Root))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat environment directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%w: %s", ErrNotDirectory, e.Root)
	}
	return true, nil
}

// Probe reports whether the environment looks structurally complete
// (its interpreter is present). Setup uses this as a post-create
// verification; the launcher never does, existence alone gates launching.
func (e *Environment) Probe() bool {
	info, err := os.Stat(e.Interpreter())
	return err == nil && !info.IsDir()
}

// BinDir returns the environment's executable directory
// (bin/ on Unix, Scripts\ on Windows).
func (e *Environment) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(string(e.Root), "Scripts")
	}
	return filepath.Join(string(e.Root), "bin")
}

// Interpreter returns the path of the python binary inside the environment.
func (e *Environment) Interpreter() string {
	return e.Tool("python")
}

// Installer returns the path of the pip binary inside the environment.
func (e *Environment) Installer() string {
	return e.Tool("pip")
}

// Tool returns the path of a named executable inside the environment's
// bin directory.
func (e *Environment) Tool(name string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.BinDir(), name+".exe")
	}
	return filepath.Join(e.BinDir(), name)
}

// AbsRoot returns the absolute path of the environment root.
func (e *Environment) AbsRoot() (string, error) {
	abs, err := filepath.Abs(string(e.Root))
	if err != nil {
		return "", fmt.Errorf("failed to resolve environment path: %w", err)
	}
	return abs, nil
}

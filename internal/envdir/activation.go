// SPDX-License-Identifier: MPL-2.0

package envdir

import (
	"os"
	"path/filepath"
	"strings"
)

// Activation is an explicitly constructed activated environment for a
// child process. Nothing in the current process is mutated: activation
// exists only as the environ slice handed to the child. This replaces
// the conventional "source bin/activate" step, which works by mutating
// ambient shell state.
type Activation struct {
	// VirtualEnv is the absolute environment root, exported as VIRTUAL_ENV.
	VirtualEnv string
	// BinDir is prepended to the child's PATH.
	BinDir string
}

// Activate builds an Activation for the environment.
func (e *Environment) Activate() (*Activation, error) {
	abs, err := e.AbsRoot()
	if err != nil {
		return nil, err
	}
	return &Activation{
		VirtualEnv: abs,
		BinDir:     filepath.Join(abs, filepath.Base(e.BinDir())),
	}, nil
}

// Environ returns a copy of base with the activation applied:
// VIRTUAL_ENV set, the environment's bin directory prepended to PATH,
// and PYTHONHOME removed (it would override the venv's interpreter
// resolution). The base slice is not modified.
func (a *Activation) Environ(base []string) []string {
	out := make([]string, 0, len(base)+2)
	pathSeen := false

	for _, kv := range base {
		name, _, ok := strings.Cut(kv, "=")
		if !ok {
			out = append(out, kv)
			continue
		}
		switch {
		case envVarEquals(name, "VIRTUAL_ENV"), envVarEquals(name, "PYTHONHOME"):
			// replaced / dropped below
		case envVarEquals(name, "PATH"):
			pathSeen = true
			out = append(out, "PATH="+a.BinDir+string(os.PathListSeparator)+kv[len(name)+1:])
		default:
			out = append(out, kv)
		}
	}

	if !pathSeen {
		out = append(out, "PATH="+a.BinDir)
	}
	out = append(out, "VIRTUAL_ENV="+a.VirtualEnv)

	return out
}

// envVarEquals compares environment variable names. Windows treats
// variable names case-insensitively; everywhere else the comparison
// is exact.
func envVarEquals(name, want string) bool {
	if os.PathListSeparator == ';' {
		return strings.EqualFold(name, want)
	}
	return name == want
}

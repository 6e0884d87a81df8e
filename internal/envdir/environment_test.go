// SPDX-License-Identifier: MPL-2.0

package envdir

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"venvctl/pkg/types"
)

func TestNewRejectsInvalidPath(t *testing.T) {
	t.Parallel()

	if _, err := New(""); !errors.Is(err, types.ErrInvalidFilesystemPath) {
		t.Errorf("New(\"\") error = %v, want ErrInvalidFilesystemPath", err)
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	t.Run("absent directory", func(t *testing.T) {
		t.Parallel()

		env := &Environment{Root: types.FilesystemPath(filepath.Join(t.TempDir(), "venv"))}
		exists, err := env.Exists()
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if exists {
			t.Error("Exists() = true for absent directory")
		}
	})

	t.Run("present directory", func(t *testing.T) {
		t.Parallel()

		env := &Environment{Root: types.FilesystemPath(t.TempDir())}
		exists, err := env.Exists()
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if !exists {
			t.Error("Exists() = false for present directory")
		}
	})

	t.Run("empty directory still counts", func(t *testing.T) {
		t.Parallel()

		// Existence is the whole contract: an empty directory that is not a
		// real environment must still pass.
		dir := filepath.Join(t.TempDir(), "venv")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		env := &Environment{Root: types.FilesystemPath(dir)}
		exists, err := env.Exists()
		if err != nil || !exists {
			t.Errorf("Exists() = (%v, %v), want (true, nil)", exists, err)
		}
	})

	t.Run("file at path is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "venv")
		if err := os.WriteFile(path, []byte("not a dir"), 0o644); err != nil {
			t.Fatal(err)
		}
		env := &Environment{Root: types.FilesystemPath(path)}
		if _, err := env.Exists(); !errors.Is(err, ErrNotDirectory) {
			t.Errorf("Exists() error = %v, want ErrNotDirectory", err)
		}
	})
}

func TestProbe(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := &Environment{Root: types.FilesystemPath(dir)}

	if env.Probe() {
		t.Error("Probe() = true for an empty directory")
	}

	if err := os.MkdirAll(env.BinDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.Interpreter(), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	if !env.Probe() {
		t.Error("Probe() = false with interpreter present")
	}
}

func TestToolPaths(t *testing.T) {
	t.Parallel()

	env := &Environment{Root: "venv"}

	if runtime.GOOS == "windows" {
		if got := env.Installer(); got != filepath.Join("venv", "Scripts", "pip.exe") {
			t.Errorf("Installer() = %q", got)
		}
		return
	}
	if got := env.Installer(); got != filepath.Join("venv", "bin", "pip") {
		t.Errorf("Installer() = %q", got)
	}
	if got := env.Interpreter(); got != filepath.Join("venv", "bin", "python") {
		t.Errorf("Interpreter() = %q", got)
	}
}

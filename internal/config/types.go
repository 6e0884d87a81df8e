// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"venvctl/pkg/types"
)

var (
	// ErrInvalidSystemConfig is the sentinel error wrapped by InvalidSystemConfigError.
	ErrInvalidSystemConfig = errors.New("invalid system config")
	// ErrInvalidLibraryEntry is the sentinel error wrapped by InvalidLibraryEntryError.
	ErrInvalidLibraryEntry = errors.New("invalid library entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config holds the application configuration.
	Config struct {
		// EnvDir is the environment directory created by setup and checked by run.
		EnvDir types.FilesystemPath `json:"env_dir" mapstructure:"env_dir"`
		// Python is the host interpreter used to create the environment.
		Python string `json:"python" mapstructure:"python"`
		// Entrypoint is the script handed off to on launch. Its behavior is opaque.
		Entrypoint types.FilesystemPath `json:"entrypoint" mapstructure:"entrypoint"`
		// UpgradeInstaller upgrades pip inside the environment during setup.
		UpgradeInstaller bool `json:"upgrade_installer" mapstructure:"upgrade_installer"`
		// System configures the host package manager steps.
		System SystemConfig `json:"system" mapstructure:"system"`
		// Libraries are the pip specs installed into the environment.
		Libraries []LibraryEntry `json:"libraries" mapstructure:"libraries"`
		// Hooks are optional shell snippets run around provisioning.
		Hooks HooksConfig `json:"hooks" mapstructure:"hooks"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// SystemConfig configures the host package manager steps of setup.
	SystemConfig struct {
		// RefreshIndex runs the package index update before installing.
		RefreshIndex bool `json:"refresh_index" mapstructure:"refresh_index"`
		// InstallCmd is the host package manager binary (apt-get by default).
		InstallCmd string `json:"install_cmd" mapstructure:"install_cmd"`
		// Packages are the system packages installed before creating the environment.
		Packages []types.PackageName `json:"packages" mapstructure:"packages"`
	}

	// LibraryEntry specifies a library to install into the environment.
	LibraryEntry struct {
		// Name is the library name as understood by the installer.
		Name types.PackageName `json:"name" mapstructure:"name"`
		// Version optionally pins an exact version ("" means latest).
		Version types.VersionConstraint `json:"version,omitempty" mapstructure:"version"`
	}

	// HooksConfig holds optional shell snippets executed by the embedded
	// shell interpreter around the provisioning pipeline.
	HooksConfig struct {
		// PreSetup runs before the first provisioning step.
		PreSetup string `json:"pre_setup" mapstructure:"pre_setup"`
		// PostSetup runs after the last provisioning step.
		PostSetup string `json:"post_setup" mapstructure:"post_setup"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidSystemConfigError is returned when a SystemConfig has invalid fields.
	// It wraps ErrInvalidSystemConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidSystemConfigError struct {
		FieldErrors []error
	}

	// InvalidLibraryEntryError is returned when a LibraryEntry has invalid fields.
	// It wraps ErrInvalidLibraryEntry for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidLibraryEntryError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Spec converts the entry to the value type consumed by the provisioner.
func (e LibraryEntry) Spec() types.PackageSpec {
	return types.PackageSpec{Name: e.Name, Version: e.Version}
}

// IsValid returns whether the LibraryEntry has valid fields.
// It delegates to Name.IsValid() and Version.IsValid().
func (e LibraryEntry) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := e.Name.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := e.Version.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidLibraryEntryError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidLibraryEntryError.
func (e *InvalidLibraryEntryError) Error() string {
	return fmt.Sprintf("invalid library entry: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLibraryEntry for errors.Is() compatibility.
func (e *InvalidLibraryEntryError) Unwrap() error { return ErrInvalidLibraryEntry }

// IsValid returns whether the SystemConfig has valid fields.
// It validates each package name; bool fields need no validation.
func (c SystemConfig) IsValid() (bool, []error) {
	var errs []error
	for _, pkg := range c.Packages {
		if valid, fieldErrs := pkg.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidSystemConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSystemConfigError.
func (e *InvalidSystemConfigError) Error() string {
	return fmt.Sprintf("invalid system config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidSystemConfig for errors.Is() compatibility.
func (e *InvalidSystemConfigError) Unwrap() error { return ErrInvalidSystemConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to EnvDir.IsValid(), Entrypoint.IsValid(), System.IsValid(),
// and each library entry's IsValid(). Hooks and UI carry free-form/bool
// fields and need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.EnvDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Entrypoint.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.System.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, entry := range c.Libraries {
		if valid, fieldErrs := entry.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration. The package lists
// reproduce the bootstrap the tool replaces: the python3 toolchain plus
// the numeric/imaging support libraries on the system side, and the
// application's library set on the environment side.
func DefaultConfig() *Config {
	return &Config{
		EnvDir:           "venv",
		Python:           "python3",
		Entrypoint:       "script.py",
		UpgradeInstaller: true,
		System: SystemConfig{
			RefreshIndex: true,
			InstallCmd:   "apt-get",
			Packages: []types.PackageName{
				"python3",
				"python3-venv",
				"python3-pip",
				"libatlas-base-dev",
				"libopenjp2-7",
				"libtiff-dev",
			},
		},
		Libraries: []LibraryEntry{
			{Name: "flask"},
			{Name: "numpy"},
			{Name: "matplotlib"},
			{Name: "opencv-python-headless"},
		},
		Hooks: HooksConfig{},
		UI: UIConfig{
			Verbose: false,
		},
	}
}

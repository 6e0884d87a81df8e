// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPackageName is the sentinel error wrapped by InvalidPackageNameError.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrInvalidVersionConstraint is the sentinel error wrapped by InvalidVersionConstraintError.
	ErrInvalidVersionConstraint = errors.New("invalid version constraint")
)

type (
	// PackageName identifies a package in either the system package manager
	// or the environment's library installer. A valid name is non-empty and
	// consists of letters, digits, and the separators '.', '-', '_', '+'.
	PackageName string

	// InvalidPackageNameError is returned when a PackageName value is empty
	// or contains characters outside the allowed set.
	InvalidPackageNameError struct {
		Value PackageName
	}

	// VersionConstraint is an optional exact-version pin for a library
	// (e.g. "2.3.1"). The zero value ("") is valid and means "latest".
	// Non-zero values consist of digits, letters, '.', '-', '+', '*'.
	VersionConstraint string

	// InvalidVersionConstraintError is returned when a VersionConstraint is
	// non-empty but contains characters outside the allowed set.
	InvalidVersionConstraintError struct {
		Value VersionConstraint
	}

	// PackageSpec pairs a package name with an optional version constraint.
	// Specs render to installer arguments via String(): "name" or
	// "name==version".
	PackageSpec struct {
		Name    PackageName
		Version VersionConstraint
	}
)

// String returns the string representation of the PackageName.
func (n PackageName) String() string { return string(n) }

// IsValid returns whether the PackageName is valid.
func (n PackageName) IsValid() (bool, []error) {
	if n == "" {
		return false, []error{&InvalidPackageNameError{Value: n}}
	}
	for _, r := range string(n) {
		if !isPackageNameRune(r) {
			return false, []error{&InvalidPackageNameError{Value: n}}
		}
	}
	return true, nil
}

func isPackageNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '-', r == '_', r == '+':
		return true
	}
	return false
}

// Error implements the error interface for InvalidPackageNameError.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q: must be non-empty and contain only letters, digits, '.', '-', '_', '+'", e.Value)
}

// Unwrap returns ErrInvalidPackageName for errors.Is() compatibility.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }

// String returns the string representation of the VersionConstraint.
func (v VersionConstraint) String() string { return string(v) }

// IsValid returns whether the VersionConstraint is valid.
// The zero value ("") is valid (means "latest").
func (v VersionConstraint) IsValid() (bool, []error) {
	if v == "" {
		return true, nil
	}
	for _, r := range string(v) {
		if !isVersionRune(r) {
			return false, []error{&InvalidVersionConstraintError{Value: v}}
		}
	}
	return true, nil
}

func isVersionRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '-', r == '+', r == '*':
		return true
	}
	return false
}

// Error implements the error interface for InvalidVersionConstraintError.
func (e *InvalidVersionConstraintError) Error() string {
	return fmt.Sprintf("invalid version constraint %q: must contain only letters, digits, '.', '-', '+', '*'", e.Value)
}

// Unwrap returns ErrInvalidVersionConstraint for errors.Is() compatibility.
func (e *InvalidVersionConstraintError) Unwrap() error { return ErrInvalidVersionConstraint }

// String renders the spec as an installer argument: "name" when no version
// is pinned, "name==version" otherwise.
func (s PackageSpec) String() string {
	if s.Version == "" {
		return string(s.Name)
	}
	return string(s.Name) + "==" + string(s.Version)
}

// IsValid returns whether both the name and the version constraint are valid.
func (s PackageSpec) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := s.Name.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := s.Version.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// ParsePackageSpec parses an installer-style spec string ("name" or
// "name==version") into a PackageSpec.
func ParsePackageSpec(raw string) (PackageSpec, error) {
	name, version, _ := strings.Cut(raw, "==")
	spec := PackageSpec{Name: PackageName(name), Version: VersionConstraint(version)}
	if valid, errs := spec.IsValid(); !valid {
		return PackageSpec{}, errs[0]
	}
	return spec, nil
}

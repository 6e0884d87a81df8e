// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestPackageNameIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     PackageName
		wantValid bool
	}{
		{name: "simple name", value: "numpy", wantValid: true},
		{name: "name with dash", value: "opencv-python-headless", wantValid: true},
		{name: "system package with plus", value: "libstdc++6", wantValid: true},
		{name: "dotted name", value: "ruamel.yaml", wantValid: true},
		{name: "empty is invalid", value: "", wantValid: false},
		{name: "spaces are invalid", value: "two words", wantValid: false},
		{name: "shell metacharacters are invalid", value: "pkg;rm -rf /", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.value.IsValid()
			if valid != tt.wantValid {
				t.Errorf("PackageName(%q).IsValid() = %v, want %v", tt.value, valid, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(errs[0], ErrInvalidPackageName) {
				t.Errorf("error does not wrap ErrInvalidPackageName: %v", errs[0])
			}
		})
	}
}

func TestVersionConstraintIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     VersionConstraint
		wantValid bool
	}{
		{name: "empty means latest", value: "", wantValid: true},
		{name: "semver", value: "2.3.1", wantValid: true},
		{name: "wildcard", value: "1.26.*", wantValid: true},
		{name: "pre-release", value: "4.8.0-rc1", wantValid: true},
		{name: "comparison operators are invalid", value: ">=2.0", wantValid: false},
		{name: "spaces are invalid", value: "2. 3", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.value.IsValid()
			if valid != tt.wantValid {
				t.Errorf("VersionConstraint(%q).IsValid() = %v, want %v", tt.value, valid, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(errs[0], ErrInvalidVersionConstraint) {
				t.Errorf("error does not wrap ErrInvalidVersionConstraint: %v", errs[0])
			}
		})
	}
}

func TestPackageSpecString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec PackageSpec
		want string
	}{
		{name: "unpinned", spec: PackageSpec{Name: "flask"}, want: "flask"},
		{name: "pinned", spec: PackageSpec{Name: "numpy", Version: "1.26.4"}, want: "numpy==1.26.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.spec.String(); got != tt.want {
				t.Errorf("PackageSpec.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePackageSpec(t *testing.T) {
	t.Parallel()

	t.Run("name only", func(t *testing.T) {
		t.Parallel()

		spec, err := ParsePackageSpec("matplotlib")
		if err != nil {
			t.Fatalf("ParsePackageSpec() error = %v", err)
		}
		if spec.Name != "matplotlib" || spec.Version != "" {
			t.Errorf("ParsePackageSpec() = %+v, want name matplotlib with no version", spec)
		}
	})

	t.Run("pinned", func(t *testing.T) {
		t.Parallel()

		spec, err := ParsePackageSpec("flask==3.0.2")
		if err != nil {
			t.Fatalf("ParsePackageSpec() error = %v", err)
		}
		if spec.Name != "flask" || spec.Version != "3.0.2" {
			t.Errorf("ParsePackageSpec() = %+v, want flask==3.0.2", spec)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		if _, err := ParsePackageSpec("bad name==1.0"); !errors.Is(err, ErrInvalidPackageName) {
			t.Errorf("ParsePackageSpec() error = %v, want ErrInvalidPackageName", err)
		}
	})
}

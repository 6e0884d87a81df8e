// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPathIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     FilesystemPath
		wantValid bool
	}{
		{name: "relative path is valid", value: "venv", wantValid: true},
		{name: "absolute path is valid", value: "/opt/app/venv", wantValid: true},
		{name: "path with spaces inside is valid", value: "my env", wantValid: true},
		{name: "empty is invalid", value: "", wantValid: false},
		{name: "whitespace-only is invalid", value: "   ", wantValid: false},
		{name: "NUL byte is invalid", value: "venv\x00", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.value.IsValid()
			if valid != tt.wantValid {
				t.Errorf("FilesystemPath(%q).IsValid() = %v, want %v", tt.value, valid, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(errs[0], ErrInvalidFilesystemPath) {
				t.Errorf("error does not wrap ErrInvalidFilesystemPath: %v", errs[0])
			}
		})
	}
}

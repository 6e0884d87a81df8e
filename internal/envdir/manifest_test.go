// SPDX-License-Identifier: MPL-2.0

package envdir

import (
	"testing"
	"time"

	"venvctl/pkg/types"
)

func TestManifestRoundTrip(t *testing.T) {
	t.Parallel()

	env := &Environment{Root: types.FilesystemPath(t.TempDir())}

	want := &Manifest{
		ProvisionedAt:  time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Python:         "python3",
		SystemPackages: []string{"python3-venv", "python3-pip"},
		Libraries:      []string{"flask", "numpy==1.26.4"},
	}
	if err := env.WriteManifest(want); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	got, err := env.ReadManifest()
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if got == nil {
		t.Fatal("ReadManifest() = nil after write")
	}
	if !got.ProvisionedAt.Equal(want.ProvisionedAt) {
		t.Errorf("ProvisionedAt = %v, want %v", got.ProvisionedAt, want.ProvisionedAt)
	}
	if len(got.Libraries) != 2 || got.Libraries[1] != "numpy==1.26.4" {
		t.Errorf("Libraries = %v", got.Libraries)
	}
}

func TestReadManifestAbsent(t *testing.T) {
	t.Parallel()

	env := &Environment{Root: types.FilesystemPath(t.TempDir())}
	m, err := env.ReadManifest()
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if m != nil {
		t.Errorf("ReadManifest() = %+v, want nil for absent manifest", m)
	}
}

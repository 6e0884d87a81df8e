// SPDX-License-Identifier: MPL-2.0

package envdir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the manifest file written inside the environment root.
const ManifestFileName = "venvctl-manifest.toml"

type (
	// Manifest records what the last provisioning run installed. It is
	// informational only: the launcher never reads it, and setup
	// overwrites it unconditionally on every run.
	Manifest struct {
		// ProvisionedAt is when the provisioning run completed.
		ProvisionedAt time.Time `toml:"provisioned_at"`
		// Python is the host interpreter used to create the environment.
		Python string `toml:"python"`
		// SystemPackages are the system packages the run installed.
		SystemPackages []string `toml:"system_packages"`
		// Libraries are the pip specs the run installed.
		Libraries []string `toml:"libraries"`
	}
)

// ManifestPath returns the manifest location inside the environment.
func (e *Environment) ManifestPath() string {
	return filepath.Join(string(e.Root), ManifestFileName)
}

// WriteManifest serializes the manifest into the environment root,
// replacing any previous one.
func (e *Environment) WriteManifest(m *Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(e.ManifestPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest from the environment root.
// Returns (nil, nil) when no manifest exists.
func (e *Environment) ReadManifest() (*Manifest, error) {
	data, err := os.ReadFile(e.ManifestPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// SPDX-License-Identifier: MPL-2.0

// Package provision implements the environment bootstrap: a strictly
// linear pipeline that refreshes the host package index, installs system
// packages, creates the virtual environment, upgrades the installer, and
// installs the configured libraries. Every step is idempotent or fatal;
// there are no retries and no rollback. The first failing step aborts
// the run and its exit code becomes the run's outcome.
package provision

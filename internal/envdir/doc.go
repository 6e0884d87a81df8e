// SPDX-License-Identifier: MPL-2.0

// Package envdir models the virtual environment directory: the single
// persistent artifact produced by setup and consumed by run. It owns the
// existence check that gates launching, the construction of an activated
// child environment (no ambient process state is mutated), and the
// informational manifest written after provisioning.
package envdir

// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting: ActionableError
// carries structured context (operation, resource, suggestions, cause)
// for terminal display, and a small catalog of known issues renders
// remediation guidance as markdown via glamour.
package issue

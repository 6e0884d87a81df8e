// SPDX-License-Identifier: MPL-2.0

// Package launch starts the configured entrypoint inside the virtual
// environment. The gate is deliberately shallow: the environment
// directory's existence is the only precondition checked before handing
// off. Everything past that point is the entrypoint's own business, and
// its exit code becomes the launcher's exit code unchanged.
package launch

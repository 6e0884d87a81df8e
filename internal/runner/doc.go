// SPDX-License-Identifier: MPL-2.0

// Package runner provides command execution for provisioning and launching.
// NativeRunner executes argv commands through os/exec; VirtualRunner
// executes shell snippets through the embedded mvdan/sh interpreter.
// Both map child failures to exit codes the same way, so callers can
// propagate process results without inspecting error types.
package runner

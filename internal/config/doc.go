// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/venvctl/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/venvctl/config.cue on macOS, %APPDATA%\venvctl\config.cue
// on Windows), falling back to a config.cue in the current directory. Defaults reproduce
// the conventional bootstrap: a "venv" directory provisioned with the system python3
// toolchain and the application's library set.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config

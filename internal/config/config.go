// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"venvctl/internal/issue"
	"venvctl/pkg/types"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "venvctl"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	// maxConfigFileSize bounds config file reads. Config files are small;
	// anything larger is almost certainly not a config file.
	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the venvctl configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads configuration honoring the package-level overrides set via
// SetConfigFilePathOverride / SetConfigDirOverride.
func Load() (*Config, error) {
	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
		ConfigDirPath:  configDirOverride,
	})
	return cfg, err
}

// loadWithOptions performs option-driven config loading without mutating
// package-level cache state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("env_dir", string(defaults.EnvDir))
	v.SetDefault("python", defaults.Python)
	v.SetDefault("entrypoint", string(defaults.Entrypoint))
	v.SetDefault("upgrade_installer", defaults.UpgradeInstaller)
	v.SetDefault("system.refresh_index", defaults.System.RefreshIndex)
	v.SetDefault("system.install_cmd", defaults.System.InstallCmd)
	v.SetDefault("system.packages", packageNamesToStrings(defaults.System.Packages))
	v.SetDefault("libraries", libraryEntriesToMaps(defaults.Libraries))
	v.SetDefault("hooks.pre_setup", defaults.Hooks.PreSetup)
	v.SetDefault("hooks.post_setup", defaults.Hooks.PostSetup)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'venvctl config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		// Try to load CUE config file
		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(cuePath).
					WithSuggestion("Check that the file contains valid CUE syntax").
					WithSuggestion("Verify the configuration values match the expected schema").
					Wrap(err).
					BuildError()
			}
			resolvedPath = cuePath
		} else {
			// Also check current directory
			localCuePath := ConfigFileName + "." + ConfigFileExt
			if fileExists(localCuePath) {
				if err := loadCUEIntoViper(v, localCuePath); err != nil {
					return nil, "", issue.NewErrorContext().
						WithOperation("load configuration").
						WithResource(localCuePath).
						WithSuggestion("Check that the file contains valid CUE syntax").
						WithSuggestion("Verify the configuration values match the expected schema").
						Wrap(err).
						BuildError()
				}
				resolvedPath = localCuePath
			}
			// If no config file found, use defaults (no error)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate constraints that CUE cannot express: library name uniqueness
	// and the value-type character sets.
	if err := validateLibraries(cfg.Libraries); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Ensure each library appears at most once").
			Wrap(err).
			BuildError()
	}
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check package and library names for stray characters").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Note: the config decodes to map[string]any (not a struct) for Viper
// integration, and validates with Concrete(false) because all fields are
// optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) > maxConfigFileSize {
		return fmt.Errorf("config file %s exceeds maximum size of %d bytes", path, maxConfigFileSize)
	}

	ctx := cuecontext.New()

	// Compile the schema
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	// Compile the user's config file
	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Unify with schema to validate against #Config definition
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	// Decode to Go map
	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// formatCUEError flattens a CUE error into a readable single error value.
func formatCUEError(err error, path string) error {
	details := cueerrors.Details(err, &cueerrors.Config{Cwd: filepath.Dir(path)})
	return fmt.Errorf("invalid config file %s:\n%s", path, strings.TrimRight(details, "\n"))
}

// validateLibraries checks that each library name appears at most once.
// Duplicate entries would make the effective pin ambiguous.
func validateLibraries(libraries []LibraryEntry) error {
	seen := make(map[string]int) // lowercased name -> index of first occurrence
	for i, entry := range libraries {
		key := strings.ToLower(string(entry.Name))
		if firstIdx, exists := seen[key]; exists {
			return fmt.Errorf("libraries[%d]: duplicate library %q (same as libraries[%d])", i, entry.Name, firstIdx)
		}
		seen[key] = i
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default config file if it doesn't exist
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	defaults := DefaultConfig()
	cueContent := GenerateCUE(defaults)

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// venvctl configuration file\n\n")

	sb.WriteString(fmt.Sprintf("env_dir: %q\n", cfg.EnvDir))
	sb.WriteString(fmt.Sprintf("python: %q\n", cfg.Python))
	sb.WriteString(fmt.Sprintf("entrypoint: %q\n", cfg.Entrypoint))
	sb.WriteString(fmt.Sprintf("upgrade_installer: %v\n", cfg.UpgradeInstaller))

	sb.WriteString("\nsystem: {\n")
	sb.WriteString(fmt.Sprintf("\trefresh_index: %v\n", cfg.System.RefreshIndex))
	sb.WriteString(fmt.Sprintf("\tinstall_cmd: %q\n", cfg.System.InstallCmd))
	if len(cfg.System.Packages) > 0 {
		sb.WriteString("\tpackages: [\n")
		for _, pkg := range cfg.System.Packages {
			sb.WriteString(fmt.Sprintf("\t\t%q,\n", pkg))
		}
		sb.WriteString("\t]\n")
	}
	sb.WriteString("}\n")

	if len(cfg.Libraries) > 0 {
		sb.WriteString("\nlibraries: [\n")
		for _, entry := range cfg.Libraries {
			if entry.Version != "" {
				sb.WriteString(fmt.Sprintf("\t{name: %q, version: %q},\n", entry.Name, entry.Version))
			} else {
				sb.WriteString(fmt.Sprintf("\t{name: %q},\n", entry.Name))
			}
		}
		sb.WriteString("]\n")
	}

	if cfg.Hooks.PreSetup != "" || cfg.Hooks.PostSetup != "" {
		sb.WriteString("\nhooks: {\n")
		if cfg.Hooks.PreSetup != "" {
			sb.WriteString(fmt.Sprintf("\tpre_setup: %q\n", cfg.Hooks.PreSetup))
		}
		if cfg.Hooks.PostSetup != "" {
			sb.WriteString(fmt.Sprintf("\tpost_setup: %q\n", cfg.Hooks.PostSetup))
		}
		sb.WriteString("}\n")
	}

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}

func packageNamesToStrings(names []types.PackageName) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, string(n))
	}
	return out
}

func libraryEntriesToMaps(entries []LibraryEntry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		m := map[string]any{"name": string(e.Name)}
		if e.Version != "" {
			m["version"] = string(e.Version)
		}
		out = append(out, m)
	}
	return out
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"venvctl/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `venvctl config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage venvctl configuration",
		Long: `Manage venvctl configuration.

Configuration is stored in:
  - Linux: ~/.config/venvctl/config.cue
  - macOS: ~/Library/Application Support/venvctl/config.cue
  - Windows: %APPDATA%\venvctl\config.cue

A config.cue in the working directory takes precedence, and --config
overrides both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	key := CmdStyle
	value := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", key.Render("env_dir:"), value.Render(string(cfg.EnvDir)))
	fmt.Fprintf(out, "%s %s\n", key.Render("python:"), value.Render(cfg.Python))
	fmt.Fprintf(out, "%s %s\n", key.Render("entrypoint:"), value.Render(string(cfg.Entrypoint)))
	fmt.Fprintf(out, "%s %s\n", key.Render("upgrade_installer:"), value.Render(fmt.Sprintf("%t", cfg.UpgradeInstaller)))
	fmt.Fprintf(out, "%s %s\n", key.Render("system.refresh_index:"), value.Render(fmt.Sprintf("%t", cfg.System.RefreshIndex)))
	fmt.Fprintf(out, "%s %s\n", key.Render("system.install_cmd:"), value.Render(cfg.System.InstallCmd))

	fmt.Fprintln(out, key.Render("system.packages:"))
	for _, pkg := range cfg.System.Packages {
		fmt.Fprintf(out, "  - %s\n", value.Render(string(pkg)))
	}

	fmt.Fprintln(out, key.Render("libraries:"))
	for _, lib := range cfg.Libraries {
		fmt.Fprintf(out, "  - %s\n", value.Render(lib.Spec().String()))
	}
	return nil
}

func initConfig(cmd *cobra.Command) error {
	if err := config.CreateDefaultConfig(); err != nil {
		return err
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Configuration ready: ")+cfgPath)
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

package cli

import (
	"fmt"

	"github.com/glue-tools/gluefetch/pkg/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command with its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.ToYAML()
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := ""
			if ConfigPath != nil {
				path = *ConfigPath
			}
			if path == "" {
				defaultPath, err := config.GetDefaultConfigPath()
				if err != nil {
					return err
				}
				path = defaultPath
			}

			if !force && fileExists(path) {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().SaveConfig(path); err != nil {
				return err
			}
			cmd.Printf("Wrote default config to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

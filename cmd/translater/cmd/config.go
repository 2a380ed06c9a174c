package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katelkum/translater/internal/config"
)

// configCmd groups configuration utilities.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

// configInitCmd writes a config file populated with defaults.
var configInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a default configuration file",
	Long: `Write a configuration file populated with default values.

Examples:
  translater config init
  translater config init ~/.config/translater/translater.yaml`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := ""
		if len(args) == 1 {
			filename = args[0]
		}
		if err := config.GenerateDefaultConfigFile(filename); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		if filename == "" {
			filename = "translater.yaml"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", filename)
		return nil
	},
}

// configPathsCmd prints the config file search paths.
var configPathsCmd = &cobra.Command{
	Use:          "paths",
	Short:        "Show configuration search paths",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range config.GetConfigSearchPaths() {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		if used := GetConfigLoader().GetConfigFileUsed(); used != "" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nLoaded: %s\n", used)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)
}

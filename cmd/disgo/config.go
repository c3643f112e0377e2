package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

const defaultConfigFile = "disgo.yaml"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, show and check config files",
		Long: `The config file sets the exercise (exercise, site and application IDs),
the network (mode, addresses, port), logging, metrics output, capture
settings for sniff and remote sensors, and the emit profiles. Files ending
in .toml are read and written as TOML, everything else as YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

// configPathArg returns the path from --config, the first argument, or
// the default file name.
func configPathArg(flag string, args []string) string {
	if flag != "" {
		return flag
	}
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfigFile
}

func newConfigInitCmd() *cobra.Command {
	var path string
	var force bool
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a default config file",
		Example: `  disgo config init
  disgo config init lab.yaml --force
  disgo config init lab.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return app.RunConfigInit(cmd.OutOrStdout(), configPathArg(path, args), force)
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "Config file (default \"disgo.yaml\")")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print the effective config with defaults filled in",
		Long: `Print the effective config with defaults filled in. Without a file the
built-in defaults are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if path == "" && len(args) > 0 {
				path = args[0]
			}
			return app.RunConfigShow(cmd.OutOrStdout(), path)
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "Config file (default: built-in defaults)")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return app.RunConfigValidate(cmd.OutOrStdout(), configPathArg(path, args))
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "Config file (default \"disgo.yaml\")")
	return cmd
}

package commands

import "github.com/spf13/cobra"

const defaultConfigPath = "config.yaml"

type globalFlags struct {
	configPath string
	envFile    string
}

func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "tempsweep",
		Short:         "Deletes stale temp files and prunes empty folders on a schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (yaml or toml); defaults to ./config.yaml when present")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "load environment variables from this file first")

	root.AddCommand(newServeCommand(flags))
	root.AddCommand(newRunCommand(flags))
	root.AddCommand(newConfigCommand(flags))

	return root
}

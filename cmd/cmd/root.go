package cmd

import (
	"github.com/ostafen/carver/internal/env"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           env.AppName,
		Short:         env.AppName + " - signature based file carving tool",
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path of a settings file (yaml, toml or json)")
	flags.String("log-level", "info", "minimum level of console messages (debug, info, success, warn, error)")
	flags.String("log-file", "", "write a detailed log to the specified file")
	flags.Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(
		DefineCarveCommand(),
		DefineCombineCommand(),
		DefineSignaturesCommand(),
		DefineRecoverCommand(),
		DefineMountCommand(),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}

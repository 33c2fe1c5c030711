package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Заполняются через -ldflags при сборке.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "slicebread",
	Short: "Chunked file upload server",
	Long: `slicebread accepts files split into numbered chunks, stores every chunk
on the local disk and assembles the file once the last chunk arrives.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "slicebread %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tsml/cmd/tsbench/commands"
	"tsml/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tsbench",
	Short: "tsbench - time series classification pipeline bench",
	Long: `tsbench runs time series classification pipelines over synthetic
datasets and records the results.

Available commands:
  run       - Run a pipeline experiment from a TOML config
  runs      - List recorded runs
  pipelines - List built-in pipelines

Examples:
  tsbench run                      # Run the default experiment
  tsbench run -c experiment.toml   # Run a configured experiment
  tsbench runs -n 10               # Show the last 10 recorded runs`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.RunsCmd)
	rootCmd.AddCommand(commands.PipelinesCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

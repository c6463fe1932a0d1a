package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalwork/asyncgen/cmd/asyncgen/commands"
	"github.com/signalwork/asyncgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "asyncgen",
	Short: "Generate TypeScript types from AsyncAPI v3 documents",
	Long: `asyncgen compiles an AsyncAPI v3 specification into TypeScript type
declarations: one interface or alias per component schema, payload and
message-shape types per message, and per-direction union types per channel.

Available commands:
  generate - Compile a specification into a .ts declaration file
  validate - Check a specification without generating output
  version  - Print the asyncgen version

Examples:
  asyncgen generate asyncapi.yaml                 # Write types to stdout
  asyncgen generate asyncapi.yaml -o types.ts     # Write to a file
  asyncgen generate asyncapi.yaml --enum-style enum
  asyncgen validate asyncapi.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Root().PersistentFlags().GetBool("json")
		verbosity, _ := cmd.Root().PersistentFlags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit diagnostics as JSON")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

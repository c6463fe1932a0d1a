package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalwork/asyncgen/internal/version"
)

// VersionCmd prints build version metadata.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the asyncgen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("asyncgen %s (commit %s, built %s)\n",
			version.VersionTag, version.Commit, version.BuildTime)
	},
}

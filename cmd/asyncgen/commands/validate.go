package commands

import (
	"github.com/spf13/cobra"

	"github.com/signalwork/asyncgen/config"
	"github.com/signalwork/asyncgen/display"
	"github.com/signalwork/asyncgen/spec"
)

// ValidateCmd checks a specification without generating output.
var ValidateCmd = &cobra.Command{
	Use:   "validate <spec-file>",
	Short: "Validate an AsyncAPI v3 document",
	Long: `Validate an AsyncAPI v3 document without generating any output.

Validation problems are split by severity: errors fail the command,
warnings are reported but exit successfully.

Examples:
  asyncgen validate asyncapi.yaml
  asyncgen validate asyncapi.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	_, issues, err := spec.Load(args[0], cfg.Parser.MaxSpecBytes)

	if display.ShouldOutputJSON(cmd) {
		if jsonErr := display.OutputJSON(display.NewReport(issues)); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	display.PrintIssues(issues)
	if err != nil {
		return err
	}

	if warnings := spec.Warnings(issues); len(warnings) > 0 {
		display.Successf("%s is valid (%d warning(s))", args[0], len(warnings))
	} else {
		display.Successf("%s is valid", args[0])
	}
	return nil
}

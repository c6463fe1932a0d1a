// Package display renders asyncgen diagnostics for the terminal or as JSON.
//
// The compiler and extractor never print; they return typed outcomes. This
// package is the only place user-visible output is produced.
package display

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/signalwork/asyncgen/spec"
)

// ShouldOutputJSON reports whether a command should emit JSON diagnostics,
// based on the local or global --json flag.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}
	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// Report is the JSON shape of a validate/generate diagnostic run.
type Report struct {
	Valid    bool         `json:"valid"`
	Errors   []spec.Issue `json:"errors,omitempty"`
	Warnings []spec.Issue `json:"warnings,omitempty"`
}

// NewReport splits an issue set into the JSON report shape.
func NewReport(issues []spec.Issue) Report {
	return Report{
		Valid:    !spec.HasErrors(issues),
		Errors:   spec.Errors(issues),
		Warnings: spec.Warnings(issues),
	}
}

// PrintIssues writes the issue set to stderr, colored by severity.
func PrintIssues(issues []spec.Issue) {
	for _, issue := range issues {
		PrintIssue(issue)
	}
}

// PrintIssue writes one issue to stderr, colored by severity.
func PrintIssue(issue spec.Issue) {
	location := issue.Location
	if location != "" {
		location = " " + pterm.Gray(location)
	}
	switch issue.Severity {
	case spec.SeverityError:
		fmt.Fprintf(os.Stderr, "%s%s %s\n", pterm.Red("✗"), location, issue.Message)
	default:
		fmt.Fprintf(os.Stderr, "%s%s %s\n", pterm.Yellow("⚠"), location, issue.Message)
	}
}

// PrintWarning writes a plain warning line to stderr.
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", pterm.Yellow("⚠"), message)
}

// Successf writes a green success line to stdout.
func Successf(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", pterm.Green("✓"), fmt.Sprintf(format, args...))
}

// OutputJSON marshals and prints v on stdout.
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

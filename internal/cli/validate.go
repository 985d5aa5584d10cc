package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/validate"
)

// newValidateCmd creates the validate command. It checks a document
// file structurally and semantically and prints every finding. The
// command fails only on errors; warnings and infos are advisory.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a captured document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, report := newValidator().ValidateBytes(data)
	printReport(report)

	if len(report.Errors) > 0 {
		return errors.New(errors.ErrCodeInvalidDocument,
			"%s: %d validation errors", path, len(report.Errors))
	}
	if doc != nil {
		printSuccess("Document is valid")
		printStats(len(doc.Components), len(doc.Connections), false)
	}
	return nil
}

func printReport(report *validate.Report) {
	for _, issue := range report.Errors {
		printError("%s", issueLine(issue))
	}
	for _, issue := range report.Warnings {
		printWarning("%s", issueLine(issue))
	}
	for _, issue := range report.Infos {
		printInfo("%s", issueLine(issue))
	}
}

func issueLine(issue validate.Issue) string {
	if issue.Subject == "" {
		return issue.Message
	}
	return issue.Subject + ": " + issue.Message
}

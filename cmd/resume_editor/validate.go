package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/spf13/cobra"
)

var (
	validateJSON   bool
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a resume file",
	Long: `Parses a YAML resume and reports presentation issues such as malformed emails or links.
Issues are warnings unless --strict is set. With --json, FILE is a stored JSON record and
is checked against the resume schema instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Validate a JSON record against the resume schema")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail when presentation issues are found")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := args[0]

	if validateJSON {
		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		if err := schemas.ValidateDocumentJSON(data); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				_, _ = fmt.Fprint(out, validationErr.Error())
				return fmt.Errorf("validation failed: %d schema error(s)", len(validationErr.Errors))
			}
			return fmt.Errorf("failed to validate %s: %w", path, err)
		}
		_, _ = fmt.Fprintln(out, "Validation passed")
		return nil
	}

	doc, err := readDocument(cmd, path)
	if err != nil {
		return err
	}
	issues := resume.Lint(doc)

	if verbose {
		printer := observability.NewPrinter(out)
		printer.PrintDocument(doc)
		printer.PrintLintIssues(issues)
	} else {
		for _, issue := range issues {
			_, _ = fmt.Fprintf(out, "warning: %s\n", issue)
		}
	}

	if len(issues) == 0 {
		_, _ = fmt.Fprintln(out, "Validation passed")
		return nil
	}
	if validateStrict {
		return fmt.Errorf("validation found %d issue(s)", len(issues))
	}
	_, _ = fmt.Fprintf(out, "Validation passed with %d warning(s)\n", len(issues))
	return nil
}

package main

import (
	"bytes"
	"fmt"

	"github.com/jonathan/resume-editor/internal/codec"
	"github.com/spf13/cobra"
)

var fmtCheck bool

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE...",
	Short: "Rewrite resume files in canonical form",
	Long: `Parses each file and writes it back in canonical YAML: fixed key order, block style,
two-space indentation. With --check, files are left alone and the command fails if any
would change. "-" reads stdin and writes stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Report files that are not canonical instead of rewriting them")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	var unformatted []string
	for _, path := range args {
		original, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		doc, err := codec.Deserialize(original)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		formatted, err := codec.Serialize(doc)
		if err != nil {
			return fmt.Errorf("%s: failed to serialize: %w", path, err)
		}

		if bytes.Equal(original, formatted) {
			if path == stdioPath && !fmtCheck {
				if err := writeOutput(cmd, path, formatted); err != nil {
					return err
				}
			}
			continue
		}
		if fmtCheck {
			unformatted = append(unformatted, path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			continue
		}
		if err := writeOutput(cmd, path, formatted); err != nil {
			return err
		}
	}

	if len(unformatted) > 0 {
		return fmt.Errorf("%d file(s) not in canonical form", len(unformatted))
	}
	return nil
}

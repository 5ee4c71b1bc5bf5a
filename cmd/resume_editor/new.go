package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-editor/internal/codec"
	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/spf13/cobra"
)

var (
	newOutput string
	newForce  bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Write an empty resume document",
	Long:  "Writes the empty default resume as YAML, ready to fill in.",
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newOutput, "out", "o", codec.ExportFilename, `Output file ("-" for stdout)`)
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	if newOutput != stdioPath && !newForce {
		if _, err := os.Stat(newOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", newOutput)
		}
	}
	return writeDocument(cmd, newOutput, resume.New())
}

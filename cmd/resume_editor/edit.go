package main

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/spf13/cobra"
)

var (
	editOps     []string
	editOpsFile string
	editOutput  string
)

var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Apply edit operations to a resume file",
	Long: `Applies path-addressed operations to a YAML resume and writes the result back
(or to --out). Each --op is a JSON object such as
  {"op":"set","path":"basic/name","value":"Jane Doe"}
  {"op":"append","path":"experiences"}
  {"op":"move","path":"projects","from":2,"to":0}
  {"op":"convert","path":"skills/1","value":"subcategories"}
Operations apply in order; if any is malformed the file is left unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringArrayVar(&editOps, "op", nil, "Operation as a JSON object (repeatable)")
	editCmd.Flags().StringVar(&editOpsFile, "ops-file", "", "File holding a JSON array of operations")
	editCmd.Flags().StringVarP(&editOutput, "out", "o", "", `Output file (default: rewrite FILE; "-" for stdout)`)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]

	ops, err := collectOps(cmd)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return fmt.Errorf("no operations given (use --op or --ops-file)")
	}

	v := validator.New()
	for i, op := range ops {
		if err := v.Struct(op); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}

	doc, err := readDocument(cmd, path)
	if err != nil {
		return err
	}
	doc, err = editing.ApplyAll(doc, ops)
	if err != nil {
		return err
	}

	out := editOutput
	if out == "" {
		out = path
	}
	return writeDocument(cmd, out, doc)
}

func collectOps(cmd *cobra.Command) ([]editing.Op, error) {
	var ops []editing.Op
	if editOpsFile != "" {
		data, err := readInput(cmd, editOpsFile)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &ops); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", editOpsFile, err)
		}
	}
	for _, raw := range editOps {
		var op editing.Op
		if err := json.Unmarshal([]byte(raw), &op); err != nil {
			return nil, fmt.Errorf("invalid --op %q: %w", raw, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

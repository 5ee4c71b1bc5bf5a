package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-editor/internal/codec"
	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/spf13/cobra"
)

// stdioPath names standard input or output in file arguments.
const stdioPath = "-"

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdioPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// readDocument parses a YAML resume file. Parse errors are returned as
// *codec.ParseError.
func readDocument(cmd *cobra.Command, path string) (resume.Document, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return resume.Document{}, err
	}
	doc, err := codec.Deserialize(data)
	if err != nil {
		return resume.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == stdioPath {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeDocument(cmd *cobra.Command, path string, doc resume.Document) error {
	data, err := codec.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize resume: %w", err)
	}
	return writeOutput(cmd, path, data)
}

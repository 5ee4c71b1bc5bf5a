package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	renderFormats       []string
	renderOutDir        string
	renderLocation      string
	renderOmitObjective bool
)

// renderExtensions maps each format to the extension of its output file.
var renderExtensions = map[string]string{
	"text": "txt",
	"html": "html",
	"tex":  "tex",
	"pdf":  "pdf",
}

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a resume file",
	Long: `Renders a YAML resume to one or more formats concurrently. Outputs are written to
--out-dir as resume.<ext>; with --out-dir - a single text format is written to stdout.
PDF output needs a local Chrome (CHROME_PATH or on PATH).`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringSliceVarP(&renderFormats, "format", "f", []string{"html"}, "Comma-separated formats: text, html, tex, pdf")
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "o", ".", `Directory for output files ("-" for stdout)`)
	renderCmd.Flags().StringVar(&renderLocation, "location", "", "Location appended to the contact line (default from config)")
	renderCmd.Flags().BoolVar(&renderOmitObjective, "omit-objective", false, "Leave out the objective section")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	formats, err := parseFormats(renderFormats)
	if err != nil {
		return err
	}
	toStdout := renderOutDir == stdioPath
	if toStdout && (len(formats) != 1 || formats[0] == "pdf") {
		return fmt.Errorf("--out-dir - needs exactly one text format")
	}

	doc, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}

	opts := rendering.Options{LocationOverride: cfg.Location}
	if renderLocation != "" {
		opts.LocationOverride = renderLocation
	}
	var includeObjective *bool
	switch {
	case cmd.Flags().Changed("omit-objective"):
		include := !renderOmitObjective
		includeObjective = &include
	case cfg.OmitObjective:
		include := false
		includeObjective = &include
	}
	opts.OmitObjective = !resume.IncludeObjective(includeObjective, doc)

	layout := rendering.Render(doc, opts)
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if cfg.Verbose {
		printer.PrintLayout(layout)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if toStdout {
		out, err := renderFormat(ctx, formats[0], layout, nil)
		if err != nil {
			return err
		}
		return writeOutput(cmd, stdioPath, out)
	}

	if err := os.MkdirAll(renderOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var pdf *rendering.ChromePDF
	for _, f := range formats {
		if f == "pdf" {
			pdf = rendering.NewChromePDF(cfg.ChromePath, cfg.Verbose)
			if cfg.PDFTimeoutSeconds > 0 {
				pdf.Timeout = time.Duration(cfg.PDFTimeoutSeconds) * time.Second
			}
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	outputs := make(map[string]int, len(formats))
	var mu sync.Mutex
	for _, format := range formats {
		g.Go(func() error {
			data, err := renderFormat(gCtx, format, layout, pdf)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			path := filepath.Join(renderOutDir, "resume."+renderExtensions[format])
			if err := writeOutput(cmd, path, data); err != nil {
				return err
			}
			mu.Lock()
			outputs[path] = len(data)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintOutputs(outputs)
	}
	for _, format := range formats {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filepath.Join(renderOutDir, "resume."+renderExtensions[format]))
	}
	return nil
}

// parseFormats normalizes and de-duplicates the requested formats,
// preserving their order.
func parseFormats(requested []string) ([]string, error) {
	seen := make(map[string]bool, len(requested))
	formats := make([]string, 0, len(requested))
	for _, f := range requested {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "txt" {
			f = "text"
		}
		if _, ok := renderExtensions[f]; !ok {
			return nil, fmt.Errorf("unsupported format %q (want text, html, tex, or pdf)", f)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no output format given")
	}
	return formats, nil
}

func renderFormat(ctx context.Context, format string, layout rendering.Layout, pdf *rendering.ChromePDF) ([]byte, error) {
	switch format {
	case "text":
		return []byte(rendering.Text(layout)), nil
	case "html":
		html, err := rendering.HTML(layout)
		return []byte(html), err
	case "tex":
		tex, err := rendering.LaTeX(layout)
		return []byte(tex), err
	case "pdf":
		html, err := rendering.HTML(layout)
		if err != nil {
			return nil, err
		}
		return pdf.RenderPDF(ctx, html)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

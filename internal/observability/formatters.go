// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/resume"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	inner := boxWidth - 4
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to n runes. fmt's width counts bytes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// PrintDocument outputs a section-by-section summary of a resume document.
func (p *Printer) PrintDocument(d resume.Document) {
	var sb strings.Builder

	name := d.Basic.Name
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Name:        %s\n", name))
	sb.WriteString(fmt.Sprintf("Objective:   %s\n", yesNo(resume.HasObjective(d))))
	sb.WriteString(fmt.Sprintf("Education:   %d schools\n", len(d.Education)))
	sb.WriteString(fmt.Sprintf("Experience:  %d entries\n", len(d.Experiences)))
	sb.WriteString(fmt.Sprintf("Projects:    %d entries\n", len(d.Projects)))
	sb.WriteString(fmt.Sprintf("Skills:      %d categories\n", len(d.Skills)))

	if len(d.Experiences) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(d.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := d.Experiences[i]
			line := exp.Company
			if len(exp.Titles) > 0 && exp.Titles[0].Name != "" {
				line += " - " + exp.Titles[0].Name
			}
			sb.WriteString(fmt.Sprintf("  • %s (%d highlights)\n", line, len(exp.Highlights)))
		}
		if len(d.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(d.Experiences)-maxItemsToShow))
		}
	}

	if len(d.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(d.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := d.Skills[i]
			shape := "empty"
			switch s := c.Shape.(type) {
			case resume.FlatSkills:
				shape = fmt.Sprintf("%d skills", len(s.Skills))
			case resume.Subcategories:
				shape = fmt.Sprintf("%d subcategories", len(s.Subcategories))
			}
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", c.Category, shape))
		}
		if len(d.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(d.Skills)-maxItemsToShow))
		}
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLayout outputs the sections a render produced.
func (p *Printer) PrintLayout(l rendering.Layout) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Header:   %s\n", l.Header.Name))
	if l.Header.Contact != "" {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", l.Header.Contact))
	}
	sb.WriteString("\n")

	if len(l.Sections) == 0 {
		sb.WriteString("No sections rendered\n")
	}
	for _, s := range l.Sections {
		lines := 0
		for _, b := range s.Blocks {
			lines += len(b.Lines)
		}
		sb.WriteString(fmt.Sprintf("%-12s %d blocks, %d lines\n", s.Title, len(s.Blocks), lines))
	}

	p.printBox("RENDERED LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLintIssues outputs presentation issues found in a document.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLintIssues(issues []resume.Issue) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO ISSUES FOUND", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(issues)))
	for i, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", issue.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", issue.Message))
		if i < len(issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PRESENTATION ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutputs lists the files written by a render.
func (p *Printer) PrintOutputs(outputs map[string]int) {
	if len(outputs) == 0 {
		return
	}

	var sb strings.Builder
	for _, path := range sortedKeys(outputs) {
		sb.WriteString(fmt.Sprintf("%s (%d bytes)\n", path, outputs[path]))
	}
	p.printBox("OUTPUTS", strings.TrimSuffix(sb.String(), "\n"))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

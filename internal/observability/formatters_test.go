package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/stretchr/testify/assert"
)

func sampleDocument() resume.Document {
	d := resume.New()
	d.Basic.Name = "Jane Doe"
	d.Basic.Email = "jane@x.com"
	d.Objective = "Build things"
	d.Experiences = []resume.Experience{{
		Company:    "Acme",
		Titles:     []resume.Title{{Name: "Engineer"}},
		Highlights: []string{"Built X", "Shipped Y"},
	}}
	d.Skills = []resume.SkillCategory{
		{Category: "Languages", Shape: resume.FlatSkills{Skills: []string{"Go", "SQL"}}},
		{Category: "Tech", Shape: resume.Subcategories{Subcategories: []resume.Subcategory{{Name: "Cloud"}}}},
		{Category: "Blank"},
	}
	return d
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(sampleDocument())
	output := buf.String()

	assert.Contains(t, output, "RESUME DOCUMENT")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Objective:   yes")
	assert.Contains(t, output, "Acme - Engineer (2 highlights)")
	assert.Contains(t, output, "Languages [2 skills]")
	assert.Contains(t, output, "Tech [1 subcategories]")
	assert.Contains(t, output, "Blank [empty]")
}

func TestPrintDocument_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(resume.New())

	output := buf.String()
	assert.Contains(t, output, "(unnamed)")
	assert.Contains(t, output, "Objective:   no")
	assert.NotContains(t, output, "Experience:\n")
}

func TestPrintDocument_ManyExperiences(t *testing.T) {
	d := resume.New()
	for i := 0; i < 8; i++ {
		d.Experiences = append(d.Experiences, resume.Experience{Company: "Co"})
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(d)
	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	l := rendering.Render(sampleDocument(), rendering.Options{})
	NewPrinter(&buf).PrintLayout(l)

	output := buf.String()
	assert.Contains(t, output, "RENDERED LAYOUT")
	assert.Contains(t, output, "Contact:  jane@x.com")
	assert.Contains(t, output, "Objective")
	assert.Contains(t, output, "Experience   1 blocks, 4 lines")
}

func TestPrintLayout_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintLayout(rendering.Layout{})
	assert.Contains(t, buf.String(), "No sections rendered")
}

func TestPrintLintIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLintIssues(nil)
	assert.Contains(t, buf.String(), "NO ISSUES FOUND")

	buf.Reset()
	p.PrintLintIssues([]resume.Issue{{Field: "basic.email", Message: "must be a valid email address"}})
	output := buf.String()
	assert.Contains(t, output, "PRESENTATION ISSUES")
	assert.Contains(t, output, "basic.email")
	assert.Contains(t, output, "must be a valid email address")
}

func TestPrintOutputs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOutputs(nil)
	assert.Empty(t, buf.String())

	p.PrintOutputs(map[string]int{"out/resume.txt": 10, "out/resume.html": 200})
	output := buf.String()
	assert.Less(t, strings.Index(output, "resume.html"), strings.Index(output, "resume.txt"))
	assert.Contains(t, output, "out/resume.html (200 bytes)")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("TITLE", "short\n• bullet with a multibyte rune\n"+strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

// Package rendering maps resume documents to a layout tree and prints that
// tree as plain text, HTML, LaTeX, or PDF.
package rendering

import (
	"strings"

	"github.com/jonathan/resume-editor/internal/resume"
)

// ContactSeparator joins the items of the header contact line.
const ContactSeparator = " | "

// Bullet prefixes highlight lines in the plain-text form.
const Bullet = "• "

// SectionKind identifies a rendered section.
type SectionKind string

const (
	SectionObjective  SectionKind = "objective"
	SectionExperience SectionKind = "experience"
	SectionProjects   SectionKind = "projects"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
)

// Layout is the device-independent form of a rendered resume.
type Layout struct {
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
}

// Header holds the name and contact line.
type Header struct {
	Name         string   `json:"name"`
	Contact      string   `json:"contact"`
	ContactItems []string `json:"contactItems"`
}

// Section is a titled group of blocks.
type Section struct {
	Kind   SectionKind `json:"kind"`
	Title  string      `json:"title"`
	Blocks []Block     `json:"blocks"`
}

// Block groups the lines that describe one item, such as one experience.
type Block struct {
	Lines []Line `json:"lines"`
}

// Line is a row with left-aligned spans and optional right-aligned text.
// Bullet lines carry a single highlight.
type Line struct {
	Left   []Span `json:"left"`
	Right  string `json:"right,omitempty"`
	Bullet bool   `json:"bullet,omitempty"`
}

// Span is a run of text with inline styling.
type Span struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Options are inputs to rendering that live outside the document.
type Options struct {
	// LocationOverride comes from the user's profile and is appended to the
	// contact line when non-empty.
	LocationOverride string `json:"locationOverride"`
	OmitObjective    bool   `json:"omitObjective"`
}

// Text returns the concatenated text of the left spans.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Left {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Render builds the layout for d. It is pure: equal inputs give equal layouts,
// and missing optional content is omitted rather than reported.
func Render(d resume.Document, opts Options) Layout {
	layout := Layout{
		Header: renderHeader(d.Basic, opts.LocationOverride),
	}

	if !opts.OmitObjective {
		if s, ok := objectiveSection(d.Objective); ok {
			layout.Sections = append(layout.Sections, s)
		}
	}
	for _, build := range []func(resume.Document) (Section, bool){
		experienceSection,
		projectsSection,
		educationSection,
		skillsSection,
	} {
		if s, ok := build(d); ok {
			layout.Sections = append(layout.Sections, s)
		}
	}
	return layout
}

func renderHeader(b resume.Basic, location string) Header {
	items := make([]string, 0, 3+len(b.Websites))
	for _, v := range append([]string{b.Email, b.Phone, location}, b.Websites...) {
		if v = strings.TrimSpace(v); v != "" {
			items = append(items, v)
		}
	}
	return Header{
		Name:         b.Name,
		Contact:      strings.Join(items, ContactSeparator),
		ContactItems: items,
	}
}

func objectiveSection(objective string) (Section, bool) {
	objective = strings.TrimSpace(objective)
	if objective == "" {
		return Section{}, false
	}
	return Section{
		Kind:   SectionObjective,
		Title:  "Objective",
		Blocks: []Block{{Lines: []Line{{Left: []Span{{Text: objective}}}}}},
	}, true
}

func experienceSection(d resume.Document) (Section, bool) {
	if len(d.Experiences) == 0 {
		return Section{}, false
	}
	s := Section{Kind: SectionExperience, Title: "Experience"}
	for _, exp := range d.Experiences {
		// Only the first title is shown.
		var title resume.Title
		if len(exp.Titles) > 0 {
			title = exp.Titles[0]
		}
		block := Block{Lines: []Line{
			{Left: []Span{{Text: exp.Company, Bold: true}}, Right: DateRange(title.StartDate, title.EndDate)},
			{Left: []Span{{Text: title.Name, Italic: true}}, Right: exp.Location},
		}}
		block.Lines = append(block.Lines, bulletLines(exp.Highlights)...)
		s.Blocks = append(s.Blocks, block)
	}
	return s, true
}

func projectsSection(d resume.Document) (Section, bool) {
	if len(d.Projects) == 0 {
		return Section{}, false
	}
	s := Section{Kind: SectionProjects, Title: "Projects"}
	for _, p := range d.Projects {
		head := Line{Left: []Span{{Text: p.Name, Bold: true, Link: strings.TrimSpace(p.Link)}}}
		if tech := strings.TrimSpace(p.Technologies); tech != "" {
			head.Left = append(head.Left, Span{Text: " (" + tech + ")"})
		}
		block := Block{Lines: append([]Line{head}, bulletLines(p.Highlights)...)}
		s.Blocks = append(s.Blocks, block)
	}
	return s, true
}

func educationSection(d resume.Document) (Section, bool) {
	if len(d.Education) == 0 {
		return Section{}, false
	}
	s := Section{Kind: SectionEducation, Title: "Education"}
	for _, school := range d.Education {
		// Only the first degree is shown.
		var degree resume.Degree
		if len(school.Degrees) > 0 {
			degree = school.Degrees[0]
		}
		spans := []Span{{Text: school.School, Bold: true}}
		if names := joinNonEmpty(degree.Names, ", "); names != "" {
			spans = append(spans, Span{Text: ", " + names})
		}
		if gpa := strings.TrimSpace(degree.GPA); gpa != "" {
			spans = append(spans, Span{Text: " (" + gpa + ")"})
		}
		s.Blocks = append(s.Blocks, Block{Lines: []Line{{Left: spans, Right: degree.Dates}}})
	}
	return s, true
}

func skillsSection(d resume.Document) (Section, bool) {
	if len(d.Skills) == 0 {
		return Section{}, false
	}
	s := Section{Kind: SectionSkills, Title: "Skills"}
	for _, c := range d.Skills {
		var lines []Line
		switch shape := c.Shape.(type) {
		case resume.FlatSkills:
			lines = append(lines, skillLine(c.Category, shape.Skills))
		case resume.Subcategories:
			for _, sub := range shape.Subcategories {
				lines = append(lines, skillLine(sub.Name, sub.Skills))
			}
		}
		if len(lines) > 0 {
			s.Blocks = append(s.Blocks, Block{Lines: lines})
		}
	}
	return s, len(s.Blocks) > 0
}

func skillLine(label string, skills []string) Line {
	return Line{Left: []Span{
		{Text: label + ":", Bold: true},
		{Text: " " + joinNonEmpty(skills, ", ")},
	}}
}

func bulletLines(highlights []string) []Line {
	lines := make([]Line, 0, len(highlights))
	for _, h := range highlights {
		lines = append(lines, Line{Left: []Span{{Text: h}}, Bullet: true})
	}
	return lines
}

// DateRange formats a start/end pair as "start - end", or whichever side is
// present.
func DateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func joinNonEmpty(items []string, sep string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	return strings.Join(kept, sep)
}

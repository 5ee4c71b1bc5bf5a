package rendering

import (
	"testing"

	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioDocument() resume.Document {
	d := resume.New()
	d.Basic.Name = "Jane Doe"
	d.Basic.Email = "jane@x.com"
	d.Basic.Websites = []string{"https://jane.dev"}
	d.Experiences = []resume.Experience{{
		Company:    "Acme",
		Location:   "Remote",
		Titles:     []resume.Title{{Name: "Engineer", StartDate: "2022", EndDate: "Present"}},
		Highlights: []string{"Built X"},
	}}
	return d
}

func fullDocument() resume.Document {
	d := scenarioDocument()
	d.Basic.Phone = "555-0100"
	d.Objective = "  Build reliable systems.  "
	d.Experiences[0].Titles = append(d.Experiences[0].Titles, resume.Title{Name: "Intern", StartDate: "2021"})
	d.Projects = []resume.Project{
		{Name: "site", Technologies: "Go", Link: "https://jane.dev/site", Highlights: []string{"Fast"}},
		{Name: "tool", Highlights: []string{}},
	}
	d.Education = []resume.School{{
		School: "MIT",
		Degrees: []resume.Degree{
			{Names: []string{"B.S. CS", "B.S. Math"}, GPA: "3.9", Dates: "2018"},
			{Names: []string{"M.S."}, Dates: "2020"},
		},
	}}
	d.Skills = []resume.SkillCategory{
		{Category: "Languages", Shape: resume.FlatSkills{Skills: []string{"Go", "SQL"}}},
		{Category: "Tech", Shape: resume.Subcategories{Subcategories: []resume.Subcategory{
			{Name: "Cloud", Skills: []string{"AWS", "GCP"}},
			{Name: "DB", Skills: []string{"Postgres"}},
		}}},
		{Category: "Nothing"},
	}
	return d
}

func sectionKinds(l Layout) []SectionKind {
	kinds := make([]SectionKind, 0, len(l.Sections))
	for _, s := range l.Sections {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

func TestRender_Scenario(t *testing.T) {
	l := Render(scenarioDocument(), Options{})

	assert.Equal(t, "Jane Doe", l.Header.Name)
	assert.Equal(t, "jane@x.com | https://jane.dev", l.Header.Contact)

	require.Len(t, l.Sections, 1)
	exp := l.Sections[0]
	assert.Equal(t, SectionExperience, exp.Kind)
	require.Len(t, exp.Blocks, 1)

	lines := exp.Blocks[0].Lines
	require.Len(t, lines, 3)
	assert.Equal(t, "Acme", lines[0].Text())
	assert.Equal(t, "2022 - Present", lines[0].Right)
	assert.Equal(t, "Engineer", lines[1].Text())
	assert.Equal(t, "Remote", lines[1].Right)
	assert.True(t, lines[2].Bullet)
	assert.Equal(t, "Built X", lines[2].Text())
}

func TestRender_ObjectiveOmission(t *testing.T) {
	d := resume.New()
	assert.Empty(t, Render(d, Options{}).Sections)

	d.Objective = "   "
	assert.Empty(t, Render(d, Options{}).Sections)

	d.Objective = "Ship things"
	l := Render(d, Options{})
	require.Len(t, l.Sections, 1)
	assert.Equal(t, SectionObjective, l.Sections[0].Kind)
	assert.Equal(t, "Ship things", l.Sections[0].Blocks[0].Lines[0].Text())
	assert.False(t, l.Sections[0].Blocks[0].Lines[0].Bullet)

	assert.Empty(t, Render(d, Options{OmitObjective: true}).Sections)
}

func TestRender_SectionOrder(t *testing.T) {
	l := Render(fullDocument(), Options{})
	assert.Equal(t, []SectionKind{
		SectionObjective, SectionExperience, SectionProjects, SectionEducation, SectionSkills,
	}, sectionKinds(l))
}

func TestRender_ContactLine(t *testing.T) {
	tests := []struct {
		name     string
		basic    resume.Basic
		location string
		want     string
	}{
		{
			name:  "all empty",
			basic: resume.Basic{Websites: []string{""}},
			want:  "",
		},
		{
			name:     "order with location",
			basic:    resume.Basic{Email: "a@b.c", Phone: "555", Websites: []string{"x.dev", "", "y.dev"}},
			location: "Seattle, WA",
			want:     "a@b.c | 555 | Seattle, WA | x.dev | y.dev",
		},
		{
			name:  "address is not in contact line",
			basic: resume.Basic{Address: "1 Main St", Phone: "555"},
			want:  "555",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resume.New()
			d.Basic = tt.basic
			h := Render(d, Options{LocationOverride: tt.location}).Header
			assert.Equal(t, tt.want, h.Contact)
		})
	}
}

func TestRender_OnlyFirstTitleAndDegree(t *testing.T) {
	l := Render(fullDocument(), Options{})

	exp := l.Sections[1].Blocks[0].Lines
	assert.Equal(t, "Engineer", exp[1].Text())
	for _, line := range exp {
		assert.NotContains(t, line.Text(), "Intern")
	}

	edu := l.Sections[3].Blocks
	require.Len(t, edu, 1)
	require.Len(t, edu[0].Lines, 1)
	assert.Equal(t, "MIT, B.S. CS, B.S. Math (3.9)", edu[0].Lines[0].Text())
	assert.Equal(t, "2018", edu[0].Lines[0].Right)
}

func TestRender_Projects(t *testing.T) {
	l := Render(fullDocument(), Options{})
	blocks := l.Sections[2].Blocks
	require.Len(t, blocks, 2)

	head := blocks[0].Lines[0]
	assert.Equal(t, "site (Go)", head.Text())
	assert.Equal(t, "https://jane.dev/site", head.Left[0].Link)
	assert.True(t, head.Left[0].Bold)
	require.Len(t, blocks[0].Lines, 2)
	assert.True(t, blocks[0].Lines[1].Bullet)

	plain := blocks[1].Lines[0]
	assert.Equal(t, "tool", plain.Text())
	assert.Empty(t, plain.Left[0].Link)
	assert.Len(t, blocks[1].Lines, 1)
}

func TestRender_Skills(t *testing.T) {
	l := Render(fullDocument(), Options{})
	blocks := l.Sections[4].Blocks

	require.Len(t, blocks, 2, "category with no shape renders nothing")
	require.Len(t, blocks[0].Lines, 1)
	assert.Equal(t, "Languages: Go, SQL", blocks[0].Lines[0].Text())
	require.Len(t, blocks[1].Lines, 2)
	assert.Equal(t, "Cloud: AWS, GCP", blocks[1].Lines[0].Text())
	assert.Equal(t, "DB: Postgres", blocks[1].Lines[1].Text())
}

func TestRender_SkillsWithOnlyShapelessCategories(t *testing.T) {
	d := resume.New()
	d.Skills = []resume.SkillCategory{{Category: "x"}}
	assert.Empty(t, Render(d, Options{}).Sections)
}

func TestRender_MissingTitleAndDegree(t *testing.T) {
	d := resume.New()
	d.Experiences = []resume.Experience{{Company: "Solo"}}
	d.Education = []resume.School{{School: "Self-taught"}}

	l := Render(d, Options{})
	require.Len(t, l.Sections, 2)
	assert.Equal(t, "Solo", l.Sections[0].Blocks[0].Lines[0].Text())
	assert.Empty(t, l.Sections[0].Blocks[0].Lines[0].Right)
	assert.Equal(t, "Self-taught", l.Sections[1].Blocks[0].Lines[0].Text())
}

func TestRender_Deterministic(t *testing.T) {
	a := Render(fullDocument(), Options{LocationOverride: "NYC"})
	b := Render(fullDocument(), Options{LocationOverride: "NYC"})
	assert.Equal(t, a, b)
	assert.Equal(t, Text(a), Text(b))
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2020 - 2021", DateRange("2020", "2021"))
	assert.Equal(t, "2020", DateRange("2020", ""))
	assert.Equal(t, "Present", DateRange(" ", "Present"))
	assert.Equal(t, "", DateRange("", ""))
}

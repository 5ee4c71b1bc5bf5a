// Package resume defines the structured resume document edited, serialized, and rendered by the editor.
package resume

// Document is the full nested resume record.
type Document struct {
	Basic       Basic           `json:"basic" yaml:"basic"`
	Objective   string          `json:"objective" yaml:"objective"`
	Education   []School        `json:"education" yaml:"education"`
	Experiences []Experience    `json:"experiences" yaml:"experiences"`
	Projects    []Project       `json:"projects" yaml:"projects" validate:"dive"`
	Skills      []SkillCategory `json:"skills" yaml:"skills"`
}

// Basic holds the header contact information.
type Basic struct {
	Name     string   `json:"name" yaml:"name"`
	Address  string   `json:"address" yaml:"address"`
	Email    string   `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone    string   `json:"phone" yaml:"phone"`
	Websites []string `json:"websites" yaml:"websites"`
}

// School is one education entry with its degrees.
type School struct {
	School  string   `json:"school" yaml:"school"`
	Degrees []Degree `json:"degrees" yaml:"degrees"`
}

// Degree is one degree earned at a school.
type Degree struct {
	Names []string `json:"names" yaml:"names"`
	GPA   string   `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	Dates string   `json:"dates" yaml:"dates"`
}

// Experience is one job held at a company.
type Experience struct {
	Company    string   `json:"company" yaml:"company"`
	Location   string   `json:"location" yaml:"location"`
	SkipName   bool     `json:"skip_name" yaml:"skip_name"`
	Titles     []Title  `json:"titles" yaml:"titles"`
	Highlights []string `json:"highlights" yaml:"highlights"`
}

// Title is a role held within an experience. Dates are free text.
type Title struct {
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"startdate" yaml:"startdate"`
	EndDate   string `json:"enddate" yaml:"enddate"`
}

// Project is a side project or portfolio entry.
type Project struct {
	Name         string   `json:"name" yaml:"name"`
	Technologies string   `json:"technologies" yaml:"technologies"`
	Link         string   `json:"link,omitempty" yaml:"link,omitempty" validate:"omitempty,url"`
	Hyperlink    bool     `json:"hyperlink" yaml:"hyperlink"`
	ShowLink     bool     `json:"show_link" yaml:"show_link"`
	Highlights   []string `json:"highlights" yaml:"highlights"`
}

// New returns the empty default document. Every list is empty except
// basic.websites, which holds one empty entry so edit forms stay stable.
func New() Document {
	return Document{
		Basic: Basic{
			Websites: []string{""},
		},
		Education:   []School{},
		Experiences: []Experience{},
		Projects:    []Project{},
		Skills:      []SkillCategory{},
	}
}

// NewSchool returns a school with one default degree.
func NewSchool() School {
	return School{Degrees: []Degree{NewDegree()}}
}

// NewDegree returns a degree with one empty name.
func NewDegree() Degree {
	return Degree{Names: []string{""}}
}

// NewExperience returns an experience with one default title and one empty highlight.
func NewExperience() Experience {
	return Experience{
		Titles:     []Title{NewTitle()},
		Highlights: []string{""},
	}
}

// NewTitle returns an empty title.
func NewTitle() Title {
	return Title{}
}

// NewProject returns a project with one empty highlight.
func NewProject() Project {
	return Project{Highlights: []string{""}}
}

// NewSkillCategory returns a flat category with one empty skill.
func NewSkillCategory() SkillCategory {
	return SkillCategory{Shape: FlatSkills{Skills: []string{""}}}
}

// NewSubcategory returns a subcategory with one empty skill.
func NewSubcategory() Subcategory {
	return Subcategory{Skills: []string{""}}
}

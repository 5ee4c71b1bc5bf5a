package resume

import (
	"reflect"
	"strings"
)

// Normalize returns a copy of d in canonical form: absent lists become empty
// lists and basic.websites holds at least one entry. The input is not modified.
func Normalize(d Document) Document {
	out := d
	out.Basic.Websites = strs(d.Basic.Websites)
	if len(out.Basic.Websites) == 0 {
		out.Basic.Websites = []string{""}
	}

	out.Education = make([]School, len(d.Education))
	for i, school := range d.Education {
		degrees := make([]Degree, len(school.Degrees))
		for j, degree := range school.Degrees {
			degree.Names = strs(degree.Names)
			degrees[j] = degree
		}
		school.Degrees = degrees
		out.Education[i] = school
	}

	out.Experiences = make([]Experience, len(d.Experiences))
	for i, exp := range d.Experiences {
		exp.Titles = append([]Title{}, exp.Titles...)
		exp.Highlights = strs(exp.Highlights)
		out.Experiences[i] = exp
	}

	out.Projects = make([]Project, len(d.Projects))
	for i, proj := range d.Projects {
		proj.Highlights = strs(proj.Highlights)
		out.Projects[i] = proj
	}

	out.Skills = make([]SkillCategory, len(d.Skills))
	for i, cat := range d.Skills {
		switch shape := cat.Shape.(type) {
		case FlatSkills:
			cat.Shape = FlatSkills{Skills: strs(shape.Skills)}
		case Subcategories:
			subs := make([]Subcategory, len(shape.Subcategories))
			for j, sub := range shape.Subcategories {
				sub.Skills = strs(sub.Skills)
				subs[j] = sub
			}
			cat.Shape = Subcategories{Subcategories: subs}
		}
		out.Skills[i] = cat
	}
	return out
}

func strs(s []string) []string {
	return append([]string{}, s...)
}

// Equal reports whether two documents are structurally equal, treating
// absent and empty lists alike.
func Equal(a, b Document) bool {
	return reflect.DeepEqual(Normalize(a), Normalize(b))
}

// defaultIncludeObjective applies when there is no preference and no
// objective text to detect.
const defaultIncludeObjective = true

// IncludeObjective resolves whether the objective section is shown: an explicit
// user preference wins, then a non-empty objective is detected, then the
// default applies. The renderer still drops a blank objective.
func IncludeObjective(pref *bool, d Document) bool {
	if pref != nil {
		return *pref
	}
	if HasObjective(d) {
		return true
	}
	return defaultIncludeObjective
}

// HasObjective reports whether the objective has visible text.
func HasObjective(d Document) bool {
	return strings.TrimSpace(d.Objective) != ""
}

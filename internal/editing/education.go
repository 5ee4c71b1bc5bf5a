package editing

import "github.com/jonathan/resume-editor/internal/resume"

// DegreeField names a scalar field of a degree.
type DegreeField string

// Degree fields.
const (
	DegreeGPA   DegreeField = "gpa"
	DegreeDates DegreeField = "dates"
)

func updateSchool(d resume.Document, i int, fn func(resume.School) resume.School) resume.Document {
	education, ok := updateAt(d.Education, i, fn)
	if !ok {
		return d
	}
	d.Education = education
	return d
}

func updateDegree(d resume.Document, i, j int, fn func(resume.Degree) resume.Degree) resume.Document {
	if !inRange(i, len(d.Education)) || !inRange(j, len(d.Education[i].Degrees)) {
		return d
	}
	return updateSchool(d, i, func(s resume.School) resume.School {
		s.Degrees, _ = updateAt(s.Degrees, j, fn)
		return s
	})
}

// AddSchool appends a default school.
func AddSchool(d resume.Document) resume.Document {
	d.Education = appendItem(d.Education, resume.NewSchool())
	return d
}

// RemoveSchool removes the school at i.
func RemoveSchool(d resume.Document, i int) resume.Document {
	education, ok := removeAt(d.Education, i)
	if !ok {
		return d
	}
	d.Education = education
	return d
}

// MoveSchool reorders schools.
func MoveSchool(d resume.Document, from, to int) resume.Document {
	education, ok := moveItem(d.Education, from, to)
	if !ok {
		return d
	}
	d.Education = education
	return d
}

// SetSchoolName replaces the name of school i.
func SetSchoolName(d resume.Document, i int, value string) resume.Document {
	return updateSchool(d, i, func(s resume.School) resume.School {
		s.School = value
		return s
	})
}

// AddDegree appends a default degree to school i.
func AddDegree(d resume.Document, i int) resume.Document {
	return updateSchool(d, i, func(s resume.School) resume.School {
		s.Degrees = appendItem(s.Degrees, resume.NewDegree())
		return s
	})
}

// RemoveDegree removes degree j from school i.
func RemoveDegree(d resume.Document, i, j int) resume.Document {
	if !inRange(i, len(d.Education)) || !inRange(j, len(d.Education[i].Degrees)) {
		return d
	}
	return updateSchool(d, i, func(s resume.School) resume.School {
		s.Degrees, _ = removeAt(s.Degrees, j)
		return s
	})
}

// MoveDegree reorders the degrees of school i.
func MoveDegree(d resume.Document, i, from, to int) resume.Document {
	if !inRange(i, len(d.Education)) {
		return d
	}
	degrees, ok := moveItem(d.Education[i].Degrees, from, to)
	if !ok {
		return d
	}
	return updateSchool(d, i, func(s resume.School) resume.School {
		s.Degrees = degrees
		return s
	})
}

// SetDegreeField replaces a scalar field of degree j in school i.
func SetDegreeField(d resume.Document, i, j int, field DegreeField, value string) resume.Document {
	switch field {
	case DegreeGPA, DegreeDates:
	default:
		return d
	}
	return updateDegree(d, i, j, func(deg resume.Degree) resume.Degree {
		if field == DegreeGPA {
			deg.GPA = value
		} else {
			deg.Dates = value
		}
		return deg
	})
}

// SetDegreeName replaces name k of degree j in school i.
func SetDegreeName(d resume.Document, i, j, k int, value string) resume.Document {
	if !inRange(i, len(d.Education)) || !inRange(j, len(d.Education[i].Degrees)) ||
		!inRange(k, len(d.Education[i].Degrees[j].Names)) {
		return d
	}
	return updateDegree(d, i, j, func(deg resume.Degree) resume.Degree {
		deg.Names, _ = setAt(deg.Names, k, value)
		return deg
	})
}

// AddDegreeName appends an empty name to degree j in school i.
func AddDegreeName(d resume.Document, i, j int) resume.Document {
	return updateDegree(d, i, j, func(deg resume.Degree) resume.Degree {
		deg.Names = appendItem(deg.Names, "")
		return deg
	})
}

// RemoveDegreeName removes name k from degree j in school i.
func RemoveDegreeName(d resume.Document, i, j, k int) resume.Document {
	if !inRange(i, len(d.Education)) || !inRange(j, len(d.Education[i].Degrees)) ||
		!inRange(k, len(d.Education[i].Degrees[j].Names)) {
		return d
	}
	return updateDegree(d, i, j, func(deg resume.Degree) resume.Degree {
		deg.Names, _ = removeAt(deg.Names, k)
		return deg
	})
}

// MoveDegreeName reorders the names of degree j in school i.
func MoveDegreeName(d resume.Document, i, j, from, to int) resume.Document {
	if !inRange(i, len(d.Education)) || !inRange(j, len(d.Education[i].Degrees)) {
		return d
	}
	names, ok := moveItem(d.Education[i].Degrees[j].Names, from, to)
	if !ok {
		return d
	}
	return updateDegree(d, i, j, func(deg resume.Degree) resume.Degree {
		deg.Names = names
		return deg
	})
}

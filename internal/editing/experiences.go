package editing

import "github.com/jonathan/resume-editor/internal/resume"

// ExperienceField names a scalar string field of an experience.
type ExperienceField string

// Experience fields.
const (
	ExperienceCompany  ExperienceField = "company"
	ExperienceLocation ExperienceField = "location"
)

// TitleField names a scalar field of a title.
type TitleField string

// Title fields.
const (
	TitleName      TitleField = "name"
	TitleStartDate TitleField = "startdate"
	TitleEndDate   TitleField = "enddate"
)

func updateExperience(d resume.Document, i int, fn func(resume.Experience) resume.Experience) resume.Document {
	experiences, ok := updateAt(d.Experiences, i, fn)
	if !ok {
		return d
	}
	d.Experiences = experiences
	return d
}

// AddExperience appends a default experience.
func AddExperience(d resume.Document) resume.Document {
	d.Experiences = appendItem(d.Experiences, resume.NewExperience())
	return d
}

// RemoveExperience removes the experience at i.
func RemoveExperience(d resume.Document, i int) resume.Document {
	experiences, ok := removeAt(d.Experiences, i)
	if !ok {
		return d
	}
	d.Experiences = experiences
	return d
}

// MoveExperience reorders experiences.
func MoveExperience(d resume.Document, from, to int) resume.Document {
	experiences, ok := moveItem(d.Experiences, from, to)
	if !ok {
		return d
	}
	d.Experiences = experiences
	return d
}

// SetExperienceField replaces the company or location of experience i.
func SetExperienceField(d resume.Document, i int, field ExperienceField, value string) resume.Document {
	switch field {
	case ExperienceCompany, ExperienceLocation:
	default:
		return d
	}
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		if field == ExperienceCompany {
			e.Company = value
		} else {
			e.Location = value
		}
		return e
	})
}

// SetExperienceSkipName sets the skip_name render hint of experience i.
func SetExperienceSkipName(d resume.Document, i int, value bool) resume.Document {
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.SkipName = value
		return e
	})
}

// AddTitle appends a default title to experience i.
func AddTitle(d resume.Document, i int) resume.Document {
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.Titles = appendItem(e.Titles, resume.NewTitle())
		return e
	})
}

// RemoveTitle removes title j from experience i.
func RemoveTitle(d resume.Document, i, j int) resume.Document {
	if !inRange(i, len(d.Experiences)) {
		return d
	}
	titles, ok := removeAt(d.Experiences[i].Titles, j)
	if !ok {
		return d
	}
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.Titles = titles
		return e
	})
}

// MoveTitle reorders the titles of experience i.
func MoveTitle(d resume.Document, i, from, to int) resume.Document {
	if !inRange(i, len(d.Experiences)) {
		return d
	}
	titles, ok := moveItem(d.Experiences[i].Titles, from, to)
	if !ok {
		return d
	}
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.Titles = titles
		return e
	})
}

// SetTitleField replaces a field of title j in experience i.
func SetTitleField(d resume.Document, i, j int, field TitleField, value string) resume.Document {
	switch field {
	case TitleName, TitleStartDate, TitleEndDate:
	default:
		return d
	}
	if !inRange(i, len(d.Experiences)) {
		return d
	}
	titles, ok := updateAt(d.Experiences[i].Titles, j, func(t resume.Title) resume.Title {
		switch field {
		case TitleName:
			t.Name = value
		case TitleStartDate:
			t.StartDate = value
		case TitleEndDate:
			t.EndDate = value
		}
		return t
	})
	if !ok {
		return d
	}
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.Titles = titles
		return e
	})
}

// AddExperienceHighlight appends an empty highlight to experience i.
func AddExperienceHighlight(d resume.Document, i int) resume.Document {
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.Highlights = appendItem(e.Highlights, "")
		return e
	})
}

// RemoveExperienceHighlight removes highlight j from experience i.
func RemoveExperienceHighlight(d resume.Document, i, j int) resume.Document {
	if !inRange(i, len(d.Experiences)) {
		return d
	}
	highlights, ok := removeAt(d.Experiences[i].Highlights, j)
	if !ok {
		return d
	}
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.Highlights = highlights
		return e
	})
}

// SetExperienceHighlight replaces highlight j of experience i.
func SetExperienceHighlight(d resume.Document, i, j int, value string) resume.Document {
	if !inRange(i, len(d.Experiences)) {
		return d
	}
	highlights, ok := setAt(d.Experiences[i].Highlights, j, value)
	if !ok {
		return d
	}
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.Highlights = highlights
		return e
	})
}

// MoveExperienceHighlight reorders highlights within experience i only.
func MoveExperienceHighlight(d resume.Document, i, from, to int) resume.Document {
	if !inRange(i, len(d.Experiences)) {
		return d
	}
	highlights, ok := moveItem(d.Experiences[i].Highlights, from, to)
	if !ok {
		return d
	}
	return updateExperience(d, i, func(e resume.Experience) resume.Experience {
		e.Highlights = highlights
		return e
	})
}

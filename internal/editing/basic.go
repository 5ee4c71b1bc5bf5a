package editing

import "github.com/jonathan/resume-editor/internal/resume"

// BasicField names a scalar field of the basic section.
type BasicField string

// Basic section fields.
const (
	BasicName    BasicField = "name"
	BasicAddress BasicField = "address"
	BasicEmail   BasicField = "email"
	BasicPhone   BasicField = "phone"
)

// SetBasicField replaces one contact field.
func SetBasicField(d resume.Document, field BasicField, value string) resume.Document {
	b := d.Basic
	switch field {
	case BasicName:
		b.Name = value
	case BasicAddress:
		b.Address = value
	case BasicEmail:
		b.Email = value
	case BasicPhone:
		b.Phone = value
	default:
		return d
	}
	d.Basic = b
	return d
}

// SetObjective replaces the objective text.
func SetObjective(d resume.Document, value string) resume.Document {
	d.Objective = value
	return d
}

func withWebsites(d resume.Document, websites []string) resume.Document {
	d.Basic.Websites = websites
	return d
}

// SetWebsite replaces the website at i.
func SetWebsite(d resume.Document, i int, value string) resume.Document {
	websites, ok := setAt(d.Basic.Websites, i, value)
	if !ok {
		return d
	}
	return withWebsites(d, websites)
}

// AddWebsite appends an empty website.
func AddWebsite(d resume.Document) resume.Document {
	return withWebsites(d, appendItem(d.Basic.Websites, ""))
}

// RemoveWebsite removes the website at i.
func RemoveWebsite(d resume.Document, i int) resume.Document {
	websites, ok := removeAt(d.Basic.Websites, i)
	if !ok {
		return d
	}
	return withWebsites(d, websites)
}

// MoveWebsite reorders websites.
func MoveWebsite(d resume.Document, from, to int) resume.Document {
	websites, ok := moveItem(d.Basic.Websites, from, to)
	if !ok {
		return d
	}
	return withWebsites(d, websites)
}

package editing

import "github.com/jonathan/resume-editor/internal/resume"

// ProjectField names a scalar string field of a project.
type ProjectField string

// Project string fields.
const (
	ProjectName         ProjectField = "name"
	ProjectTechnologies ProjectField = "technologies"
	ProjectLink         ProjectField = "link"
)

// ProjectFlag names a boolean render hint of a project.
type ProjectFlag string

// Project flags.
const (
	ProjectHyperlink ProjectFlag = "hyperlink"
	ProjectShowLink  ProjectFlag = "show_link"
)

func updateProject(d resume.Document, i int, fn func(resume.Project) resume.Project) resume.Document {
	projects, ok := updateAt(d.Projects, i, fn)
	if !ok {
		return d
	}
	d.Projects = projects
	return d
}

// AddProject appends a default project.
func AddProject(d resume.Document) resume.Document {
	d.Projects = appendItem(d.Projects, resume.NewProject())
	return d
}

// RemoveProject removes the project at i.
func RemoveProject(d resume.Document, i int) resume.Document {
	projects, ok := removeAt(d.Projects, i)
	if !ok {
		return d
	}
	d.Projects = projects
	return d
}

// MoveProject reorders projects.
func MoveProject(d resume.Document, from, to int) resume.Document {
	projects, ok := moveItem(d.Projects, from, to)
	if !ok {
		return d
	}
	d.Projects = projects
	return d
}

// SetProjectField replaces a string field of project i.
func SetProjectField(d resume.Document, i int, field ProjectField, value string) resume.Document {
	switch field {
	case ProjectName, ProjectTechnologies, ProjectLink:
	default:
		return d
	}
	return updateProject(d, i, func(p resume.Project) resume.Project {
		switch field {
		case ProjectName:
			p.Name = value
		case ProjectTechnologies:
			p.Technologies = value
		case ProjectLink:
			p.Link = value
		}
		return p
	})
}

// SetProjectFlag sets a boolean render hint of project i.
func SetProjectFlag(d resume.Document, i int, flag ProjectFlag, value bool) resume.Document {
	switch flag {
	case ProjectHyperlink, ProjectShowLink:
	default:
		return d
	}
	return updateProject(d, i, func(p resume.Project) resume.Project {
		if flag == ProjectHyperlink {
			p.Hyperlink = value
		} else {
			p.ShowLink = value
		}
		return p
	})
}

// AddProjectHighlight appends an empty highlight to project i.
func AddProjectHighlight(d resume.Document, i int) resume.Document {
	return updateProject(d, i, func(p resume.Project) resume.Project {
		p.Highlights = appendItem(p.Highlights, "")
		return p
	})
}

// RemoveProjectHighlight removes highlight j from project i.
func RemoveProjectHighlight(d resume.Document, i, j int) resume.Document {
	if !inRange(i, len(d.Projects)) {
		return d
	}
	highlights, ok := removeAt(d.Projects[i].Highlights, j)
	if !ok {
		return d
	}
	return updateProject(d, i, func(p resume.Project) resume.Project {
		p.Highlights = highlights
		return p
	})
}

// SetProjectHighlight replaces highlight j of project i.
func SetProjectHighlight(d resume.Document, i, j int, value string) resume.Document {
	if !inRange(i, len(d.Projects)) {
		return d
	}
	highlights, ok := setAt(d.Projects[i].Highlights, j, value)
	if !ok {
		return d
	}
	return updateProject(d, i, func(p resume.Project) resume.Project {
		p.Highlights = highlights
		return p
	})
}

// MoveProjectHighlight reorders highlights within project i only.
func MoveProjectHighlight(d resume.Document, i, from, to int) resume.Document {
	if !inRange(i, len(d.Projects)) {
		return d
	}
	highlights, ok := moveItem(d.Projects[i].Highlights, from, to)
	if !ok {
		return d
	}
	return updateProject(d, i, func(p resume.Project) resume.Project {
		p.Highlights = highlights
		return p
	})
}

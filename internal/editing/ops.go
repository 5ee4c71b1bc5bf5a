package editing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-editor/internal/resume"
)

// Kind is the verb of a path-addressed operation.
type Kind string

// Operation kinds.
const (
	KindSet     Kind = "set"
	KindAppend  Kind = "append"
	KindRemove  Kind = "remove"
	KindMove    Kind = "move"
	KindConvert Kind = "convert"
)

// Shape names accepted as the value of a convert operation.
const (
	ShapeFlat          = "flat"
	ShapeSubcategories = "subcategories"
)

// Op is a single edit addressed by a slash-separated path such as
// "experiences/0/highlights/2".
//
//   - set: Path names a scalar, Value is a string or bool.
//   - append: Path names a list; a default item is appended.
//   - remove: Path names a list element.
//   - move: Path names a list; From and To are indices within it.
//   - convert: Path names a skill category ("skills/1"); Value is "flat" or "subcategories".
type Op struct {
	Op    Kind   `json:"op" validate:"required,oneof=set append remove move convert"`
	Path  string `json:"path" validate:"required"`
	Value any    `json:"value,omitempty"`
	From  int    `json:"from,omitempty" validate:"gte=0"`
	To    int    `json:"to,omitempty" validate:"gte=0"`
}

// OpError reports an operation that does not address anything editable or
// carries a value of the wrong type.
type OpError struct {
	Op      Op
	Message string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("invalid %s operation on %q: %s", e.Op.Op, e.Op.Path, e.Message)
}

type listOps struct {
	add    func(d resume.Document, idx []int) resume.Document
	remove func(d resume.Document, idx []int, i int) resume.Document
	move   func(d resume.Document, idx []int, from, to int) resume.Document
}

type setter func(d resume.Document, idx []int, value any) (resume.Document, error)

var (
	lists   = map[string]listOps{}
	scalars = map[string]setter{}
)

func stringSetter(fn func(d resume.Document, idx []int, v string) resume.Document) setter {
	return func(d resume.Document, idx []int, value any) (resume.Document, error) {
		s, ok := value.(string)
		if !ok {
			return d, fmt.Errorf("expected string value, got %T", value)
		}
		return fn(d, idx, s), nil
	}
}

func boolSetter(fn func(d resume.Document, idx []int, v bool) resume.Document) setter {
	return func(d resume.Document, idx []int, value any) (resume.Document, error) {
		b, ok := value.(bool)
		if !ok {
			return d, fmt.Errorf("expected boolean value, got %T", value)
		}
		return fn(d, idx, b), nil
	}
}

func init() {
	lists["basic/websites"] = listOps{
		add:    func(d resume.Document, _ []int) resume.Document { return AddWebsite(d) },
		remove: func(d resume.Document, _ []int, i int) resume.Document { return RemoveWebsite(d, i) },
		move:   func(d resume.Document, _ []int, f, t int) resume.Document { return MoveWebsite(d, f, t) },
	}
	lists["education"] = listOps{
		add:    func(d resume.Document, _ []int) resume.Document { return AddSchool(d) },
		remove: func(d resume.Document, _ []int, i int) resume.Document { return RemoveSchool(d, i) },
		move:   func(d resume.Document, _ []int, f, t int) resume.Document { return MoveSchool(d, f, t) },
	}
	lists["education/#/degrees"] = listOps{
		add:    func(d resume.Document, x []int) resume.Document { return AddDegree(d, x[0]) },
		remove: func(d resume.Document, x []int, i int) resume.Document { return RemoveDegree(d, x[0], i) },
		move:   func(d resume.Document, x []int, f, t int) resume.Document { return MoveDegree(d, x[0], f, t) },
	}
	lists["education/#/degrees/#/names"] = listOps{
		add:    func(d resume.Document, x []int) resume.Document { return AddDegreeName(d, x[0], x[1]) },
		remove: func(d resume.Document, x []int, i int) resume.Document { return RemoveDegreeName(d, x[0], x[1], i) },
		move:   func(d resume.Document, x []int, f, t int) resume.Document { return MoveDegreeName(d, x[0], x[1], f, t) },
	}
	lists["experiences"] = listOps{
		add:    func(d resume.Document, _ []int) resume.Document { return AddExperience(d) },
		remove: func(d resume.Document, _ []int, i int) resume.Document { return RemoveExperience(d, i) },
		move:   func(d resume.Document, _ []int, f, t int) resume.Document { return MoveExperience(d, f, t) },
	}
	lists["experiences/#/titles"] = listOps{
		add:    func(d resume.Document, x []int) resume.Document { return AddTitle(d, x[0]) },
		remove: func(d resume.Document, x []int, i int) resume.Document { return RemoveTitle(d, x[0], i) },
		move:   func(d resume.Document, x []int, f, t int) resume.Document { return MoveTitle(d, x[0], f, t) },
	}
	lists["experiences/#/highlights"] = listOps{
		add:    func(d resume.Document, x []int) resume.Document { return AddExperienceHighlight(d, x[0]) },
		remove: func(d resume.Document, x []int, i int) resume.Document { return RemoveExperienceHighlight(d, x[0], i) },
		move:   func(d resume.Document, x []int, f, t int) resume.Document { return MoveExperienceHighlight(d, x[0], f, t) },
	}
	lists["projects"] = listOps{
		add:    func(d resume.Document, _ []int) resume.Document { return AddProject(d) },
		remove: func(d resume.Document, _ []int, i int) resume.Document { return RemoveProject(d, i) },
		move:   func(d resume.Document, _ []int, f, t int) resume.Document { return MoveProject(d, f, t) },
	}
	lists["projects/#/highlights"] = listOps{
		add:    func(d resume.Document, x []int) resume.Document { return AddProjectHighlight(d, x[0]) },
		remove: func(d resume.Document, x []int, i int) resume.Document { return RemoveProjectHighlight(d, x[0], i) },
		move:   func(d resume.Document, x []int, f, t int) resume.Document { return MoveProjectHighlight(d, x[0], f, t) },
	}
	lists["skills"] = listOps{
		add:    func(d resume.Document, _ []int) resume.Document { return AddSkillCategory(d) },
		remove: func(d resume.Document, _ []int, i int) resume.Document { return RemoveSkillCategory(d, i) },
		move:   func(d resume.Document, _ []int, f, t int) resume.Document { return MoveSkillCategory(d, f, t) },
	}
	lists["skills/#/skills"] = listOps{
		add:    func(d resume.Document, x []int) resume.Document { return AddSkill(d, x[0]) },
		remove: func(d resume.Document, x []int, i int) resume.Document { return RemoveSkill(d, x[0], i) },
		move:   func(d resume.Document, x []int, f, t int) resume.Document { return MoveSkill(d, x[0], f, t) },
	}
	lists["skills/#/subcategories"] = listOps{
		add:    func(d resume.Document, x []int) resume.Document { return AddSubcategory(d, x[0]) },
		remove: func(d resume.Document, x []int, i int) resume.Document { return RemoveSubcategory(d, x[0], i) },
		move:   func(d resume.Document, x []int, f, t int) resume.Document { return MoveSubcategory(d, x[0], f, t) },
	}
	lists["skills/#/subcategories/#/skills"] = listOps{
		add: func(d resume.Document, x []int) resume.Document { return AddSubcategorySkill(d, x[0], x[1]) },
		remove: func(d resume.Document, x []int, i int) resume.Document {
			return RemoveSubcategorySkill(d, x[0], x[1], i)
		},
		move: func(d resume.Document, x []int, f, t int) resume.Document {
			return MoveSubcategorySkill(d, x[0], x[1], f, t)
		},
	}

	for _, f := range []BasicField{BasicName, BasicAddress, BasicEmail, BasicPhone} {
		field := f
		scalars["basic/"+string(field)] = stringSetter(func(d resume.Document, _ []int, v string) resume.Document {
			return SetBasicField(d, field, v)
		})
	}
	scalars["basic/websites/#"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetWebsite(d, x[0], v)
	})
	scalars["objective"] = stringSetter(func(d resume.Document, _ []int, v string) resume.Document {
		return SetObjective(d, v)
	})

	scalars["education/#/school"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetSchoolName(d, x[0], v)
	})
	for _, f := range []DegreeField{DegreeGPA, DegreeDates} {
		field := f
		scalars["education/#/degrees/#/"+string(field)] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
			return SetDegreeField(d, x[0], x[1], field, v)
		})
	}
	scalars["education/#/degrees/#/names/#"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetDegreeName(d, x[0], x[1], x[2], v)
	})

	for _, f := range []ExperienceField{ExperienceCompany, ExperienceLocation} {
		field := f
		scalars["experiences/#/"+string(field)] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
			return SetExperienceField(d, x[0], field, v)
		})
	}
	scalars["experiences/#/skip_name"] = boolSetter(func(d resume.Document, x []int, v bool) resume.Document {
		return SetExperienceSkipName(d, x[0], v)
	})
	for _, f := range []TitleField{TitleName, TitleStartDate, TitleEndDate} {
		field := f
		scalars["experiences/#/titles/#/"+string(field)] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
			return SetTitleField(d, x[0], x[1], field, v)
		})
	}
	scalars["experiences/#/highlights/#"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetExperienceHighlight(d, x[0], x[1], v)
	})

	for _, f := range []ProjectField{ProjectName, ProjectTechnologies, ProjectLink} {
		field := f
		scalars["projects/#/"+string(field)] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
			return SetProjectField(d, x[0], field, v)
		})
	}
	for _, f := range []ProjectFlag{ProjectHyperlink, ProjectShowLink} {
		flag := f
		scalars["projects/#/"+string(flag)] = boolSetter(func(d resume.Document, x []int, v bool) resume.Document {
			return SetProjectFlag(d, x[0], flag, v)
		})
	}
	scalars["projects/#/highlights/#"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetProjectHighlight(d, x[0], x[1], v)
	})

	scalars["skills/#/category"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetSkillCategoryName(d, x[0], v)
	})
	scalars["skills/#/skills/#"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetSkill(d, x[0], x[1], v)
	})
	scalars["skills/#/subcategories/#/name"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetSubcategoryName(d, x[0], x[1], v)
	})
	scalars["skills/#/subcategories/#/skills/#"] = stringSetter(func(d resume.Document, x []int, v string) resume.Document {
		return SetSubcategorySkill(d, x[0], x[1], x[2], v)
	})
}

// parsePath splits a path into its pattern (indices replaced by "#") and the
// indices in order. A literal "#" or an empty segment makes the path invalid.
func parsePath(path string) (string, []int, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	indices := make([]int, 0, len(segments))
	for i, seg := range segments {
		if seg == "" || seg == "#" {
			return "", nil, false
		}
		if n, err := strconv.Atoi(seg); err == nil {
			segments[i] = "#"
			indices = append(indices, n)
		}
	}
	return strings.Join(segments, "/"), indices, true
}

// Apply performs one operation. Out-of-range indices leave the document
// unchanged; only malformed operations return an error, and then the input
// document is returned as is.
func Apply(d resume.Document, op Op) (resume.Document, error) {
	pattern, idx, ok := parsePath(op.Path)
	if !ok || len(idx) != strings.Count(pattern, "#") {
		return d, &OpError{Op: op, Message: "path does not name an editable field"}
	}

	switch op.Op {
	case KindSet:
		set, ok := scalars[pattern]
		if !ok {
			return d, &OpError{Op: op, Message: "path does not name an editable field"}
		}
		out, err := set(d, idx, op.Value)
		if err != nil {
			return d, &OpError{Op: op, Message: err.Error()}
		}
		return out, nil

	case KindAppend:
		list, ok := lists[pattern]
		if !ok {
			return d, &OpError{Op: op, Message: "path does not name a list"}
		}
		return list.add(d, idx), nil

	case KindRemove:
		if !strings.HasSuffix(pattern, "/#") || len(idx) == 0 {
			return d, &OpError{Op: op, Message: "path does not name a list element"}
		}
		list, ok := lists[strings.TrimSuffix(pattern, "/#")]
		if !ok {
			return d, &OpError{Op: op, Message: "path does not name a list element"}
		}
		return list.remove(d, idx[:len(idx)-1], idx[len(idx)-1]), nil

	case KindMove:
		list, ok := lists[pattern]
		if !ok {
			return d, &OpError{Op: op, Message: "path does not name a list"}
		}
		return list.move(d, idx, op.From, op.To), nil

	case KindConvert:
		if pattern != "skills/#" {
			return d, &OpError{Op: op, Message: "only skill categories can be converted"}
		}
		switch op.Value {
		case ShapeFlat:
			return ConvertToFlat(d, idx[0]), nil
		case ShapeSubcategories:
			return ConvertToSubcategories(d, idx[0]), nil
		default:
			return d, &OpError{Op: op, Message: fmt.Sprintf("unknown shape %v", op.Value)}
		}

	default:
		return d, &OpError{Op: op, Message: "unknown operation"}
	}
}

// ApplyAll performs ops in order. If any op is malformed the original
// document is returned with the error.
func ApplyAll(d resume.Document, ops []Op) (resume.Document, error) {
	out := d
	for i, op := range ops {
		var err error
		out, err = Apply(out, op)
		if err != nil {
			return d, fmt.Errorf("op %d: %w", i, err)
		}
	}
	return out, nil
}

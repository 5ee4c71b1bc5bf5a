package editing

import "github.com/jonathan/resume-editor/internal/resume"

func updateCategory(d resume.Document, i int, fn func(resume.SkillCategory) resume.SkillCategory) resume.Document {
	skills, ok := updateAt(d.Skills, i, fn)
	if !ok {
		return d
	}
	d.Skills = skills
	return d
}

// updateFlat applies fn to the flat skill list of category i. Categories in
// any other shape are left unchanged.
func updateFlat(d resume.Document, i int, fn func([]string) ([]string, bool)) resume.Document {
	if !inRange(i, len(d.Skills)) {
		return d
	}
	flat, isFlat := d.Skills[i].Shape.(resume.FlatSkills)
	if !isFlat {
		return d
	}
	skills, ok := fn(flat.Skills)
	if !ok {
		return d
	}
	return updateCategory(d, i, func(c resume.SkillCategory) resume.SkillCategory {
		c.Shape = resume.FlatSkills{Skills: skills}
		return c
	})
}

// updateSubcategories applies fn to the subcategory list of category i.
// Categories in any other shape are left unchanged.
func updateSubcategories(d resume.Document, i int, fn func([]resume.Subcategory) ([]resume.Subcategory, bool)) resume.Document {
	if !inRange(i, len(d.Skills)) {
		return d
	}
	shape, isSub := d.Skills[i].Shape.(resume.Subcategories)
	if !isSub {
		return d
	}
	subs, ok := fn(shape.Subcategories)
	if !ok {
		return d
	}
	return updateCategory(d, i, func(c resume.SkillCategory) resume.SkillCategory {
		c.Shape = resume.Subcategories{Subcategories: subs}
		return c
	})
}

func updateSubcategorySkills(d resume.Document, i, s int, fn func([]string) ([]string, bool)) resume.Document {
	return updateSubcategories(d, i, func(subs []resume.Subcategory) ([]resume.Subcategory, bool) {
		if !inRange(s, len(subs)) {
			return subs, false
		}
		skills, ok := fn(subs[s].Skills)
		if !ok {
			return subs, false
		}
		return updateAt(subs, s, func(sub resume.Subcategory) resume.Subcategory {
			sub.Skills = skills
			return sub
		})
	})
}

// AddSkillCategory appends a default flat category.
func AddSkillCategory(d resume.Document) resume.Document {
	d.Skills = appendItem(d.Skills, resume.NewSkillCategory())
	return d
}

// RemoveSkillCategory removes the category at i.
func RemoveSkillCategory(d resume.Document, i int) resume.Document {
	skills, ok := removeAt(d.Skills, i)
	if !ok {
		return d
	}
	d.Skills = skills
	return d
}

// MoveSkillCategory reorders categories.
func MoveSkillCategory(d resume.Document, from, to int) resume.Document {
	skills, ok := moveItem(d.Skills, from, to)
	if !ok {
		return d
	}
	d.Skills = skills
	return d
}

// SetSkillCategoryName replaces the label of category i.
func SetSkillCategoryName(d resume.Document, i int, value string) resume.Document {
	return updateCategory(d, i, func(c resume.SkillCategory) resume.SkillCategory {
		c.Category = value
		return c
	})
}

// ConvertToFlat switches category i to the flat shape.
func ConvertToFlat(d resume.Document, i int) resume.Document {
	if !inRange(i, len(d.Skills)) || d.Skills[i].IsFlat() {
		return d
	}
	return updateCategory(d, i, resume.ToFlat)
}

// ConvertToSubcategories switches category i to the subcategory shape.
func ConvertToSubcategories(d resume.Document, i int) resume.Document {
	if !inRange(i, len(d.Skills)) || d.Skills[i].HasSubcategories() {
		return d
	}
	return updateCategory(d, i, resume.ToSubcategories)
}

// AddSkill appends an empty skill to flat category i.
func AddSkill(d resume.Document, i int) resume.Document {
	return updateFlat(d, i, func(skills []string) ([]string, bool) {
		return appendItem(skills, ""), true
	})
}

// RemoveSkill removes skill j from flat category i.
func RemoveSkill(d resume.Document, i, j int) resume.Document {
	return updateFlat(d, i, func(skills []string) ([]string, bool) {
		return removeAt(skills, j)
	})
}

// SetSkill replaces skill j of flat category i.
func SetSkill(d resume.Document, i, j int, value string) resume.Document {
	return updateFlat(d, i, func(skills []string) ([]string, bool) {
		return setAt(skills, j, value)
	})
}

// MoveSkill reorders skills within flat category i.
func MoveSkill(d resume.Document, i, from, to int) resume.Document {
	return updateFlat(d, i, func(skills []string) ([]string, bool) {
		return moveItem(skills, from, to)
	})
}

// AddSubcategory appends a default subcategory to category i.
func AddSubcategory(d resume.Document, i int) resume.Document {
	return updateSubcategories(d, i, func(subs []resume.Subcategory) ([]resume.Subcategory, bool) {
		return appendItem(subs, resume.NewSubcategory()), true
	})
}

// RemoveSubcategory removes subcategory s from category i.
func RemoveSubcategory(d resume.Document, i, s int) resume.Document {
	return updateSubcategories(d, i, func(subs []resume.Subcategory) ([]resume.Subcategory, bool) {
		return removeAt(subs, s)
	})
}

// MoveSubcategory reorders the subcategories of category i.
func MoveSubcategory(d resume.Document, i, from, to int) resume.Document {
	return updateSubcategories(d, i, func(subs []resume.Subcategory) ([]resume.Subcategory, bool) {
		return moveItem(subs, from, to)
	})
}

// SetSubcategoryName renames subcategory s of category i.
func SetSubcategoryName(d resume.Document, i, s int, value string) resume.Document {
	return updateSubcategories(d, i, func(subs []resume.Subcategory) ([]resume.Subcategory, bool) {
		return updateAt(subs, s, func(sub resume.Subcategory) resume.Subcategory {
			sub.Name = value
			return sub
		})
	})
}

// AddSubcategorySkill appends an empty skill to subcategory s of category i.
func AddSubcategorySkill(d resume.Document, i, s int) resume.Document {
	return updateSubcategorySkills(d, i, s, func(skills []string) ([]string, bool) {
		return appendItem(skills, ""), true
	})
}

// RemoveSubcategorySkill removes skill j from subcategory s of category i.
func RemoveSubcategorySkill(d resume.Document, i, s, j int) resume.Document {
	return updateSubcategorySkills(d, i, s, func(skills []string) ([]string, bool) {
		return removeAt(skills, j)
	})
}

// SetSubcategorySkill replaces skill j of subcategory s in category i.
func SetSubcategorySkill(d resume.Document, i, s, j int, value string) resume.Document {
	return updateSubcategorySkills(d, i, s, func(skills []string) ([]string, bool) {
		return setAt(skills, j, value)
	})
}

// MoveSubcategorySkill reorders skills within one subcategory. Moving a skill
// between subcategories is not supported.
func MoveSubcategorySkill(d resume.Document, i, s, from, to int) resume.Document {
	return updateSubcategorySkills(d, i, s, func(skills []string) ([]string, bool) {
		return moveItem(skills, from, to)
	})
}

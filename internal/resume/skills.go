package resume

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeneralSubcategory is the subcategory name used when a flat skill list is expanded.
const GeneralSubcategory = "General"

// SkillCategory is a labelled group of skills. Its Shape is either FlatSkills
// or Subcategories; a nil Shape means the category carries no skills at all.
type SkillCategory struct {
	Category string
	Shape    SkillShape
}

// SkillShape is the closed set of skill-category representations.
type SkillShape interface {
	isSkillShape()
}

// FlatSkills is a single list of skills under the category label.
type FlatSkills struct {
	Skills []string
}

// Subcategories groups skills under named subcategories.
type Subcategories struct {
	Subcategories []Subcategory
}

// Subcategory is a named skill list inside a Subcategories shape.
type Subcategory struct {
	Name   string   `json:"name" yaml:"name"`
	Skills []string `json:"skills" yaml:"skills"`
}

func (FlatSkills) isSkillShape()    {}
func (Subcategories) isSkillShape() {}

// ErrAmbiguousShape is returned when an encoded category carries both shapes.
var ErrAmbiguousShape = errors.New("skills and subcategories are mutually exclusive")

// IsFlat reports whether the category uses the flat shape.
func (c SkillCategory) IsFlat() bool {
	_, ok := c.Shape.(FlatSkills)
	return ok
}

// HasSubcategories reports whether the category uses the subcategory shape.
func (c SkillCategory) HasSubcategories() bool {
	_, ok := c.Shape.(Subcategories)
	return ok
}

// ToFlat converts a category to the flat shape. Subcategory grouping is lost;
// skills are merged in first-seen order with case-insensitive duplicates dropped.
func ToFlat(c SkillCategory) SkillCategory {
	switch shape := c.Shape.(type) {
	case FlatSkills:
		return c
	case Subcategories:
		seen := make(map[string]bool)
		merged := []string{}
		for _, sub := range shape.Subcategories {
			for _, skill := range sub.Skills {
				key := strings.ToLower(skill)
				if seen[key] {
					continue
				}
				seen[key] = true
				merged = append(merged, skill)
			}
		}
		return SkillCategory{Category: c.Category, Shape: FlatSkills{Skills: merged}}
	default:
		return SkillCategory{Category: c.Category, Shape: FlatSkills{Skills: []string{}}}
	}
}

// ToSubcategories converts a category to the subcategory shape by wrapping the
// flat list in a single General subcategory.
func ToSubcategories(c SkillCategory) SkillCategory {
	switch shape := c.Shape.(type) {
	case Subcategories:
		return c
	case FlatSkills:
		skills := append([]string{}, shape.Skills...)
		return SkillCategory{
			Category: c.Category,
			Shape:    Subcategories{Subcategories: []Subcategory{{Name: GeneralSubcategory, Skills: skills}}},
		}
	default:
		return SkillCategory{
			Category: c.Category,
			Shape:    Subcategories{Subcategories: []Subcategory{{Name: GeneralSubcategory, Skills: []string{}}}},
		}
	}
}

// skillCategoryWire is the encoded form shared by JSON and YAML. The pointer
// fields keep an empty list distinguishable from an absent one.
type skillCategoryWire struct {
	Category      string         `json:"category" yaml:"category"`
	Skills        *[]string      `json:"skills,omitempty" yaml:"skills,omitempty"`
	Subcategories *[]Subcategory `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
}

func (c SkillCategory) toWire() skillCategoryWire {
	w := skillCategoryWire{Category: c.Category}
	switch shape := c.Shape.(type) {
	case FlatSkills:
		skills := shape.Skills
		if skills == nil {
			skills = []string{}
		}
		w.Skills = &skills
	case Subcategories:
		subs := shape.Subcategories
		if subs == nil {
			subs = []Subcategory{}
		}
		w.Subcategories = &subs
	}
	return w
}

func (c *SkillCategory) fromWire(w skillCategoryWire) error {
	if w.Skills != nil && w.Subcategories != nil {
		return fmt.Errorf("skill category %q: %w", w.Category, ErrAmbiguousShape)
	}
	c.Category = w.Category
	switch {
	case w.Subcategories != nil:
		c.Shape = Subcategories{Subcategories: *w.Subcategories}
	case w.Skills != nil:
		c.Shape = FlatSkills{Skills: *w.Skills}
	default:
		c.Shape = nil
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c SkillCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toWire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *SkillCategory) UnmarshalJSON(data []byte) error {
	var w skillCategoryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	return c.fromWire(w)
}

// MarshalYAML implements yaml.Marshaler.
func (c SkillCategory) MarshalYAML() (any, error) {
	return c.toWire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *SkillCategory) UnmarshalYAML(value *yaml.Node) error {
	var w skillCategoryWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	return c.fromWire(w)
}

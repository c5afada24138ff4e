package skill

import (
	"sort"
	"time"

	"skill-radar/internal/pkg/patch"
	"skill-radar/internal/pkg/validation"
)

const (
	NameMaxLen        = 100
	CategoryMaxLen    = 100
	DescriptionMaxLen = 500

	MinLevel = 1.0
	MaxLevel = 10.0
)

type Skill struct {
	ID          int64
	Name        string
	Category    string
	Description *string
	Level       float64
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewSkill struct {
	Name        string
	Category    string
	Description *string
	Level       float64
	UserID      int64
}

func (n NewSkill) Validate() error {
	v := validation.New()
	v.Length("name", n.Name, 1, NameMaxLen)
	v.Length("category", n.Category, 1, CategoryMaxLen)
	if n.Description != nil {
		v.Length("description", *n.Description, 0, DescriptionMaxLen)
	}
	v.Range("level", n.Level, MinLevel, MaxLevel)
	return v.Err()
}

type Patch struct {
	Name        patch.Field[string]  `json:"name"`
	Category    patch.Field[string]  `json:"category"`
	Description patch.Field[string]  `json:"description"`
	Level       patch.Field[float64] `json:"level"`
}

func (p Patch) Validate() error {
	v := validation.New()
	if p.Name.IsNull() {
		v.Add("name", "must not be null")
	} else if s, ok := p.Name.Get(); ok {
		v.Length("name", s, 1, NameMaxLen)
	}
	if p.Category.IsNull() {
		v.Add("category", "must not be null")
	} else if s, ok := p.Category.Get(); ok {
		v.Length("category", s, 1, CategoryMaxLen)
	}
	if s, ok := p.Description.Get(); ok {
		v.Length("description", s, 0, DescriptionMaxLen)
	}
	if p.Level.IsNull() {
		v.Add("level", "must not be null")
	} else if l, ok := p.Level.Get(); ok {
		v.Range("level", l, MinLevel, MaxLevel)
	}
	return v.Err()
}

func (p Patch) ApplyTo(s *Skill) {
	patch.Apply(&s.Name, p.Name)
	patch.Apply(&s.Category, p.Category)
	patch.ApplyNullable(&s.Description, p.Description)
	patch.Apply(&s.Level, p.Level)
}

// SortByLevelDesc orders skills by level, highest first, keeping the
// relative order of equal levels.
func SortByLevelDesc(skills []Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Level > skills[j].Level
	})
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkillCategory groups skills on the public skills page.
type SkillCategory string

const (
	SkillCategoryFrontend SkillCategory = "frontend"
	SkillCategoryBackend  SkillCategory = "backend"
	SkillCategoryMobile   SkillCategory = "mobile"
	SkillCategoryAI       SkillCategory = "ai"
	SkillCategoryData     SkillCategory = "data"
	SkillCategoryTools    SkillCategory = "tools"
)

const (
	MinSkillLevel     = 0
	MaxSkillLevel     = 100
	DefaultSkillLevel = 50
)

func (c SkillCategory) Valid() bool {
	switch c {
	case SkillCategoryFrontend, SkillCategoryBackend, SkillCategoryMobile,
		SkillCategoryAI, SkillCategoryData, SkillCategoryTools:
		return true
	}
	return false
}

type Skill struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Category  SkillCategory `json:"category" db:"category"`
	Level     int           `json:"level" db:"level"`
	Icon      *string       `json:"icon,omitempty" db:"icon"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// SkillInput is the full-record payload for create and update.
type SkillInput struct {
	Name     string        `json:"name" binding:"required" validate:"required"`
	Category SkillCategory `json:"category" binding:"required" validate:"required,oneof=frontend backend mobile ai data tools"`
	Level    int           `json:"level" validate:"min=0,max=100"`
	Icon     *string       `json:"icon"`
}

// ClampLevel forces level into [MinSkillLevel, MaxSkillLevel].
func ClampLevel(level int) int {
	return min(max(level, MinSkillLevel), MaxSkillLevel)
}

func (in SkillInput) Normalize() SkillInput {
	return SkillInput{
		Name:     strings.TrimSpace(in.Name),
		Category: in.Category,
		Level:    ClampLevel(in.Level),
		Icon:     trimmedOrNil(deref(in.Icon)),
	}
}

func (in SkillInput) Validate() error {
	return checkStruct(in)
}

// Prepare normalizes then validates, returning the value to persist.
func (in SkillInput) Prepare() (SkillInput, error) {
	out := in.Normalize()
	if err := out.Validate(); err != nil {
		return SkillInput{}, err
	}
	return out, nil
}

// SkillDraft is the editable form of a skill.
type SkillDraft struct {
	Name     string
	Category SkillCategory
	Level    int
	Icon     string
}

func NewSkillDraft() SkillDraft {
	return SkillDraft{
		Category: SkillCategoryFrontend,
		Level:    DefaultSkillLevel,
	}
}

func DraftFromSkill(s Skill) SkillDraft {
	return SkillDraft{
		Name:     s.Name,
		Category: s.Category,
		Level:    s.Level,
		Icon:     deref(s.Icon),
	}
}

func (d SkillDraft) Input() SkillInput {
	return SkillInput{
		Name:     d.Name,
		Category: d.Category,
		Level:    d.Level,
		Icon:     trimmedOrNil(d.Icon),
	}
}

type SkillFilter struct {
	Category string `form:"category"`
}

type SkillsResponse struct {
	Skills []Skill `json:"skills"`
	Total  int     `json:"total"`
}

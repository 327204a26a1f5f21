package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectCategory groups projects on the public gallery.
type ProjectCategory string

const (
	ProjectCategoryWeb    ProjectCategory = "web"
	ProjectCategoryMobile ProjectCategory = "mobile"
	ProjectCategoryAI     ProjectCategory = "ai"
	ProjectCategoryData   ProjectCategory = "data"
)

// DefaultProjectImage is stored when a project is saved without an image.
const DefaultProjectImage = "/api/placeholder/800/600"

// Valid reports whether c is one of the known categories.
func (c ProjectCategory) Valid() bool {
	switch c {
	case ProjectCategoryWeb, ProjectCategoryMobile, ProjectCategoryAI, ProjectCategoryData:
		return true
	}
	return false
}

// Project is a portfolio entry as persisted by the store.
// ID and timestamps are assigned by the store on create.
type Project struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Title        string          `json:"title" db:"title"`
	Description  string          `json:"description" db:"description"`
	Technologies []string        `json:"technologies" db:"technologies"`
	ImageURL     string          `json:"image_url" db:"image_url"`
	GithubURL    *string         `json:"github_url,omitempty" db:"github_url"`
	LiveURL      *string         `json:"live_url,omitempty" db:"live_url"`
	Category     ProjectCategory `json:"category" db:"category"`
	Featured     bool            `json:"featured" db:"featured"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// ProjectInput is the full-record payload for create and update.
// Updates replace every field; there is no partial patch.
type ProjectInput struct {
	Title        string          `json:"title" binding:"required" validate:"required"`
	Description  string          `json:"description"`
	Technologies []string        `json:"technologies" validate:"dive,required"`
	ImageURL     string          `json:"image_url"`
	GithubURL    *string         `json:"github_url"`
	LiveURL      *string         `json:"live_url"`
	Category     ProjectCategory `json:"category" binding:"required" validate:"required,oneof=web mobile ai data"`
	Featured     bool            `json:"featured"`
}

// Normalize trims every string, drops blank and repeated technologies,
// turns blank optional URLs into nil and fills in the placeholder image.
func (in ProjectInput) Normalize() ProjectInput {
	out := ProjectInput{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Technologies: []string{},
		ImageURL:     strings.TrimSpace(in.ImageURL),
		GithubURL:    trimmedOrNil(deref(in.GithubURL)),
		LiveURL:      trimmedOrNil(deref(in.LiveURL)),
		Category:     in.Category,
		Featured:     in.Featured,
	}
	for _, tech := range in.Technologies {
		tech = strings.TrimSpace(tech)
		if tech == "" || slices.Contains(out.Technologies, tech) {
			continue
		}
		out.Technologies = append(out.Technologies, tech)
	}
	if out.ImageURL == "" {
		out.ImageURL = DefaultProjectImage
	}
	return out
}

// Validate checks a normalized input.
func (in ProjectInput) Validate() error {
	return checkStruct(in)
}

// Prepare normalizes then validates, returning the value to persist.
func (in ProjectInput) Prepare() (ProjectInput, error) {
	out := in.Normalize()
	if err := out.Validate(); err != nil {
		return ProjectInput{}, err
	}
	return out, nil
}

// ProjectDraft is the editable, not yet persisted form of a project.
// Optional URLs are plain strings here; blank means absent.
type ProjectDraft struct {
	Title        string
	Description  string
	Technologies []string
	ImageURL     string
	GithubURL    string
	LiveURL      string
	Category     ProjectCategory
	Featured     bool
}

// NewProjectDraft returns the defaults used by the create form.
func NewProjectDraft() ProjectDraft {
	return ProjectDraft{
		Technologies: []string{},
		Category:     ProjectCategoryWeb,
	}
}

// DraftFromProject copies every editable field of p.
func DraftFromProject(p Project) ProjectDraft {
	techs := make([]string, len(p.Technologies))
	copy(techs, p.Technologies)
	return ProjectDraft{
		Title:        p.Title,
		Description:  p.Description,
		Technologies: techs,
		ImageURL:     p.ImageURL,
		GithubURL:    deref(p.GithubURL),
		LiveURL:      deref(p.LiveURL),
		Category:     p.Category,
		Featured:     p.Featured,
	}
}

// AddTechnology appends tech if it is non-blank after trimming and not
// already present (exact, case-sensitive match). It reports whether the
// list changed.
func (d *ProjectDraft) AddTechnology(tech string) bool {
	tech = strings.TrimSpace(tech)
	if tech == "" || slices.Contains(d.Technologies, tech) {
		return false
	}
	d.Technologies = append(d.Technologies, tech)
	return true
}

// RemoveTechnology removes the first occurrence of tech.
func (d *ProjectDraft) RemoveTechnology(tech string) bool {
	for i, t := range d.Technologies {
		if t == tech {
			d.Technologies = append(d.Technologies[:i:i], d.Technologies[i+1:]...)
			return true
		}
	}
	return false
}

// Input converts the draft to the wire payload.
func (d ProjectDraft) Input() ProjectInput {
	techs := make([]string, len(d.Technologies))
	copy(techs, d.Technologies)
	return ProjectInput{
		Title:        d.Title,
		Description:  d.Description,
		Technologies: techs,
		ImageURL:     d.ImageURL,
		GithubURL:    trimmedOrNil(d.GithubURL),
		LiveURL:      trimmedOrNil(d.LiveURL),
		Category:     d.Category,
		Featured:     d.Featured,
	}
}

// ProjectFilter narrows the public project listing.
type ProjectFilter struct {
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
	Search   string `form:"q"`
	Limit    int    `form:"limit"`
}

// ProjectsResponse is the standard response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}

package admin

import (
	"context"
	"folio/models"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectEditor is the create/edit form for projects.
type ProjectEditor struct {
	*editor[models.ProjectDraft, models.Project, models.ProjectInput]
}

func NewProjectEditor(b ProjectBackend, list Reloader, notify Notifier, logger *zap.Logger) *ProjectEditor {
	return &ProjectEditor{newEditor(editorConfig[models.ProjectDraft, models.Project, models.ProjectInput]{
		name:       "project",
		newDraft:   models.NewProjectDraft,
		fromRecord: models.DraftFromProject,
		cloneDraft: func(d models.ProjectDraft) models.ProjectDraft {
			d.Technologies = slices.Clone(d.Technologies)
			return d
		},
		idOf:    func(p models.Project) uuid.UUID { return p.ID },
		prepare: func(d models.ProjectDraft) (models.ProjectInput, error) { return d.Input().Prepare() },
		create: func(ctx context.Context, in models.ProjectInput) error {
			_, err := b.CreateProject(ctx, in)
			return err
		},
		update: func(ctx context.Context, id uuid.UUID, in models.ProjectInput) error {
			_, err := b.UpdateProject(ctx, id, in)
			return err
		},
	}, list, notify, logger)}
}

func (e *ProjectEditor) SetTitle(v string) error {
	return e.edit(func(d *models.ProjectDraft) { d.Title = v })
}

func (e *ProjectEditor) SetDescription(v string) error {
	return e.edit(func(d *models.ProjectDraft) { d.Description = v })
}

func (e *ProjectEditor) SetImageURL(v string) error {
	return e.edit(func(d *models.ProjectDraft) { d.ImageURL = v })
}

func (e *ProjectEditor) SetGithubURL(v string) error {
	return e.edit(func(d *models.ProjectDraft) { d.GithubURL = v })
}

func (e *ProjectEditor) SetLiveURL(v string) error {
	return e.edit(func(d *models.ProjectDraft) { d.LiveURL = v })
}

func (e *ProjectEditor) SetCategory(v models.ProjectCategory) error {
	return e.edit(func(d *models.ProjectDraft) { d.Category = v })
}

func (e *ProjectEditor) SetFeatured(v bool) error {
	return e.edit(func(d *models.ProjectDraft) { d.Featured = v })
}

// AddTechnology appends tech (trimmed) unless it is blank or already
// listed. It reports whether the list changed.
func (e *ProjectEditor) AddTechnology(tech string) (bool, error) {
	var added bool
	err := e.edit(func(d *models.ProjectDraft) { added = d.AddTechnology(tech) })
	return added, err
}

// RemoveTechnology removes one occurrence of tech.
func (e *ProjectEditor) RemoveTechnology(tech string) (bool, error) {
	var removed bool
	err := e.edit(func(d *models.ProjectDraft) { removed = d.RemoveTechnology(tech) })
	return removed, err
}

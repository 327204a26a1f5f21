package admin

import (
	"context"
	"folio/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SkillEditor is the create/edit form for skills.
type SkillEditor struct {
	*editor[models.SkillDraft, models.Skill, models.SkillInput]
}

func NewSkillEditor(b SkillBackend, list Reloader, notify Notifier, logger *zap.Logger) *SkillEditor {
	return &SkillEditor{newEditor(editorConfig[models.SkillDraft, models.Skill, models.SkillInput]{
		name:       "skill",
		newDraft:   models.NewSkillDraft,
		fromRecord: models.DraftFromSkill,
		cloneDraft: func(d models.SkillDraft) models.SkillDraft { return d },
		idOf:       func(s models.Skill) uuid.UUID { return s.ID },
		prepare:    func(d models.SkillDraft) (models.SkillInput, error) { return d.Input().Prepare() },
		create: func(ctx context.Context, in models.SkillInput) error {
			_, err := b.CreateSkill(ctx, in)
			return err
		},
		update: func(ctx context.Context, id uuid.UUID, in models.SkillInput) error {
			_, err := b.UpdateSkill(ctx, id, in)
			return err
		},
	}, list, notify, logger)}
}

func (e *SkillEditor) SetName(v string) error {
	return e.edit(func(d *models.SkillDraft) { d.Name = v })
}

func (e *SkillEditor) SetCategory(v models.SkillCategory) error {
	return e.edit(func(d *models.SkillDraft) { d.Category = v })
}

// SetLevel stores v as typed; it is clamped to [0,100] on submit.
func (e *SkillEditor) SetLevel(v int) error {
	return e.edit(func(d *models.SkillDraft) { d.Level = v })
}

func (e *SkillEditor) SetIcon(v string) error {
	return e.edit(func(d *models.SkillDraft) { d.Icon = v })
}

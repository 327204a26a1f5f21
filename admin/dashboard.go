package admin

import (
	"context"
	"errors"
	"folio/models"

	"go.uber.org/zap"
)

// Dashboard wires every admin component to one backend.
type Dashboard struct {
	Guard         *SessionGuard
	Tabs          *Tabs
	Projects      *List[models.Project]
	Skills        *List[models.Skill]
	ProjectEditor *ProjectEditor
	SkillEditor   *SkillEditor
	CV            *CVSlot
}

func NewDashboard(b Backend, cache RefCache, notify Notifier, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	projects := NewProjectList(b, notify, logger)
	skills := NewSkillList(b, notify, logger)
	cv := NewCVSlot(b, cache, notify, logger)

	return &Dashboard{
		Guard: NewSessionGuard(b, notify, logger),
		Tabs: NewTabs(map[Domain]Reloader{
			DomainProjects: projects,
			DomainSkills:   skills,
			DomainCV:       cv,
		}, DomainProjects),
		Projects:      projects,
		Skills:        skills,
		ProjectEditor: NewProjectEditor(b, projects, notify, logger),
		SkillEditor:   NewSkillEditor(b, skills, notify, logger),
		CV:            cv,
	}
}

// Open mounts the session guard and, when a session already exists,
// loads the active tab.
func (d *Dashboard) Open(ctx context.Context) error {
	d.Guard.Mount(ctx)
	if !d.Guard.Authenticated() {
		return nil
	}
	return d.reloadActive(ctx)
}

// Close unmounts the session guard.
func (d *Dashboard) Close() {
	d.Guard.Unmount()
}

// Login signs in and loads the active tab.
func (d *Dashboard) Login(ctx context.Context, email, password string) error {
	if err := d.Guard.Login(ctx, email, password); err != nil {
		return err
	}
	return d.reloadActive(ctx)
}

// Logout signs out after confirmation and forgets loaded content.
func (d *Dashboard) Logout(ctx context.Context) bool {
	if !d.Guard.Logout(ctx) {
		return false
	}
	d.Tabs.InvalidateAll()
	d.Projects.Reset()
	d.Skills.Reset()
	d.ProjectEditor.Close()
	d.SkillEditor.Close()
	return true
}

func (d *Dashboard) reloadActive(ctx context.Context) error {
	if err := d.Tabs.ReloadActive(ctx); err != nil && !errors.Is(err, ErrStale) {
		return err
	}
	return nil
}

// Package admin holds the state of the content admin screen: the session
// gate, the tab switcher, the record lists with their editors, and the CV
// slot. It has no presentation of its own; cmd/admin drives it from a
// terminal and any other front end could do the same.
//
// Every component guards its state with a mutex and calls the backend
// outside the lock. Stale completions are dropped using generation
// counters.
package admin

import (
	"context"
	"errors"
	"folio/models"

	"github.com/google/uuid"
)

var (
	// ErrSubmitInFlight rejects a second submit while the first is pending.
	ErrSubmitInFlight = errors.New("a save is already in progress")
	// ErrEditorClosed is returned by editor operations when no form is open.
	ErrEditorClosed = errors.New("editor is not open")
	// ErrStale marks a completion that arrived after it was superseded.
	// Its result was discarded.
	ErrStale = errors.New("result superseded by a newer request")
	// ErrNotPDF rejects a CV upload before anything is sent.
	ErrNotPDF = errors.New("only PDF files are accepted")
)

type Auth interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	GetSession(ctx context.Context) (*models.Session, error)
	OnSessionChange(fn func(*models.Session)) (unsubscribe func())
	SignOut(ctx context.Context) error
}

type ProjectBackend interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in models.ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type SkillBackend interface {
	ListSkills(ctx context.Context) ([]models.Skill, error)
	CreateSkill(ctx context.Context, in models.SkillInput) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id uuid.UUID, in models.SkillInput) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

type CVBackend interface {
	CurrentCV(ctx context.Context) (*models.CVDocument, error)
	UploadCV(ctx context.Context, filename string, data []byte) (*models.CVDocument, error)
}

// Backend is everything the admin screen needs. *client.Client implements it.
type Backend interface {
	Auth
	ProjectBackend
	SkillBackend
	CVBackend
}

// RefCache persists the last known CV reference between runs.
type RefCache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Notifier is how the screen talks back to the operator.
type Notifier interface {
	// Alert shows a blocking message.
	Alert(msg string)
	// Confirm asks a yes/no question.
	Confirm(prompt string) bool
}

// Reloader is a surface the tab switcher can refresh or abandon.
type Reloader interface {
	Reload(ctx context.Context) error
	// Invalidate drops any reload still in flight.
	Invalidate()
}

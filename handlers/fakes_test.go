package handlers

import (
	"context"
	"fmt"
	"folio/database"
	"folio/models"
	"folio/session"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

type fakeStore struct {
	mu       sync.Mutex
	projects []models.Project
	skills   []models.Skill
	contacts []models.Contact
	cv       *models.CVDocument
	pingErr  error
	failWith error
}

func newFakeStore() *fakeStore { return &fakeStore{} }

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) ListProjects(_ context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []models.Project{}
	for _, p := range f.projects {
		if filter.Category != "" && string(p.Category) != filter.Category {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) GetProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, models.ErrNotFound)
}

func (f *fakeStore) CreateProject(_ context.Context, in models.ProjectInput) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	now := time.Now().UTC()
	p := models.Project{
		ID: uuid.New(), Title: in.Title, Description: in.Description,
		Technologies: in.Technologies, ImageURL: in.ImageURL,
		GithubURL: in.GithubURL, LiveURL: in.LiveURL,
		Category: in.Category, Featured: in.Featured,
		CreatedAt: now, UpdatedAt: now,
	}
	f.projects = append([]models.Project{p}, f.projects...)
	return &p, nil
}

func (f *fakeStore) UpdateProject(_ context.Context, id uuid.UUID, in models.ProjectInput) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			p := &f.projects[i]
			p.Title, p.Description, p.Technologies = in.Title, in.Description, in.Technologies
			p.ImageURL, p.GithubURL, p.LiveURL = in.ImageURL, in.GithubURL, in.LiveURL
			p.Category, p.Featured = in.Category, in.Featured
			out := *p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, models.ErrNotFound)
}

func (f *fakeStore) DeleteProject(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
}

func (f *fakeStore) ListSkills(_ context.Context, filter models.SkillFilter) ([]models.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Skill{}
	for _, s := range f.skills {
		if filter.Category == "" || string(s.Category) == filter.Category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetSkill(_ context.Context, id uuid.UUID) (*models.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.skills {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("skill %s: %w", id, models.ErrNotFound)
}

func (f *fakeStore) CreateSkill(_ context.Context, in models.SkillInput) (*models.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := models.Skill{ID: uuid.New(), Name: in.Name, Category: in.Category, Level: in.Level, Icon: in.Icon}
	f.skills = append(f.skills, s)
	return &s, nil
}

func (f *fakeStore) UpdateSkill(_ context.Context, id uuid.UUID, in models.SkillInput) (*models.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.skills {
		if f.skills[i].ID == id {
			f.skills[i].Name, f.skills[i].Category = in.Name, in.Category
			f.skills[i].Level, f.skills[i].Icon = in.Level, in.Icon
			out := f.skills[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("skill %s: %w", id, models.ErrNotFound)
}

func (f *fakeStore) DeleteSkill(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.skills {
		if f.skills[i].ID == id {
			f.skills = append(f.skills[:i], f.skills[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("skill %s: %w", id, models.ErrNotFound)
}

func (f *fakeStore) CreateContact(_ context.Context, in models.ContactInput) (*models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Contact{ID: uuid.New(), Name: in.Name, Email: in.Email, Subject: in.Subject, Message: in.Message, CreatedAt: time.Now()}
	f.contacts = append([]models.Contact{c}, f.contacts...)
	return &c, nil
}

func (f *fakeStore) ListContacts(_ context.Context, _ database.ContactFilter) ([]models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Contact{}, f.contacts...), nil
}

func (f *fakeStore) ListExperiences(context.Context) ([]models.Experience, error) {
	return []models.Experience{{ID: uuid.New(), Company: "Acme", Position: "Engineer"}}, nil
}

func (f *fakeStore) ListEducation(context.Context) ([]models.Education, error) {
	return []models.Education{}, nil
}

func (f *fakeStore) CurrentCV(context.Context) (*models.CVDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cv == nil {
		return nil, fmt.Errorf("cv: %w", models.ErrNotFound)
	}
	doc := *f.cv
	return &doc, nil
}

func (f *fakeStore) ReplaceCV(_ context.Context, doc models.CVDocument) (*models.CVDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc.UploadedAt = time.Now().UTC()
	f.cv = &doc
	out := doc
	return &out, nil
}

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "hunter22"
)

func (f *fakeStore) AuthenticateAdmin(_ context.Context, email, password string) (*models.Admin, error) {
	if email != testAdminEmail || password != testAdminPassword {
		return nil, database.ErrInvalidCredentials
	}
	return &models.Admin{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Email: email}, nil
}

type fakeSessions struct {
	mu     sync.Mutex
	active map[string]*models.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{active: map[string]*models.Session{}}
}

func (s *fakeSessions) Issue(_ context.Context, admin models.Admin) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &models.Session{
		AccessToken: uuid.NewString(),
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(time.Hour).UTC(),
		User:        models.SessionUser{ID: admin.ID, Email: admin.Email},
	}
	s.active[sess.AccessToken] = sess
	return sess, nil
}

func (s *fakeSessions) Lookup(_ context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.active[token]; ok {
		return sess, nil
	}
	return nil, session.ErrInvalidToken
}

func (s *fakeSessions) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, token)
	return nil
}

type fakeFiles struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeFiles() *fakeFiles { return &fakeFiles{blobs: map[string][]byte{}} }

func (f *fakeFiles) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
	return nil
}

func (f *fakeFiles) URL(_ context.Context, key string) (string, error) {
	return "https://files.test/" + key, nil
}

func (f *fakeFiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}

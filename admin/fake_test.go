package admin

import (
	"context"
	"fmt"
	"folio/models"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fakeBackend is an in-memory store with hooks for failures and for
// holding calls open.
type fakeBackend struct {
	mu        sync.Mutex
	session   *models.Session
	listeners map[int]func(*models.Session)
	nextID    int

	projects []models.Project
	skills   []models.Skill
	cv       *models.CVDocument

	calls map[string]int

	getSessionErr error
	signInErr     error
	signOutErr    error
	listErr       error
	saveErr       error
	deleteErr     error
	cvErr         error

	// hold, when set for a call name, runs before that call touches state.
	hold map[string]func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		listeners: map[int]func(*models.Session){},
		calls:     map[string]int{},
		hold:      map[string]func(){},
	}
}

func (f *fakeBackend) enter(name string) {
	f.mu.Lock()
	f.calls[name]++
	h := f.hold[name]
	f.mu.Unlock()
	if h != nil {
		h()
	}
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) setHold(name string, h func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hold[name] = h
}

func (f *fakeBackend) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// emit simulates a session change pushed by the backend.
func (f *fakeBackend) emit(sess *models.Session) {
	f.mu.Lock()
	f.session = sess
	var ls []func(*models.Session)
	for _, l := range f.listeners {
		ls = append(ls, l)
	}
	f.mu.Unlock()
	for _, l := range ls {
		l(sess)
	}
}

func testSession() *models.Session {
	return &models.Session{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        models.SessionUser{ID: uuid.New(), Email: "me@example.com"},
	}
}

func (f *fakeBackend) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	f.enter("SignIn")
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	sess := testSession()
	sess.User.Email = email
	f.emit(sess)
	return sess, nil
}

func (f *fakeBackend) GetSession(context.Context) (*models.Session, error) {
	f.enter("GetSession")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getSessionErr != nil {
		return nil, f.getSessionErr
	}
	return f.session, nil
}

func (f *fakeBackend) OnSessionChange(fn func(*models.Session)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *fakeBackend) SignOut(context.Context) error {
	f.enter("SignOut")
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.emit(nil)
	return nil
}

func (f *fakeBackend) ListProjects(context.Context) ([]models.Project, error) {
	f.enter("ListProjects")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.projects), nil
}

func (f *fakeBackend) CreateProject(_ context.Context, in models.ProjectInput) (*models.Project, error) {
	f.enter("CreateProject")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	p := models.Project{
		ID: uuid.New(), Title: in.Title, Description: in.Description,
		Technologies: in.Technologies, ImageURL: in.ImageURL,
		GithubURL: in.GithubURL, LiveURL: in.LiveURL,
		Category: in.Category, Featured: in.Featured, CreatedAt: time.Now(),
	}
	f.projects = append([]models.Project{p}, f.projects...)
	return &p, nil
}

func (f *fakeBackend) UpdateProject(_ context.Context, id uuid.UUID, in models.ProjectInput) (*models.Project, error) {
	f.enter("UpdateProject")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
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

func (f *fakeBackend) DeleteProject(_ context.Context, id uuid.UUID) error {
	f.enter("DeleteProject")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = slices.Delete(f.projects, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
}

func (f *fakeBackend) ListSkills(context.Context) ([]models.Skill, error) {
	f.enter("ListSkills")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := slices.Clone(f.skills)
	slices.SortStableFunc(out, func(a, b models.Skill) int { return b.Level - a.Level })
	return out, nil
}

func (f *fakeBackend) CreateSkill(_ context.Context, in models.SkillInput) (*models.Skill, error) {
	f.enter("CreateSkill")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	s := models.Skill{ID: uuid.New(), Name: in.Name, Category: in.Category, Level: in.Level, Icon: in.Icon}
	f.skills = append(f.skills, s)
	return &s, nil
}

func (f *fakeBackend) UpdateSkill(_ context.Context, id uuid.UUID, in models.SkillInput) (*models.Skill, error) {
	f.enter("UpdateSkill")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.skills {
		if f.skills[i].ID == id {
			f.skills[i].Name, f.skills[i].Category, f.skills[i].Level, f.skills[i].Icon = in.Name, in.Category, in.Level, in.Icon
			out := f.skills[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("skill %s: %w", id, models.ErrNotFound)
}

func (f *fakeBackend) DeleteSkill(_ context.Context, id uuid.UUID) error {
	f.enter("DeleteSkill")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.skills {
		if f.skills[i].ID == id {
			f.skills = slices.Delete(f.skills, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("skill %s: %w", id, models.ErrNotFound)
}

func (f *fakeBackend) CurrentCV(context.Context) (*models.CVDocument, error) {
	f.enter("CurrentCV")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cvErr != nil {
		return nil, f.cvErr
	}
	if f.cv == nil {
		return nil, fmt.Errorf("cv: %w", models.ErrNotFound)
	}
	doc := *f.cv
	return &doc, nil
}

func (f *fakeBackend) UploadCV(_ context.Context, filename string, data []byte) (*models.CVDocument, error) {
	f.enter("UploadCV")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cvErr != nil {
		return nil, f.cvErr
	}
	f.cv = &models.CVDocument{
		Filename:    filename,
		ContentType: models.PDFContentType,
		Size:        int64(len(data)),
		URL:         "https://files.test/cv/" + uuid.NewString() + ".pdf",
		UploadedAt:  time.Now(),
	}
	doc := *f.cv
	return &doc, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	answer  bool
	alerts  []string
	prompts []string
}

func newFakeNotifier() *fakeNotifier { return &fakeNotifier{answer: true} }

func (n *fakeNotifier) Alert(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, msg)
}

func (n *fakeNotifier) Confirm(prompt string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prompts = append(n.prompts, prompt)
	return n.answer
}

func (n *fakeNotifier) Alerts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.alerts)
}

type memCache struct {
	mu   sync.Mutex
	vals map[string]string
	err  error
}

func newMemCache() *memCache { return &memCache{vals: map[string]string{}} }

func (c *memCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.vals[key]
	return v, ok
}

func (c *memCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.vals[key] = value
	return nil
}

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

package admin

import (
	"context"
	"folio/models"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Screen is what the admin screen should currently show.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenContent
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenLogin:
		return "login"
	case ScreenContent:
		return "content"
	}
	return "unknown"
}

// SessionGuard gates the admin screen behind a session. It is created
// unmounted; Mount starts the initial check and subscribes to session
// changes, Unmount drops the subscription.
type SessionGuard struct {
	auth   Auth
	notify Notifier
	logger *zap.Logger

	mu            sync.Mutex
	mounted       bool
	loading       bool
	authenticated bool
	loggingIn     bool
	loginErr      string
	version       uint64
	unsubscribe   func()
}

func NewSessionGuard(auth Auth, notify Notifier, logger *zap.Logger) *SessionGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionGuard{auth: auth, notify: notify, logger: logger, loading: true}
}

// Mount subscribes to session changes and resolves the initial session.
// A failed check counts as no session. Mounting twice is a no-op.
func (g *SessionGuard) Mount(ctx context.Context) {
	g.mu.Lock()
	if g.mounted {
		g.mu.Unlock()
		return
	}
	g.mounted = true
	g.loading = true
	g.version++
	v := g.version
	g.mu.Unlock()

	unsubscribe := g.auth.OnSessionChange(g.onSessionChange)

	g.mu.Lock()
	g.unsubscribe = unsubscribe
	g.mu.Unlock()

	sess, err := g.auth.GetSession(ctx)
	if err != nil {
		g.logger.Warn("session check failed", zap.Error(err))
		sess = nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false
	// A session change or login while the check was pending is newer.
	if g.version == v {
		g.authenticated = sess != nil
	}
}

// Unmount removes the session listener.
func (g *SessionGuard) Unmount() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.mounted = false
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (g *SessionGuard) onSessionChange(sess *models.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.version++
	g.authenticated = sess != nil
}

// Login signs in. A rejection is kept as LoginError and leaves the state
// unchanged.
func (g *SessionGuard) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		err := &models.ValidationError{Field: "email", Message: "email and password are required"}
		g.setLoginErr(err.Error())
		return err
	}

	g.mu.Lock()
	if g.loggingIn {
		g.mu.Unlock()
		return ErrSubmitInFlight
	}
	g.loggingIn = true
	g.mu.Unlock()

	_, err := g.auth.SignIn(ctx, email, password)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loggingIn = false
	if err != nil {
		g.loginErr = err.Error()
		return err
	}
	g.version++
	g.authenticated = true
	g.loading = false
	g.loginErr = ""
	return nil
}

// Logout asks for confirmation, drops to the login screen at once and
// then signs out. A sign-out failure is only logged. It reports whether
// the operator confirmed.
func (g *SessionGuard) Logout(ctx context.Context) bool {
	if !g.notify.Confirm("Are you sure you want to log out?") {
		return false
	}

	g.mu.Lock()
	g.version++
	g.authenticated = false
	g.loginErr = ""
	g.mu.Unlock()

	if err := g.auth.SignOut(ctx); err != nil {
		g.logger.Warn("sign out failed", zap.Error(err))
	}
	return true
}

func (g *SessionGuard) setLoginErr(msg string) {
	g.mu.Lock()
	g.loginErr = msg
	g.mu.Unlock()
}

func (g *SessionGuard) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// LoginError is the last sign-in rejection, empty after a success.
func (g *SessionGuard) LoginError() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loginErr
}

func (g *SessionGuard) Screen() Screen {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case g.loading:
		return ScreenLoading
	case g.authenticated:
		return ScreenContent
	default:
		return ScreenLogin
	}
}

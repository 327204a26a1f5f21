package client

import (
	"context"
	"encoding/json"
	"errors"
	"folio/models"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// SignIn exchanges credentials for a session and makes it current. A
// wrong email or password comes back as an *APIError carrying the API's
// message that matches ErrInvalidCredentials.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	body, err := jsonBody(models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var sess models.Session
	err = c.do(ctx, request{method: http.MethodPost, path: "/api/auth/login", body: body}, &sess)
	if err != nil {
		return nil, err
	}

	c.setSession(&sess)
	return &sess, nil
}

// GetSession returns the current session after confirming it with the
// API, or nil when there is none. A session the API no longer accepts is
// dropped.
func (c *Client) GetSession(ctx context.Context) (*models.Session, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if c.currentSession() == nil {
		return nil, nil
	}

	var sess models.Session
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/auth/session", auth: true}, &sess)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

// SignOut revokes the session on the API and forgets it locally. The local
// session is cleared even when the API call fails.
func (c *Client) SignOut(ctx context.Context) error {
	if c.currentSession() == nil {
		return nil
	}
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/logout", auth: true}, nil)
	c.setSession(nil)
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	return nil
}

// OnSessionChange registers fn to be called with the new session, or nil
// once it is gone. The returned func removes it.
func (c *Client) OnSessionChange(fn func(*models.Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Client) currentSession() *models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// setSession replaces the session and notifies listeners outside the lock.
func (c *Client) setSession(sess *models.Session) {
	c.mu.Lock()
	changed := c.session != sess
	c.session = sess
	listeners := make([]func(*models.Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	if !changed {
		return
	}
	c.persistSession(sess)
	if sess == nil {
		c.logger.Info("session cleared")
	} else {
		c.logger.Info("session started", zap.String("email", sess.User.Email))
	}
	for _, fn := range listeners {
		fn(sess)
	}
}

// SessionCache is where a Client keeps its session between runs.
// *FileCache implements it.
type SessionCache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

const sessionCacheKey = "session"

// restoreSession loads a cached, unexpired session without confirming it;
// GetSession does that.
func (c *Client) restoreSession() {
	if c.cache == nil {
		return
	}
	raw, ok := c.cache.Get(sessionCacheKey)
	if !ok {
		return
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.AccessToken == "" || sess.Expired(time.Now()) {
		c.logger.Debug("discarding cached session", zap.Error(err))
		if err := c.cache.Delete(sessionCacheKey); err != nil {
			c.logger.Warn("failed to drop cached session", zap.Error(err))
		}
		return
	}

	c.mu.Lock()
	c.session = &sess
	c.mu.Unlock()
	c.logger.Debug("restored session", zap.String("email", sess.User.Email))
}

func (c *Client) persistSession(sess *models.Session) {
	if c.cache == nil {
		return
	}
	if sess == nil {
		if err := c.cache.Delete(sessionCacheKey); err != nil {
			c.logger.Warn("failed to drop cached session", zap.Error(err))
		}
		return
	}

	data, err := json.Marshal(sess)
	if err == nil {
		err = c.cache.Set(sessionCacheKey, string(data))
	}
	if err != nil {
		c.logger.Warn("failed to cache session", zap.Error(err))
	}
}

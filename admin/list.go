package admin

import (
	"context"
	"errors"
	"fmt"
	"folio/models"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// List holds the last successful load of one record kind, in the order
// the store returned it. Rows are never patched locally; every change is
// followed by a reload.
type List[T any] struct {
	name   string
	load   func(context.Context) ([]T, error)
	remove func(context.Context, uuid.UUID) error
	idOf   func(T) uuid.UUID
	notify Notifier
	logger *zap.Logger

	mu      sync.Mutex
	items   []T
	loaded  bool
	loading bool
	err     error
	gen     uint64
}

// ListConfig wires a List to its backend calls.
type ListConfig[T any] struct {
	Name   string // singular, used in prompts: "project"
	Load   func(context.Context) ([]T, error)
	Remove func(context.Context, uuid.UUID) error
	IDOf   func(T) uuid.UUID
}

func NewList[T any](cfg ListConfig[T], notify Notifier, logger *zap.Logger) *List[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List[T]{
		name:   cfg.Name,
		load:   cfg.Load,
		remove: cfg.Remove,
		idOf:   cfg.IDOf,
		notify: notify,
		logger: logger.With(zap.String("list", cfg.Name)),
	}
}

func NewProjectList(b ProjectBackend, notify Notifier, logger *zap.Logger) *List[models.Project] {
	return NewList(ListConfig[models.Project]{
		Name:   "project",
		Load:   b.ListProjects,
		Remove: b.DeleteProject,
		IDOf:   func(p models.Project) uuid.UUID { return p.ID },
	}, notify, logger)
}

func NewSkillList(b SkillBackend, notify Notifier, logger *zap.Logger) *List[models.Skill] {
	return NewList(ListConfig[models.Skill]{
		Name:   "skill",
		Load:   b.ListSkills,
		Remove: b.DeleteSkill,
		IDOf:   func(s models.Skill) uuid.UUID { return s.ID },
	}, notify, logger)
}

// Reload fetches the list. On failure the previous rows stay and the
// operator is alerted. A reload overtaken by a newer one or by
// Invalidate returns ErrStale and changes nothing.
func (l *List[T]) Reload(ctx context.Context) error {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.loading = true
	l.mu.Unlock()

	items, err := l.load(ctx)

	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		l.logger.Debug("dropped stale reload")
		return ErrStale
	}
	l.loading = false
	l.err = err
	if err == nil {
		l.items = items
		l.loaded = true
	}
	l.mu.Unlock()

	if err != nil {
		l.notify.Alert(fmt.Sprintf("Failed to load %ss: %v", l.name, err))
		return err
	}
	return nil
}

func (l *List[T]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.loading = false
}

// Delete asks for confirmation, deletes id and reloads. A record that is
// already gone produces one notice and still reloads. Any other failure
// is alerted and leaves the rows as they were. It reports whether the
// operator confirmed.
func (l *List[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if !l.notify.Confirm(fmt.Sprintf("Are you sure you want to delete this %s?", l.name)) {
		return false, nil
	}

	err := l.remove(ctx, id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		l.notify.Alert(fmt.Sprintf("This %s was already deleted.", l.name))
	case err != nil:
		l.logger.Warn("delete failed", zap.String("id", id.String()), zap.Error(err))
		l.notify.Alert(fmt.Sprintf("Error deleting %s: %v", l.name, err))
		return true, err
	}

	if err := l.Reload(ctx); err != nil && !errors.Is(err, ErrStale) {
		return true, err
	}
	return true, nil
}

// Items returns a copy of the rows from the last successful load.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Find returns the row with id from the last successful load.
func (l *List[T]) Find(id uuid.UUID) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range l.items {
		if l.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Loaded reports whether any load has succeeded.
func (l *List[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Err is the error of the latest completed reload, if it failed.
func (l *List[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Reset forgets every row, for example after logout.
func (l *List[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.items = nil
	l.loaded = false
	l.loading = false
	l.err = nil
}

package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mode says whether an open editor creates a record or updates one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// editorConfig plugs one record kind into editor. D is the draft, R the
// persisted record and I the prepared input sent to the backend.
type editorConfig[D, R, I any] struct {
	name       string
	newDraft   func() D
	fromRecord func(R) D
	cloneDraft func(D) D
	idOf       func(R) uuid.UUID
	prepare    func(D) (I, error)
	create     func(context.Context, I) error
	update     func(context.Context, uuid.UUID, I) error
}

// editor is the form state shared by ProjectEditor and SkillEditor.
type editor[D, R, I any] struct {
	cfg    editorConfig[D, R, I]
	list   Reloader
	notify Notifier
	logger *zap.Logger

	mu         sync.Mutex
	open       bool
	editID     uuid.UUID
	draft      D
	submitting bool
	err        error
	// session changes on every open and close so a submit that finishes
	// after the form was reopened does not reset the new form.
	session uint64
}

func newEditor[D, R, I any](cfg editorConfig[D, R, I], list Reloader, notify Notifier, logger *zap.Logger) *editor[D, R, I] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &editor[D, R, I]{
		cfg:    cfg,
		list:   list,
		notify: notify,
		logger: logger.With(zap.String("editor", cfg.name)),
		draft:  cfg.newDraft(),
	}
}

// OpenCreate opens an empty form with the default values.
func (e *editor[D, R, I]) OpenCreate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session++
	e.open = true
	e.editID = uuid.Nil
	e.draft = e.cfg.newDraft()
	e.err = nil
}

// OpenEdit opens the form pre-filled from rec. The id is kept aside and
// is not editable.
func (e *editor[D, R, I]) OpenEdit(rec R) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session++
	e.open = true
	e.editID = e.cfg.idOf(rec)
	e.draft = e.cfg.fromRecord(rec)
	e.err = nil
}

// Close discards the form.
func (e *editor[D, R, I]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session++
	e.open = false
	e.editID = uuid.Nil
	e.draft = e.cfg.newDraft()
	e.err = nil
}

func (e *editor[D, R, I]) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

func (e *editor[D, R, I]) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editID != uuid.Nil {
		return ModeEdit
	}
	return ModeCreate
}

// EditID is the id of the record being edited, uuid.Nil in create mode.
func (e *editor[D, R, I]) EditID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editID
}

// Draft returns a copy of the current form values.
func (e *editor[D, R, I]) Draft() D {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.cloneDraft(e.draft)
}

func (e *editor[D, R, I]) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

// Err is the last validation or save error shown on the form.
func (e *editor[D, R, I]) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// edit applies fn to the draft of an open form.
func (e *editor[D, R, I]) edit(fn func(*D)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return ErrEditorClosed
	}
	fn(&e.draft)
	return nil
}

// Submit validates the draft and creates or updates the record. A
// validation failure makes no backend call. On success the form closes
// and the list reloads; on failure the form stays open with its draft.
func (e *editor[D, R, I]) Submit(ctx context.Context) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrEditorClosed
	}
	if e.submitting {
		e.mu.Unlock()
		return ErrSubmitInFlight
	}
	in, err := e.cfg.prepare(e.draft)
	if err != nil {
		e.err = err
		e.mu.Unlock()
		return err
	}
	e.submitting = true
	e.err = nil
	id := e.editID
	session := e.session
	e.mu.Unlock()

	if id != uuid.Nil {
		err = e.cfg.update(ctx, id, in)
	} else {
		err = e.cfg.create(ctx, in)
	}

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		if e.session == session {
			e.err = err
		}
		e.mu.Unlock()
		e.logger.Warn("save failed", zap.Error(err))
		e.notify.Alert(fmt.Sprintf("Error saving %s: %v", e.cfg.name, err))
		return err
	}
	if e.session == session {
		e.session++
		e.open = false
		e.editID = uuid.Nil
		e.draft = e.cfg.newDraft()
	}
	e.mu.Unlock()

	if err := e.list.Reload(ctx); err != nil && !errors.Is(err, ErrStale) {
		e.logger.Warn("reload after save failed", zap.Error(err))
	}
	return nil
}

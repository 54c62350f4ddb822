// Package session owns the location selection for one run of the program:
// it restores the saved selection once, applies transitions, persists after
// each one and serves the derived view.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jask/placefilter/internal/catalog"
	"github.com/jask/placefilter/internal/metrics"
	"github.com/jask/placefilter/internal/selection"
	"github.com/jask/placefilter/internal/view"
)

// Persister is the persistence boundary the session saves through.
type Persister interface {
	Load(ctx context.Context) selection.Selection
	Save(sel selection.Selection)
	Close(ctx context.Context) error
}

type Deps struct {
	Catalog   *catalog.Catalog
	Persister Persister
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	// ID overrides the generated session id.
	ID uuid.UUID
}

type Session struct {
	id       uuid.UUID
	catalog  *catalog.Catalog
	cascade  *selection.Cascade
	persist  Persister
	memo     view.Memo
	log      *slog.Logger
	metrics  *metrics.Metrics
	restored selection.Selection
}

// New restores the persisted selection and wires saving after every
// transition.
func New(ctx context.Context, deps Deps) *Session {
	id := deps.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		id:      id,
		catalog: deps.Catalog,
		persist: deps.Persister,
		log:     logger.With("session", id.String()),
		metrics: deps.Metrics,
	}
	initial := selection.Unselected()
	if s.persist != nil {
		initial = s.persist.Load(ctx)
	}
	s.restored = initial
	s.cascade = selection.NewCascade(deps.Catalog, initial)
	if s.persist != nil {
		s.cascade.Subscribe(s.persist.Save)
	}
	s.cascade.Subscribe(func(sel selection.Selection) {
		s.log.Debug("selection changed", "selection", sel.String())
	})
	s.log.Info("session started", "restored", initial.String())
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

func (s *Session) Current() selection.Selection { return s.cascade.Current() }

// Restored is the selection recovered from storage at startup.
func (s *Session) Restored() selection.Selection { return s.restored }

// Options lists the choices for the picker at level.
func (s *Session) Options(l selection.Level) []string {
	return view.Options(s.catalog, s.cascade.Current(), l)
}

// View returns the derived view of the current selection, memoized.
func (s *Session) View() view.View {
	return s.memo.View(s.catalog, s.cascade.Current())
}

// Select applies the toggle contract at level.
func (s *Session) Select(level selection.Level, name string) error {
	err := s.cascade.Select(level, name)
	s.metrics.Transition("select_"+level.String(), result(err))
	if err != nil {
		s.log.Warn("rejected selection", "level", level.String(), "value", name, "err", err)
	}
	return err
}

// Clear empties level and everything below it.
func (s *Session) Clear(level selection.Level) {
	s.cascade.Clear(level)
	s.metrics.Transition("clear_"+level.String(), "ok")
}

// Reset empties the selection.
func (s *Session) Reset() {
	s.cascade.Reset()
	s.metrics.Transition("reset", "ok")
}

// Close flushes pending persistence.
func (s *Session) Close(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	return s.persist.Close(ctx)
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, selection.ErrPreconditionViolation):
		return "precondition"
	default:
		return "invalid"
	}
}

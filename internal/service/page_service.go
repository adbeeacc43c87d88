package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/mtlprog/catpage/internal/domain"
	"github.com/mtlprog/catpage/internal/page"
	"github.com/mtlprog/catpage/internal/tracing"
)

// StateStore persists page state between requests and restarts.
//
// Put writes a whole state and is only used when a session is created or
// its stored state is replaced. Mutations write just the fields they
// changed, so a concurrent ResetRatings is never overwritten by a stale
// snapshot of another field.
type StateStore interface {
	Load(ctx context.Context, sessionID string) (*domain.PageState, error)
	Put(ctx context.Context, state *domain.PageState) error
	SaveRating(ctx context.Context, sessionID string, index, rating int) error
	SaveSession(ctx context.Context, sessionID string, tab domain.Tab, funFact string) error
	ResetRatings(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// PageService maps visitor sessions to page controllers and keeps the store
// in sync with every mutation.
type PageService struct {
	store  StateStore
	ttl    time.Duration
	opts   []page.Option
	now    func() time.Time
	tracer trace.Tracer

	mu       sync.Mutex
	sessions map[string]*session
	// resets counts ResetRatings calls; a load that straddles one is retried.
	resets uint64
	loads  singleflight.Group
}

type session struct {
	// mu serializes mutate-then-save so the store sees writes in order.
	mu       sync.Mutex
	ctrl     *page.Controller
	lastSeen time.Time
}

// NewPageService creates a new PageService. Controllers idle for longer than
// ttl are dropped from memory by EvictIdle; their state stays in the store.
func NewPageService(store StateStore, ttl time.Duration, opts ...page.Option) *PageService {
	return &PageService{
		store:    store,
		ttl:      ttl,
		opts:     opts,
		now:      time.Now,
		tracer:   tracing.Tracer("github.com/mtlprog/catpage/internal/service"),
		sessions: make(map[string]*session),
	}
}

// View returns the current page for a session, creating it on first visit.
func (s *PageService) View(ctx context.Context, sessionID string) (page.View, error) {
	ctx, span := s.start(ctx, "PageService.View", sessionID)
	defer span.End()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return page.View{}, fail(span, err)
	}
	return sess.ctrl.View(), nil
}

// RateBreed sets the rating of the breed at index for a session.
func (s *PageService) RateBreed(ctx context.Context, sessionID string, index, value int) (page.View, error) {
	ctx, span := s.start(ctx, "PageService.RateBreed", sessionID,
		attribute.Int("breed.index", index),
		attribute.Int("breed.rating", value),
	)
	defer span.End()

	view, err := s.mutate(ctx, sessionID, func(ctrl *page.Controller) error {
		return ctrl.SetRating(index, value)
	}, func(ctx context.Context, _ *page.Controller) error {
		return s.store.SaveRating(ctx, sessionID, index, value)
	})
	if err != nil {
		return page.View{}, fail(span, err)
	}

	slog.Info("breed rated",
		"session_id", sessionID,
		"breed", view.Breeds[index].Name,
		"rating", value,
	)
	return view, nil
}

// SelectTab switches the visible panel for a session.
func (s *PageService) SelectTab(ctx context.Context, sessionID string, tab domain.Tab) (page.View, error) {
	ctx, span := s.start(ctx, "PageService.SelectTab", sessionID,
		attribute.String("tab", string(tab)),
	)
	defer span.End()

	view, err := s.mutate(ctx, sessionID, func(ctrl *page.Controller) error {
		return ctrl.SetActiveTab(tab)
	}, s.saveSession(sessionID))
	if err != nil {
		return page.View{}, fail(span, err)
	}

	slog.Debug("tab selected", "session_id", sessionID, "tab", tab)
	return view, nil
}

// ShuffleFact picks a new random fun fact for a session.
func (s *PageService) ShuffleFact(ctx context.Context, sessionID string) (page.View, error) {
	ctx, span := s.start(ctx, "PageService.ShuffleFact", sessionID)
	defer span.End()

	view, err := s.mutate(ctx, sessionID, func(ctrl *page.Controller) error {
		ctrl.PickRandomFact()
		return nil
	}, s.saveSession(sessionID))
	if err != nil {
		return page.View{}, fail(span, err)
	}

	slog.Debug("fun fact shuffled", "session_id", sessionID)
	return view, nil
}

// Subscribe observes every change to a session's page. The returned function
// stops the subscription.
func (s *PageService) Subscribe(ctx context.Context, sessionID string, fn page.Listener) (func(), error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.ctrl.Subscribe(fn), nil
}

// ResetRatings clears every persisted rating and every rating held by a
// cached controller. Subscribers of cached sessions are notified, so open
// streams stay attached and see the reset.
func (s *PageService) ResetRatings(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PageService.ResetRatings")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Hold every session lock so no rating write lands between the store
	// reset and the in-memory one.
	locked := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sess.mu.Lock()
		locked = append(locked, sess)
	}
	defer func() {
		for _, sess := range locked {
			sess.mu.Unlock()
		}
	}()

	n, err := s.store.ResetRatings(ctx)
	if err != nil {
		return 0, fail(span, fmt.Errorf("reset ratings: %w", err))
	}
	s.resets++

	for _, sess := range locked {
		sess.ctrl.ResetRatings()
	}

	slog.Info("ratings reset", "sessions", n, "cached", len(locked))
	return n, nil
}

// EvictIdle drops controllers not used since now minus the TTL and returns
// how many were removed. Sessions with live subscribers are kept.
func (s *PageService) EvictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.ctrl.ListenerCount() > 0 {
			continue
		}
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// RunEviction calls EvictIdle every interval until ctx is done.
func (s *PageService) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if n := s.EvictIdle(t); n > 0 {
				slog.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}

// Ping checks that the state store is reachable.
func (s *PageService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ActiveSessions returns the number of cached controllers.
func (s *PageService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *PageService) mutate(
	ctx context.Context,
	sessionID string,
	apply func(*page.Controller) error,
	persist func(context.Context, *page.Controller) error,
) (page.View, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return page.View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := apply(sess.ctrl); err != nil {
		return page.View{}, err
	}

	if err := persist(ctx, sess.ctrl); err != nil {
		return page.View{}, fmt.Errorf("save session %s: %w", sessionID, err)
	}
	sess.lastSeen = s.now()

	return sess.ctrl.View(), nil
}

// saveSession persists the tab and fun fact of a controller.
func (s *PageService) saveSession(sessionID string) func(context.Context, *page.Controller) error {
	return func(ctx context.Context, ctrl *page.Controller) error {
		return s.store.SaveSession(ctx, sessionID, ctrl.ActiveTab(), ctrl.FunFact())
	}
}

// session returns the cached controller for sessionID, loading or creating
// it on a miss. Concurrent misses for one session share a single load.
func (s *PageService) session(ctx context.Context, sessionID string) (*session, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSession, sessionID)
	}

	if sess, ok := s.cached(sessionID); ok {
		return sess, nil
	}

	v, err, _ := s.loads.Do(sessionID, func() (any, error) {
		for {
			s.mu.Lock()
			if sess, ok := s.sessions[sessionID]; ok {
				s.mu.Unlock()
				return sess, nil
			}
			resets := s.resets
			s.mu.Unlock()

			ctrl, err := s.load(ctx, sessionID)
			if err != nil {
				return nil, err
			}

			s.mu.Lock()
			if s.resets != resets {
				// Ratings were reset while loading; read them again.
				s.mu.Unlock()
				continue
			}
			sess := &session{ctrl: ctrl, lastSeen: s.now()}
			s.sessions[sessionID] = sess
			s.mu.Unlock()
			return sess, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return v.(*session), nil
}

func (s *PageService) cached(sessionID string) (*session, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	sess.mu.Lock()
	sess.lastSeen = s.now()
	sess.mu.Unlock()
	return sess, true
}

func (s *PageService) load(ctx context.Context, sessionID string) (*page.Controller, error) {
	state, err := s.store.Load(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		ctrl := page.New(s.opts...)
		if err := s.put(ctx, sessionID, ctrl); err != nil {
			return nil, err
		}
		slog.Info("session started", "session_id", sessionID)
		return ctrl, nil
	case err != nil:
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	ctrl, err := page.Restore(*state, s.opts...)
	if err != nil {
		slog.Warn("discarding unreadable page state", "session_id", sessionID, "error", err)
		ctrl = page.New(s.opts...)
		if err := s.put(ctx, sessionID, ctrl); err != nil {
			return nil, err
		}
	}
	return ctrl, nil
}

func (s *PageService) put(ctx context.Context, sessionID string, ctrl *page.Controller) error {
	state := ctrl.Snapshot()
	state.SessionID = sessionID
	if err := s.store.Put(ctx, &state); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

func (s *PageService) start(ctx context.Context, name, sessionID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("session.id", sessionID))
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

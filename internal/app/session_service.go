package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/company-directory/internal/app/browser"
	"github.com/jsamuelsen11/company-directory/internal/domain"
	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
	"github.com/jsamuelsen11/company-directory/internal/platform/telemetry"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

var _ ports.SessionService = (*SessionService)(nil)

// SessionService implements ports.SessionService. Each session owns a
// browser.Controller reading from the shared collection. Sessions idle for
// longer than the configured timeout are removed by Sweep.
type SessionService struct {
	collection  browser.Collection
	opts        browser.Options
	idleTimeout time.Duration
	maxSessions int
	metrics     *telemetry.Metrics
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	ctrl     *browser.Controller
	lastSeen time.Time
}

// NewSessionService creates a SessionService. Controller options come from
// dirCfg; limits and idle timeout from sessCfg. A nil metrics disables metric
// recording.
func NewSessionService(
	dirCfg *config.DirectoryConfig,
	sessCfg *config.SessionConfig,
	collection browser.Collection,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		collection:  collection,
		opts:        browser.OptionsFromConfig(dirCfg),
		idleTimeout: sessCfg.IdleTimeout,
		maxSessions: sessCfg.MaxSessions,
		metrics:     metrics,
		logger:      logging.OrDiscard(logger),
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// CreateSession starts a session with no filters on page 1.
func (s *SessionService) CreateSession(ctx context.Context) (*ports.Session, error) {
	s.mu.Lock()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "session limit reached",
			slog.String("operation", "CreateSession"),
			slog.Int("max_sessions", s.maxSessions),
		)
		return nil, fmt.Errorf("%d sessions open: %w", s.maxSessions, domain.ErrCapacity)
	}

	id := uuid.NewString()
	sess := &session{
		ctrl:     browser.New(s.collection, s.opts),
		lastSeen: s.now(),
	}
	s.sessions[id] = sess
	s.mu.Unlock()

	s.recordActive(ctx, 1)
	s.logger.InfoContext(ctx, "session created", slog.String("session_id", id))

	return s.view(id, sess), nil
}

// GetSession returns the current view of a session and marks it active.
func (s *SessionService) GetSession(ctx context.Context, id string) (*ports.Session, error) {
	sess, err := s.touch(ctx, id, "GetSession")
	if err != nil {
		return nil, err
	}
	return s.view(id, sess), nil
}

// UpdateSession applies update to the session's controller. Fields are
// applied in the order reset, search, locations, industries, sort, page, so
// an explicit page survives the page-1 reset that filter changes cause.
func (s *SessionService) UpdateSession(ctx context.Context, id string, update ports.SessionUpdate) (*ports.Session, error) {
	if update.SortOrder != nil && !update.SortOrder.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"sort_order": "must be asc or desc",
		}}
	}
	if update.Page != nil && *update.Page < 1 {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"page": "must be at least 1",
		}}
	}

	sess, err := s.touch(ctx, id, "UpdateSession")
	if err != nil {
		return nil, err
	}

	ctrl := sess.ctrl
	if update.Reset {
		ctrl.Reset()
	}
	if update.Search != nil {
		ctrl.SetSearch(*update.Search)
	}
	if update.CommitSearch {
		ctrl.FlushSearch()
	}
	if update.Locations != nil {
		ctrl.SetLocations(*update.Locations)
	}
	if update.Industries != nil {
		ctrl.SetIndustries(*update.Industries)
	}
	if update.SortOrder != nil {
		if err := ctrl.SetSortOrder(*update.SortOrder); err != nil {
			return nil, err
		}
	}
	if update.Page != nil {
		ctrl.SetPage(*update.Page)
	}

	return s.view(id, sess), nil
}

// DeleteSession stops a session and drops its pending search.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}

	sess.ctrl.Close()
	s.recordActive(ctx, -1)
	s.logger.InfoContext(ctx, "session deleted", slog.String("session_id", id))
	return nil
}

// Sweep removes sessions idle for longer than the idle timeout and returns
// how many were removed. A non-positive timeout disables expiry.
func (s *SessionService) Sweep(ctx context.Context) int {
	if s.idleTimeout <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTimeout)

	var expired []*session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.ctrl.Close()
	}
	if n := len(expired); n > 0 {
		s.recordActive(ctx, -int64(n))
		s.logger.InfoContext(ctx, "expired idle sessions", slog.Int("count", n))
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Len returns the number of open sessions.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops every session.
func (s *SessionService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.ctrl.Close()
	}
	if n := len(sessions); n > 0 {
		s.recordActive(context.Background(), -int64(n))
	}
}

func (s *SessionService) touch(ctx context.Context, id, operation string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		s.logger.DebugContext(ctx, "session not found",
			slog.String("operation", operation),
			slog.String("session_id", id),
		)
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}
	sess.lastSeen = s.now()
	return sess, nil
}

func (s *SessionService) view(id string, sess *session) *ports.Session {
	s.mu.Lock()
	lastSeen := sess.lastSeen
	s.mu.Unlock()

	return &ports.Session{
		ID:       id,
		View:     sess.ctrl.View(),
		LastSeen: lastSeen,
	}
}

func (s *SessionService) recordActive(ctx context.Context, delta int64) {
	if s.metrics == nil {
		return
	}
	s.metrics.SessionsActive.Add(ctx, delta)
}

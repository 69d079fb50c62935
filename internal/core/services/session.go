package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
	"github.com/article-avenue/avenue-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService caches the authenticated identity process-wide. The
// backend is asked once; subsequent reads are served from memory until
// the cache is invalidated by sign-out or a 401/403 on any call.
type SessionService struct {
	backend driven.Backend

	mu      sync.Mutex
	session *domain.Session
}

// NewSessionService creates a new session service.
func NewSessionService(backend driven.Backend) *SessionService {
	return &SessionService{backend: backend}
}

// Current returns the cached session, fetching it on first use.
func (s *SessionService) Current(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return *s.session, nil
	}

	sess, err := s.backend.SessionData(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("fetch session data: %w", err)
	}
	if !sess.Valid() {
		return domain.Session{}, domain.ErrNotAuthenticated
	}

	logger.Debug("session established for %s", sess.Username)
	s.session = &sess
	return sess, nil
}

// SignIn establishes a session from credentials and caches the identity.
func (s *SessionService) SignIn(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return domain.Session{}, domain.ErrInvalidInput
	}

	if err := s.backend.SignIn(ctx, creds); err != nil {
		return domain.Session{}, fmt.Errorf("sign in: %w", err)
	}

	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	return s.Current(ctx)
}

// SignOut ends the session and drops the cache. The cache is dropped
// even when the backend call fails; the cookie may already be gone.
func (s *SessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.backend.SignOut(ctx); err != nil {
		logger.Warn("sign out request failed: %v", err)
		return err
	}
	return nil
}

// invalidateOnAuthError drops the cached identity when a backend call
// was rejected with 401/403. Every service routes its backend errors
// through here so no caller keeps acting on a stale session.
func invalidateOnAuthError(session driving.SessionService, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		session.Invalidate()
	}
}

// Invalidate drops the cached identity without a network call.
func (s *SessionService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		logger.Debug("session cache invalidated")
	}
	s.session = nil
}

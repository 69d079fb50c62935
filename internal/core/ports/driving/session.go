package driving

import (
	"context"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// SessionService owns the process-wide authenticated identity. The
// identity is fetched once and cached; every component reads through
// this service instead of re-querying the backend. The cache is dropped
// on explicit sign-out and whenever any backend call is rejected with
// 401/403.
type SessionService interface {
	// Current returns the cached session, fetching it on first use.
	// Returns domain.ErrNotAuthenticated when no session exists.
	Current(ctx context.Context) (domain.Session, error)

	// SignIn establishes a session from credentials and caches the
	// resulting identity.
	SignIn(ctx context.Context, creds domain.Credentials) (domain.Session, error)

	// SignOut ends the session and drops the cache.
	SignOut(ctx context.Context) error

	// Invalidate drops the cached identity without a network call.
	// Called when any backend response indicates the session is gone.
	Invalidate()
}

package driving

import (
	"context"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// AuthorService serves author pages, registration, and the
// become-an-author application.
type AuthorService interface {
	// Profile fetches an author's public profile.
	Profile(ctx context.Context, username string) (*domain.AuthorProfile, error)

	// Articles lists an author's public articles.
	Articles(ctx context.Context, username string) ([]domain.Article, error)

	// Apply submits an author application. An empty response is
	// rejected with domain.ErrEmptyResponse before any network call.
	Apply(ctx context.Context, response string) error

	// SignUp registers a new account.
	SignUp(ctx context.Context, req domain.SignUpRequest) error
}

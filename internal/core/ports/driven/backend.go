package driven

import (
	"context"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// ArticlePayload carries everything one create/update submission needs.
// Body and Description are serialized through the rawdoc codec by the
// backend adapter; the thumbnail's tagged optional decides between a
// file part and a stored-path string in the multipart form.
type ArticlePayload struct {
	Title       string
	Username    string // create calls only; updates target by id
	Category    domain.Category
	Body        *domain.Document
	Description *domain.Document
	Thumbnail   domain.Thumbnail
}

// Backend is the persistence protocol client: every request/response
// exchange with the blogging backend. Implementations attach the
// cookie-backed session to authenticated calls and translate 401/403
// responses to domain.ErrUnauthorized.
type Backend interface {
	// CheckSession reports whether the current cookie session is
	// authenticated.
	CheckSession(ctx context.Context) error

	// SessionData returns the authenticated identity.
	SessionData(ctx context.Context) (domain.Session, error)

	// SignIn establishes a cookie session from credentials.
	SignIn(ctx context.Context, creds domain.Credentials) error

	// SignOut discards the session cookie.
	SignOut(ctx context.Context) error

	// SignUp registers a new account. The profile picture is optional.
	SignUp(ctx context.Context, req domain.SignUpRequest) error

	// ArticlesByUsername lists an author's completed articles.
	ArticlesByUsername(ctx context.Context, username string) ([]domain.Article, error)

	// DraftsByUsername lists an author's drafts. Ownership is enforced
	// by the backend against the session.
	DraftsByUsername(ctx context.Context, username string) ([]domain.Article, error)

	// CategorizedFeed fetches the public feed, bucketed by category.
	CategorizedFeed(ctx context.Context) (*domain.CategorizedFeed, error)

	// ArticleByUsernameAndName fetches one public article. name is the
	// title with slug hyphens already restored to spaces.
	ArticleByUsernameAndName(ctx context.Context, username, name string) (*domain.Article, error)

	// AuthorInfo fetches an author's public profile.
	AuthorInfo(ctx context.Context, username string) (*domain.AuthorProfile, error)

	// CreateCompleted creates a publicly visible article and returns
	// its id.
	CreateCompleted(ctx context.Context, p ArticlePayload) (int64, error)

	// CreateDraft creates a draft and returns its id.
	CreateDraft(ctx context.Context, p ArticlePayload) (int64, error)

	// UpdateDraft overwrites an existing draft in place.
	UpdateDraft(ctx context.Context, id int64, p ArticlePayload) error

	// UpdateCompleted overwrites an existing completed article in place.
	UpdateCompleted(ctx context.Context, id int64, p ArticlePayload) error

	// DeleteDraft removes a draft by id.
	DeleteDraft(ctx context.Context, id int64) error

	// DeleteCompleted removes a completed article by id.
	DeleteCompleted(ctx context.Context, id int64) error

	// SubmitAuthorResponse submits an author application.
	SubmitAuthorResponse(ctx context.Context, response string) error

	// FetchImage downloads an image by backend-relative path, used to
	// re-attach an existing thumbnail when editing.
	FetchImage(ctx context.Context, path string) ([]byte, error)
}

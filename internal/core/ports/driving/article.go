package driving

import (
	"context"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// Draft is one editing session's inputs: the fields the editor collects
// before a save or publish. ArticleID and Kind identify the backend
// record being edited; both are zero for a brand-new article.
type Draft struct {
	ArticleID int64
	Kind      domain.ArticleKind

	Title       string
	Category    domain.Category
	Body        *domain.Document
	Description *domain.Document
	Thumbnail   domain.Thumbnail
}

// ArticleService is the authoring surface: saving, publishing, listing,
// and deleting the signed-in author's articles, plus fetching public
// ones.
//
// Save gating happens here, before any network call: SaveDraft requires
// at least one of body/description to be non-empty; Publish additionally
// requires a title. Mutating operations on one article id are
// serialized; a second call while one is in flight fails fast with
// domain.ErrSaveInFlight.
type ArticleService interface {
	// SaveDraft persists the session as a draft. A new article becomes
	// a draft; an existing draft or completed article is updated in
	// place. Returns the saved record's id.
	SaveDraft(ctx context.Context, d Draft) (int64, error)

	// Publish makes the article publicly visible. A draft is promoted
	// via delete-then-create; the two calls are not atomic, so a failed
	// create after a successful delete returns a PublishInterruptedError
	// carrying a resume token instead of losing the article silently.
	Publish(ctx context.Context, d Draft) (int64, error)

	// ResumePublish retries the completed-create half of an interrupted
	// promotion, identified by its resume token.
	ResumePublish(ctx context.Context, token string) (int64, error)

	// ListArticles returns the signed-in author's completed articles.
	ListArticles(ctx context.Context) ([]domain.Article, error)

	// ListDrafts returns the signed-in author's drafts.
	ListDrafts(ctx context.Context) ([]domain.Article, error)

	// Delete removes an article in either lifecycle state. Idempotent
	// from the caller's view: a non-200 is logged, not surfaced.
	Delete(ctx context.Context, id int64, kind domain.ArticleKind) error
}

// PublishInterruptedError reports a promotion whose draft delete
// succeeded but whose completed create failed. The token resumes the
// create without repeating the delete.
type PublishInterruptedError struct {
	Token string
	Cause error
}

func (e *PublishInterruptedError) Error() string {
	return "publish interrupted after draft delete: " + e.Cause.Error()
}

func (e *PublishInterruptedError) Unwrap() error {
	return e.Cause
}

package driving

import (
	"context"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// FeedService serves the public reading surfaces: the categorized home
// feed and individual article pages. None of these require a session.
type FeedService interface {
	// Feed fetches the categorized public feed.
	Feed(ctx context.Context) (*domain.CategorizedFeed, error)

	// PublicArticle fetches one public article by author username and
	// title slug. The slug's hyphens are restored to spaces before the
	// lookup.
	PublicArticle(ctx context.Context, username, slug string) (*domain.Article, error)
}

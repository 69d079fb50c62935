package services

import (
	"context"
	"fmt"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

// Ensure FeedService implements the interface.
var _ driving.FeedService = (*FeedService)(nil)

// FeedService serves the public reading surfaces. No session is
// required to read, but rejections still drop the cached identity.
type FeedService struct {
	backend driven.Backend
	session driving.SessionService
}

// NewFeedService creates a new feed service.
func NewFeedService(backend driven.Backend, session driving.SessionService) *FeedService {
	return &FeedService{backend: backend, session: session}
}

// Feed fetches the categorized public feed.
func (s *FeedService) Feed(ctx context.Context) (*domain.CategorizedFeed, error) {
	feed, err := s.backend.CategorizedFeed(ctx)
	if err != nil {
		invalidateOnAuthError(s.session, err)
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	return feed, nil
}

// PublicArticle fetches one public article by username and title slug.
// The slug's hyphens are restored to spaces before the lookup; that
// restoration is exact only for titles without literal hyphens.
func (s *FeedService) PublicArticle(ctx context.Context, username, slug string) (*domain.Article, error) {
	if username == "" || slug == "" {
		return nil, domain.ErrInvalidInput
	}
	name := domain.Unslug(slug)
	article, err := s.backend.ArticleByUsernameAndName(ctx, username, name)
	if err != nil {
		invalidateOnAuthError(s.session, err)
		return nil, fmt.Errorf("fetch article %s/%s: %w", username, slug, err)
	}
	return article, nil
}

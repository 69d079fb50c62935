package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

// Ensure AuthorService implements the interface.
var _ driving.AuthorService = (*AuthorService)(nil)

// AuthorService serves author pages, registration, and applications.
type AuthorService struct {
	backend driven.Backend
	session driving.SessionService
}

// NewAuthorService creates a new author service.
func NewAuthorService(backend driven.Backend, session driving.SessionService) *AuthorService {
	return &AuthorService{backend: backend, session: session}
}

// Profile fetches an author's public profile.
func (s *AuthorService) Profile(ctx context.Context, username string) (*domain.AuthorProfile, error) {
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	profile, err := s.backend.AuthorInfo(ctx, username)
	if err != nil {
		invalidateOnAuthError(s.session, err)
		return nil, fmt.Errorf("fetch author %s: %w", username, err)
	}
	return profile, nil
}

// Articles lists an author's public articles.
func (s *AuthorService) Articles(ctx context.Context, username string) ([]domain.Article, error) {
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	articles, err := s.backend.ArticlesByUsername(ctx, username)
	if err != nil {
		invalidateOnAuthError(s.session, err)
		return nil, fmt.Errorf("fetch articles for %s: %w", username, err)
	}
	return articles, nil
}

// Apply submits an author application. An empty response is rejected
// before any network call.
func (s *AuthorService) Apply(ctx context.Context, response string) error {
	if strings.TrimSpace(response) == "" {
		return domain.ErrEmptyResponse
	}
	if err := s.backend.SubmitAuthorResponse(ctx, response); err != nil {
		invalidateOnAuthError(s.session, err)
		return fmt.Errorf("submit application: %w", err)
	}
	return nil
}

// SignUp registers a new account.
func (s *AuthorService) SignUp(ctx context.Context, req domain.SignUpRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Username == "" {
		return domain.ErrInvalidInput
	}
	if err := s.backend.SignUp(ctx, req); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	return nil
}

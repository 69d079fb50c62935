package services

import (
	"context"
	"sync"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
)

// stubBackend is a recording fake of the persistence protocol client.
// Each operation counts its calls and can be forced to fail.
type stubBackend struct {
	mu    sync.Mutex
	calls map[string]int

	session domain.Session

	signInErr          error
	sessionDataErr     error
	deleteDraftErr     error
	deleteCompletedErr error
	createCompletedErr error
	createDraftErr     error
	updateDraftErr     error
	updateCompletedErr error
	fetchImageErr      error
	feedErr            error
	authorInfoErr      error
	articlesErr        error

	nextID int64

	articles []domain.Article
	drafts   []domain.Article
	feed     *domain.CategorizedFeed
	article  *domain.Article
	profile  *domain.AuthorProfile

	lastPayload     driven.ArticlePayload
	lastArticleName string
}

var _ driven.Backend = (*stubBackend)(nil)

func newStubBackend() *stubBackend {
	return &stubBackend{
		calls:   map[string]int{},
		session: domain.Session{Email: "alice@example.com", Username: "alice"},
		nextID:  1,
	}
}

func (b *stubBackend) record(op string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
}

func (b *stubBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *stubBackend) CheckSession(context.Context) error {
	b.record("CheckSession")
	return nil
}

func (b *stubBackend) SessionData(context.Context) (domain.Session, error) {
	b.record("SessionData")
	if b.sessionDataErr != nil {
		return domain.Session{}, b.sessionDataErr
	}
	return b.session, nil
}

func (b *stubBackend) SignIn(context.Context, domain.Credentials) error {
	b.record("SignIn")
	return b.signInErr
}

func (b *stubBackend) SignOut(context.Context) error {
	b.record("SignOut")
	return nil
}

func (b *stubBackend) SignUp(context.Context, domain.SignUpRequest) error {
	b.record("SignUp")
	return nil
}

func (b *stubBackend) ArticlesByUsername(context.Context, string) ([]domain.Article, error) {
	b.record("ArticlesByUsername")
	if b.articlesErr != nil {
		return nil, b.articlesErr
	}
	return b.articles, nil
}

func (b *stubBackend) DraftsByUsername(context.Context, string) ([]domain.Article, error) {
	b.record("DraftsByUsername")
	return b.drafts, nil
}

func (b *stubBackend) CategorizedFeed(context.Context) (*domain.CategorizedFeed, error) {
	b.record("CategorizedFeed")
	if b.feedErr != nil {
		return nil, b.feedErr
	}
	return b.feed, nil
}

func (b *stubBackend) ArticleByUsernameAndName(_ context.Context, _ string, name string) (*domain.Article, error) {
	b.record("ArticleByUsernameAndName")
	b.mu.Lock()
	b.lastArticleName = name
	b.mu.Unlock()
	return b.article, nil
}

func (b *stubBackend) AuthorInfo(context.Context, string) (*domain.AuthorProfile, error) {
	b.record("AuthorInfo")
	if b.authorInfoErr != nil {
		return nil, b.authorInfoErr
	}
	return b.profile, nil
}

func (b *stubBackend) CreateCompleted(_ context.Context, p driven.ArticlePayload) (int64, error) {
	b.record("CreateCompleted")
	if b.createCompletedErr != nil {
		return 0, b.createCompletedErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastPayload = p
	id := b.nextID
	b.nextID++
	return id, nil
}

func (b *stubBackend) CreateDraft(_ context.Context, p driven.ArticlePayload) (int64, error) {
	b.record("CreateDraft")
	if b.createDraftErr != nil {
		return 0, b.createDraftErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastPayload = p
	id := b.nextID
	b.nextID++
	return id, nil
}

func (b *stubBackend) UpdateDraft(_ context.Context, _ int64, p driven.ArticlePayload) error {
	b.record("UpdateDraft")
	b.mu.Lock()
	b.lastPayload = p
	b.mu.Unlock()
	return b.updateDraftErr
}

func (b *stubBackend) UpdateCompleted(_ context.Context, _ int64, p driven.ArticlePayload) error {
	b.record("UpdateCompleted")
	b.mu.Lock()
	b.lastPayload = p
	b.mu.Unlock()
	return b.updateCompletedErr
}

func (b *stubBackend) DeleteDraft(context.Context, int64) error {
	b.record("DeleteDraft")
	return b.deleteDraftErr
}

func (b *stubBackend) DeleteCompleted(context.Context, int64) error {
	b.record("DeleteCompleted")
	return b.deleteCompletedErr
}

func (b *stubBackend) SubmitAuthorResponse(context.Context, string) error {
	b.record("SubmitAuthorResponse")
	return nil
}

func (b *stubBackend) FetchImage(context.Context, string) ([]byte, error) {
	b.record("FetchImage")
	if b.fetchImageErr != nil {
		return nil, b.fetchImageErr
	}
	return []byte{0x89, 0x50}, nil
}

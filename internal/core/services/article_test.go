package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/article-avenue/avenue-cli/internal/adapters/driven/storage/memory"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

func newArticleService(backend *stubBackend) *ArticleService {
	return NewArticleService(backend, NewSessionService(backend), memory.NewWorkspaceStore())
}

func contentDraft() driving.Draft {
	body := domain.NewDocument()
	body.Blocks[0].Text = "some content"
	return driving.Draft{
		Title:       "My First Post",
		Category:    domain.CategoryGeneral,
		Body:        body,
		Description: domain.NewDocument(),
	}
}

func TestSaveDraft_New(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	id, err := service.SaveDraft(ctx, contentDraft())

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, backend.count("CreateDraft"))
	// Create calls carry the session's username.
	assert.Equal(t, "alice", backend.lastPayload.Username)
}

func TestSaveDraft_EmptyDocumentBlocksNetworkCall(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	d := driving.Draft{
		Title:       "Has a title",
		Body:        domain.NewDocument(),
		Description: domain.NewDocument(),
	}

	_, err := service.SaveDraft(ctx, d)

	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	assert.Equal(t, 0, backend.count("CreateDraft"))
	assert.Equal(t, 0, backend.count("SessionData"))
}

func TestSaveDraft_DescriptionAloneSatisfiesGate(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	desc := domain.NewDocument()
	desc.Blocks[0].Text = "a teaser"
	d := driving.Draft{Body: domain.NewDocument(), Description: desc}

	_, err := service.SaveDraft(ctx, d)

	require.NoError(t, err)
	assert.Equal(t, 1, backend.count("CreateDraft"))
}

func TestSaveDraft_ExistingDraftUpdatesInPlace(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	d := contentDraft()
	d.ArticleID = 42
	d.Kind = domain.KindDraft

	id, err := service.SaveDraft(ctx, d)

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, 1, backend.count("UpdateDraft"))
	assert.Equal(t, 0, backend.count("CreateDraft"))
	// Updates target by id; no username in the payload.
	assert.Empty(t, backend.lastPayload.Username)
}

func TestSaveDraft_CompletedEditsInPlace(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	d := contentDraft()
	d.ArticleID = 7
	d.Kind = domain.KindCompleted

	id, err := service.SaveDraft(ctx, d)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, 1, backend.count("UpdateCompleted"))
	// No demotion path: editing a completed article never creates a draft.
	assert.Equal(t, 0, backend.count("CreateDraft"))
}

func TestPublish_MissingTitleBlocksNetworkCall(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	d := contentDraft()
	d.Title = ""

	_, err := service.Publish(ctx, d)

	assert.ErrorIs(t, err, domain.ErrMissingTitle)
	assert.Equal(t, 0, backend.count("CreateCompleted"))
	assert.Equal(t, 0, backend.count("DeleteDraft"))
}

func TestPublish_New(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	id, err := service.Publish(ctx, contentDraft())

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, backend.count("CreateCompleted"))
}

func TestPublish_PromotesDraft(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	d := contentDraft()
	d.ArticleID = 3
	d.Kind = domain.KindDraft

	id, err := service.Publish(ctx, d)

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, backend.count("DeleteDraft"))
	assert.Equal(t, 1, backend.count("CreateCompleted"))
}

func TestPublish_InterruptedPromotionReturnsResumeToken(t *testing.T) {
	backend := newStubBackend()
	backend.createCompletedErr = errors.New("backend unavailable")
	service := newArticleService(backend)
	ctx := context.Background()

	d := contentDraft()
	d.ArticleID = 3
	d.Kind = domain.KindDraft

	_, err := service.Publish(ctx, d)

	// The draft is gone and the completed record was never created: the
	// data-loss window of the two-step promotion. The error carries a
	// token so the create half can be retried.
	require.Error(t, err)
	var interrupted *driving.PublishInterruptedError
	require.ErrorAs(t, err, &interrupted)
	assert.NotEmpty(t, interrupted.Token)
	assert.Equal(t, 1, backend.count("DeleteDraft"))
	assert.Equal(t, 1, backend.count("CreateCompleted"))

	// Backend recovers; the resume retries only the create.
	backend.createCompletedErr = nil
	id, err := service.ResumePublish(ctx, interrupted.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, backend.count("DeleteDraft"))
	assert.Equal(t, 2, backend.count("CreateCompleted"))

	// Tokens are single-use.
	_, err = service.ResumePublish(ctx, interrupted.Token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResumePublish_SurvivesProcessRestart(t *testing.T) {
	backend := newStubBackend()
	backend.createCompletedErr = errors.New("backend unavailable")
	store := memory.NewWorkspaceStore()
	service := NewArticleService(backend, NewSessionService(backend), store)
	ctx := context.Background()

	d := contentDraft()
	d.ArticleID = 3
	d.Kind = domain.KindDraft

	_, err := service.Publish(ctx, d)
	var interrupted *driving.PublishInterruptedError
	require.ErrorAs(t, err, &interrupted)

	// A fresh service sharing only the workspace store stands in for
	// the next process running 'publish --resume'.
	backend.createCompletedErr = nil
	restarted := NewArticleService(backend, NewSessionService(backend), store)
	id, err := restarted.ResumePublish(ctx, interrupted.Token)

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "My First Post", backend.lastPayload.Title)
	assert.Equal(t, "alice", backend.lastPayload.Username)
	require.NotNil(t, backend.lastPayload.Body)
	assert.Equal(t, "some content", backend.lastPayload.Body.Blocks[0].Text)

	// The persisted record is cleaned up with the token.
	_, err = restarted.ResumePublish(ctx, interrupted.Token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublish_MaterializesStoredThumbnail(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	d := contentDraft()
	d.ArticleID = 3
	d.Kind = domain.KindDraft
	d.Thumbnail = domain.Thumbnail{Path: "media/cover.png", Filename: "cover.png"}

	_, err := service.Publish(ctx, d)

	require.NoError(t, err)
	assert.Equal(t, 1, backend.count("FetchImage"))
	assert.Equal(t, []byte{0x89, 0x50}, backend.lastPayload.Thumbnail.File)
}

func TestPublish_ThumbnailFetchFailureLeavesDraftIntact(t *testing.T) {
	backend := newStubBackend()
	backend.fetchImageErr = errors.New("backend unavailable")
	service := newArticleService(backend)
	ctx := context.Background()

	d := contentDraft()
	d.ArticleID = 3
	d.Kind = domain.KindDraft
	d.Thumbnail = domain.Thumbnail{Path: "media/cover.png", Filename: "cover.png"}

	_, err := service.Publish(ctx, d)

	require.Error(t, err)
	assert.Equal(t, 0, backend.count("DeleteDraft"))
	assert.Equal(t, 0, backend.count("CreateCompleted"))
}

func TestPublish_FailedDeleteLeavesDraftIntact(t *testing.T) {
	backend := newStubBackend()
	backend.deleteDraftErr = errors.New("backend unavailable")
	service := newArticleService(backend)
	ctx := context.Background()

	d := contentDraft()
	d.ArticleID = 3
	d.Kind = domain.KindDraft

	_, err := service.Publish(ctx, d)

	require.Error(t, err)
	var interrupted *driving.PublishInterruptedError
	assert.False(t, errors.As(err, &interrupted), "delete failure needs no resume token")
	assert.Equal(t, 0, backend.count("CreateCompleted"))
}

func TestMutationsSerializedPerArticle(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	// Simulate a request already in flight for article 5.
	require.NoError(t, service.acquire(5))

	d := contentDraft()
	d.ArticleID = 5
	d.Kind = domain.KindDraft

	_, err := service.SaveDraft(ctx, d)
	assert.ErrorIs(t, err, domain.ErrSaveInFlight)

	err = service.Delete(ctx, 5, domain.KindDraft)
	assert.ErrorIs(t, err, domain.ErrSaveInFlight)

	// A different article is unaffected.
	other := contentDraft()
	other.ArticleID = 6
	other.Kind = domain.KindDraft
	_, err = service.SaveDraft(ctx, other)
	assert.NoError(t, err)

	service.release(5)
	_, err = service.SaveDraft(ctx, d)
	assert.NoError(t, err)
}

func TestDelete_Draft(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)
	ctx := context.Background()

	err := service.Delete(ctx, 9, domain.KindDraft)

	require.NoError(t, err)
	assert.Equal(t, 1, backend.count("DeleteDraft"))
}

func TestDelete_AlreadyGoneIsNoop(t *testing.T) {
	backend := newStubBackend()
	backend.deleteCompletedErr = domain.ErrNotFound
	service := newArticleService(backend)
	ctx := context.Background()

	err := service.Delete(ctx, 9, domain.KindCompleted)

	assert.NoError(t, err)
}

func TestDelete_UnknownKind(t *testing.T) {
	backend := newStubBackend()
	service := newArticleService(backend)

	err := service.Delete(context.Background(), 9, "archived")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListArticles_UsesCachedSession(t *testing.T) {
	backend := newStubBackend()
	backend.articles = []domain.Article{{ID: 1, Title: "a"}}
	service := newArticleService(backend)
	ctx := context.Background()

	_, err := service.ListArticles(ctx)
	require.NoError(t, err)
	_, err = service.ListDrafts(ctx)
	require.NoError(t, err)

	// Both listings share one identity fetch.
	assert.Equal(t, 1, backend.count("SessionData"))
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	backend := newStubBackend()
	session := NewSessionService(backend)
	service := NewArticleService(backend, session, memory.NewWorkspaceStore())
	ctx := context.Background()

	_, err := session.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, backend.count("SessionData"))

	backend.updateDraftErr = domain.ErrUnauthorized
	d := contentDraft()
	d.ArticleID = 2
	d.Kind = domain.KindDraft
	_, err = service.SaveDraft(ctx, d)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	// The cache was dropped; the next read goes back to the backend.
	_, _ = session.Current(ctx)
	assert.Equal(t, 2, backend.count("SessionData"))
}

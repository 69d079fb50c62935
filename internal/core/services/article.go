package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
	"github.com/article-avenue/avenue-cli/internal/logger"
	"github.com/article-avenue/avenue-cli/internal/rawdoc"
)

// Ensure ArticleService implements the interface.
var _ driving.ArticleService = (*ArticleService)(nil)

// ArticleService implements the authoring rules on top of the backend:
// client-side save gating, per-article mutation serialization, and the
// draft-promotion saga with a resume token for the non-atomic
// delete-then-create window.
type ArticleService struct {
	backend driven.Backend
	session driving.SessionService

	// store persists interrupted promotions so the resume token still
	// works from a fresh process. May be nil.
	store driven.WorkspaceStore

	mu       sync.Mutex
	inFlight map[int64]bool

	// pending holds interrupted promotions keyed by resume token. The
	// draft is already deleted; only the completed create remains.
	pending map[string]driven.ArticlePayload
}

// NewArticleService creates a new article service.
func NewArticleService(backend driven.Backend, session driving.SessionService, store driven.WorkspaceStore) *ArticleService {
	return &ArticleService{
		backend:  backend,
		session:  session,
		store:    store,
		inFlight: make(map[int64]bool),
		pending:  make(map[string]driven.ArticlePayload),
	}
}

// acquire marks id as having a mutation in flight. id 0 (new article)
// is never serialized; two new-article saves are independent records.
func (s *ArticleService) acquire(id int64) error {
	if id == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[id] {
		return fmt.Errorf("article %d: %w", id, domain.ErrSaveInFlight)
	}
	s.inFlight[id] = true
	return nil
}

func (s *ArticleService) release(id int64) {
	if id == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// validateContent enforces the empty-document gate shared by saves and
// publishes: at least one of body/description must have content.
func validateContent(d driving.Draft) error {
	bodyEmpty := d.Body == nil || d.Body.IsEmpty()
	descEmpty := d.Description == nil || d.Description.IsEmpty()
	if bodyEmpty && descEmpty {
		return domain.ErrEmptyDocument
	}
	return nil
}

// payload assembles the wire submission for a draft. The username is
// resolved from the cached session for create calls.
func (s *ArticleService) payload(ctx context.Context, d driving.Draft, withUsername bool) (driven.ArticlePayload, error) {
	p := driven.ArticlePayload{
		Title:       d.Title,
		Category:    d.Category,
		Body:        d.Body,
		Description: d.Description,
		Thumbnail:   d.Thumbnail,
	}
	if withUsername {
		sess, err := s.session.Current(ctx)
		if err != nil {
			return driven.ArticlePayload{}, err
		}
		p.Username = sess.Username
	}
	return p, nil
}

// SaveDraft persists the session as a draft. New articles are created
// as drafts; existing records are updated in place, without changing
// their lifecycle state.
func (s *ArticleService) SaveDraft(ctx context.Context, d driving.Draft) (int64, error) {
	if err := validateContent(d); err != nil {
		return 0, err
	}

	if err := s.acquire(d.ArticleID); err != nil {
		return 0, err
	}
	defer s.release(d.ArticleID)

	switch d.Kind {
	case domain.KindDraft:
		p, err := s.payload(ctx, d, false)
		if err != nil {
			return 0, err
		}
		if err := s.update(ctx, s.backend.UpdateDraft, d.ArticleID, p); err != nil {
			return 0, err
		}
		return d.ArticleID, nil

	case domain.KindCompleted:
		p, err := s.payload(ctx, d, false)
		if err != nil {
			return 0, err
		}
		if err := s.update(ctx, s.backend.UpdateCompleted, d.ArticleID, p); err != nil {
			return 0, err
		}
		return d.ArticleID, nil

	default:
		p, err := s.payload(ctx, d, true)
		if err != nil {
			return 0, err
		}
		id, err := s.backend.CreateDraft(ctx, p)
		if err != nil {
			s.observe(err)
			return 0, fmt.Errorf("create draft: %w", err)
		}
		return id, nil
	}
}

// Publish makes the article publicly visible. Title and content gates
// run before any network call.
func (s *ArticleService) Publish(ctx context.Context, d driving.Draft) (int64, error) {
	if d.Title == "" {
		return 0, domain.ErrMissingTitle
	}
	if err := validateContent(d); err != nil {
		return 0, err
	}

	if err := s.acquire(d.ArticleID); err != nil {
		return 0, err
	}
	defer s.release(d.ArticleID)

	switch d.Kind {
	case domain.KindDraft:
		return s.promote(ctx, d)

	case domain.KindCompleted:
		p, err := s.payload(ctx, d, false)
		if err != nil {
			return 0, err
		}
		if err := s.update(ctx, s.backend.UpdateCompleted, d.ArticleID, p); err != nil {
			return 0, err
		}
		return d.ArticleID, nil

	default:
		p, err := s.payload(ctx, d, true)
		if err != nil {
			return 0, err
		}
		id, err := s.backend.CreateCompleted(ctx, p)
		if err != nil {
			s.observe(err)
			return 0, fmt.Errorf("create completed article: %w", err)
		}
		return id, nil
	}
}

// promote turns a draft into a completed article. The backend has no
// single-call transition, so this is a two-step saga: delete the draft,
// then create the completed record. A create failure after a successful
// delete would otherwise lose the article; the pending payload is kept
// under a resume token so the caller can retry just the create.
func (s *ArticleService) promote(ctx context.Context, d driving.Draft) (int64, error) {
	p, err := s.payload(ctx, d, true)
	if err != nil {
		return 0, err
	}

	// The completed create re-uploads the thumbnail, so a stored-path
	// thumbnail is materialized into bytes up front, before the draft
	// is deleted.
	if len(p.Thumbnail.File) == 0 && p.Thumbnail.Path != "" {
		data, err := s.backend.FetchImage(ctx, p.Thumbnail.Path)
		if err != nil {
			s.observe(err)
			return 0, fmt.Errorf("fetch thumbnail %s: %w", p.Thumbnail.Path, err)
		}
		p.Thumbnail.File = data
	}

	if err := s.backend.DeleteDraft(ctx, d.ArticleID); err != nil {
		s.observe(err)
		return 0, fmt.Errorf("delete draft %d: %w", d.ArticleID, err)
	}

	id, err := s.backend.CreateCompleted(ctx, p)
	if err != nil {
		s.observe(err)
		token := uuid.NewString()
		s.mu.Lock()
		s.pending[token] = p
		s.mu.Unlock()
		s.persistPending(ctx, token, p)
		logger.Error("publish of %q interrupted: draft %d deleted but create failed (%v); resume token %s",
			d.Title, d.ArticleID, err, token)
		return 0, &driving.PublishInterruptedError{Token: token, Cause: err}
	}

	return id, nil
}

// persistPending writes an interrupted promotion to the workspace
// store so the resume token survives this process. Failures are logged;
// the in-memory entry still covers the current run.
func (s *ArticleService) persistPending(ctx context.Context, token string, p driven.ArticlePayload) {
	if s.store == nil {
		return
	}

	rec := domain.PendingPublish{
		Token:     token,
		Username:  p.Username,
		Title:     p.Title,
		Category:  p.Category,
		Thumbnail: p.Thumbnail.File,
		Filename:  p.Thumbnail.Filename,
		CreatedAt: time.Now(),
	}

	var err error
	if p.Body != nil {
		if rec.Body, err = rawdoc.Encode(p.Body); err != nil {
			logger.Warn("pending publish %s not persisted: encode body: %v", token, err)
			return
		}
	}
	if p.Description != nil {
		if rec.Description, err = rawdoc.Encode(p.Description); err != nil {
			logger.Warn("pending publish %s not persisted: encode description: %v", token, err)
			return
		}
	}

	if err := s.store.SavePending(ctx, rec); err != nil {
		logger.Warn("pending publish %s not persisted: %v", token, err)
	}
}

// loadPending rebuilds the payload of a persisted interrupted
// promotion.
func (s *ArticleService) loadPending(ctx context.Context, token string) (driven.ArticlePayload, error) {
	if s.store == nil {
		return driven.ArticlePayload{}, fmt.Errorf("resume token %q: %w", token, domain.ErrNotFound)
	}

	rec, err := s.store.GetPending(ctx, token)
	if err != nil {
		return driven.ArticlePayload{}, fmt.Errorf("resume token %q: %w", token, err)
	}

	p := driven.ArticlePayload{
		Username: rec.Username,
		Title:    rec.Title,
		Category: rec.Category,
		Thumbnail: domain.Thumbnail{
			File:     rec.Thumbnail,
			Filename: rec.Filename,
		},
	}
	if len(rec.Body) > 0 {
		if p.Body, err = rawdoc.Decode(rec.Body); err != nil {
			return driven.ArticlePayload{}, fmt.Errorf("resume token %q: decode body: %w", token, err)
		}
	}
	if len(rec.Description) > 0 {
		if p.Description, err = rawdoc.Decode(rec.Description); err != nil {
			return driven.ArticlePayload{}, fmt.Errorf("resume token %q: decode description: %w", token, err)
		}
	}
	return p, nil
}

// ResumePublish retries the completed-create half of an interrupted
// promotion. Tokens minted by an earlier process are looked up in the
// workspace store.
func (s *ArticleService) ResumePublish(ctx context.Context, token string) (int64, error) {
	s.mu.Lock()
	p, ok := s.pending[token]
	s.mu.Unlock()
	if !ok {
		var err error
		if p, err = s.loadPending(ctx, token); err != nil {
			return 0, err
		}
	}

	id, err := s.backend.CreateCompleted(ctx, p)
	if err != nil {
		s.observe(err)
		return 0, fmt.Errorf("resume publish: %w", err)
	}

	s.mu.Lock()
	delete(s.pending, token)
	s.mu.Unlock()
	if s.store != nil {
		if err := s.store.DeletePending(ctx, token); err != nil {
			logger.Warn("pending publish %s not cleaned up: %v", token, err)
		}
	}
	return id, nil
}

// ListArticles returns the signed-in author's completed articles.
func (s *ArticleService) ListArticles(ctx context.Context) ([]domain.Article, error) {
	sess, err := s.session.Current(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := s.backend.ArticlesByUsername(ctx, sess.Username)
	if err != nil {
		s.observe(err)
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// ListDrafts returns the signed-in author's drafts.
func (s *ArticleService) ListDrafts(ctx context.Context) ([]domain.Article, error) {
	sess, err := s.session.Current(ctx)
	if err != nil {
		return nil, err
	}
	drafts, err := s.backend.DraftsByUsername(ctx, sess.Username)
	if err != nil {
		s.observe(err)
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return drafts, nil
}

// Delete removes an article in either lifecycle state. It is idempotent
// from the caller's view: failures are logged, the session note is
// updated on 401, and only transport-level errors are surfaced so the
// list views can fall back gracefully.
func (s *ArticleService) Delete(ctx context.Context, id int64, kind domain.ArticleKind) error {
	if err := s.acquire(id); err != nil {
		return err
	}
	defer s.release(id)

	var err error
	switch kind {
	case domain.KindDraft:
		err = s.backend.DeleteDraft(ctx, id)
	case domain.KindCompleted:
		err = s.backend.DeleteCompleted(ctx, id)
	default:
		return fmt.Errorf("%w: article kind %q", domain.ErrInvalidInput, kind)
	}

	if err != nil {
		s.observe(err)
		if errors.Is(err, domain.ErrNotFound) {
			// Already gone; repeated deletes are no-ops.
			logger.Debug("delete of %s %d: already removed", kind, id)
			return nil
		}
		return fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	return nil
}

// update runs one in-place update call with shared error handling.
func (s *ArticleService) update(ctx context.Context, fn func(context.Context, int64, driven.ArticlePayload) error, id int64, p driven.ArticlePayload) error {
	if err := fn(ctx, id, p); err != nil {
		s.observe(err)
		return fmt.Errorf("update article %d: %w", id, err)
	}
	return nil
}

// observe watches backend errors for session rejection. Any 401/403
// drops the cached identity so the next operation re-authenticates.
func (s *ArticleService) observe(err error) {
	invalidateOnAuthError(s.session, err)
}

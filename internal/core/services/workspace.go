package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
	"github.com/article-avenue/avenue-cli/internal/rawdoc"
)

// Ensure WorkspaceService implements the interface.
var _ driving.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService autosaves editing sessions locally so an interrupted
// compose can be recovered. Documents are stored in their transport
// form; the thumbnail file is not persisted, only its name.
type WorkspaceService struct {
	store driven.WorkspaceStore
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(store driven.WorkspaceStore) *WorkspaceService {
	return &WorkspaceService{store: store}
}

// Autosave persists the session under id, allocating one when empty.
func (s *WorkspaceService) Autosave(ctx context.Context, id string, d driving.Draft) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	buf := domain.DraftBuffer{
		ID:        id,
		ArticleID: d.ArticleID,
		Kind:      d.Kind,
		Title:     d.Title,
		Category:  d.Category,
		Filename:  d.Thumbnail.Filename,
		UpdatedAt: time.Now(),
	}

	var err error
	if d.Body != nil {
		if buf.Body, err = rawdoc.Encode(d.Body); err != nil {
			return "", fmt.Errorf("encode body: %w", err)
		}
	}
	if d.Description != nil {
		if buf.Description, err = rawdoc.Encode(d.Description); err != nil {
			return "", fmt.Errorf("encode description: %w", err)
		}
	}

	if err := s.store.Save(ctx, buf); err != nil {
		return "", fmt.Errorf("autosave: %w", err)
	}
	return id, nil
}

// Recover loads the most recent autosaved session.
func (s *WorkspaceService) Recover(ctx context.Context) (string, *driving.Draft, error) {
	buf, err := s.store.Latest(ctx)
	if err != nil {
		return "", nil, err
	}

	d := &driving.Draft{
		ArticleID: buf.ArticleID,
		Kind:      buf.Kind,
		Title:     buf.Title,
		Category:  buf.Category,
		Thumbnail: domain.Thumbnail{Filename: buf.Filename},
	}
	if len(buf.Body) > 0 {
		if d.Body, err = rawdoc.Decode(buf.Body); err != nil {
			return "", nil, fmt.Errorf("recover body: %w", err)
		}
	}
	if len(buf.Description) > 0 {
		if d.Description, err = rawdoc.Decode(buf.Description); err != nil {
			return "", nil, fmt.Errorf("recover description: %w", err)
		}
	}

	return buf.ID, d, nil
}

// Discard removes a buffer after a successful save or publish.
func (s *WorkspaceService) Discard(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.store.Delete(ctx, id)
}

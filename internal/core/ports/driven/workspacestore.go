package driven

import (
	"context"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// WorkspaceStore persists local autosave buffers for in-progress edits.
type WorkspaceStore interface {
	// Save stores or updates a buffer.
	Save(ctx context.Context, buf domain.DraftBuffer) error

	// Get retrieves a buffer by ID.
	Get(ctx context.Context, id string) (*domain.DraftBuffer, error)

	// Latest returns the most recently updated buffer, or
	// domain.ErrNotFound when the workspace is empty.
	Latest(ctx context.Context) (*domain.DraftBuffer, error)

	// List returns all buffers, most recent first.
	List(ctx context.Context) ([]domain.DraftBuffer, error)

	// Delete removes a buffer.
	Delete(ctx context.Context, id string) error

	// SavePending stores the unfinished half of an interrupted publish
	// under its resume token.
	SavePending(ctx context.Context, p domain.PendingPublish) error

	// GetPending retrieves an interrupted publish by resume token, or
	// domain.ErrNotFound.
	GetPending(ctx context.Context, token string) (*domain.PendingPublish, error)

	// DeletePending removes an interrupted publish once it completes.
	DeletePending(ctx context.Context, token string) error
}

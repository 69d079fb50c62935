package driving

import (
	"context"
)

// WorkspaceService manages local autosave of editing sessions, so a
// crashed or abandoned compose can be recovered before anything was
// sent to the backend.
type WorkspaceService interface {
	// Autosave persists the current editing session under id. A new id
	// is allocated when empty; the id in use is returned.
	Autosave(ctx context.Context, id string, d Draft) (string, error)

	// Recover loads the most recent autosaved session. Returns the
	// buffer id and the reconstructed draft, or domain.ErrNotFound.
	Recover(ctx context.Context) (string, *Draft, error)

	// Discard removes an autosave buffer, typically after a successful
	// save or publish.
	Discard(ctx context.Context, id string) error
}

// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and as a fallback when no data directory
// is available.
package memory

import (
	"context"
	"sync"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// WorkspaceStore keeps autosave buffers and interrupted publishes in
// memory.
type WorkspaceStore struct {
	mu      sync.RWMutex
	buffers map[string]domain.DraftBuffer
	pending map[string]domain.PendingPublish
}

// NewWorkspaceStore creates an empty in-memory workspace store.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{
		buffers: make(map[string]domain.DraftBuffer),
		pending: make(map[string]domain.PendingPublish),
	}
}

// Save stores or updates a buffer.
func (s *WorkspaceStore) Save(_ context.Context, buf domain.DraftBuffer) error {
	if buf.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers[buf.ID] = buf
	return nil
}

// Get retrieves a buffer by ID.
func (s *WorkspaceStore) Get(_ context.Context, id string) (*domain.DraftBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	buf, ok := s.buffers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &buf, nil
}

// Latest returns the most recently updated buffer.
func (s *WorkspaceStore) Latest(_ context.Context) (*domain.DraftBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *domain.DraftBuffer
	for id := range s.buffers {
		buf := s.buffers[id]
		if latest == nil || buf.UpdatedAt.After(latest.UpdatedAt) {
			latest = &buf
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

// List returns all buffers, most recent first.
func (s *WorkspaceStore) List(_ context.Context) ([]domain.DraftBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DraftBuffer, 0, len(s.buffers))
	for _, buf := range s.buffers {
		out = append(out, buf)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].UpdatedAt.After(out[i].UpdatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// Delete removes a buffer. Deleting a missing buffer is a no-op.
func (s *WorkspaceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buffers, id)
	return nil
}

// SavePending stores an interrupted publish under its resume token.
func (s *WorkspaceStore) SavePending(_ context.Context, p domain.PendingPublish) error {
	if p.Token == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.Token] = p
	return nil
}

// GetPending retrieves an interrupted publish by resume token.
func (s *WorkspaceStore) GetPending(_ context.Context, token string) (*domain.PendingPublish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pending[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// DeletePending removes an interrupted publish. Missing tokens are a
// no-op.
func (s *WorkspaceStore) DeletePending(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, token)
	return nil
}

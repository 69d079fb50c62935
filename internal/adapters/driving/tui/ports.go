// Package tui provides an interactive terminal user interface for avenue.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session provides the cached backend identity.
	Session driving.SessionService

	// Feed serves the public categorized feed.
	Feed driving.FeedService

	// Article manages the author's drafts and completed articles.
	Article driving.ArticleService

	// Author serves public author profiles.
	Author driving.AuthorService

	// Workspace persists unsaved editing sessions locally.
	Workspace driving.WorkspaceService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	session driving.SessionService,
	feed driving.FeedService,
	article driving.ArticleService,
	workspace driving.WorkspaceService,
) *Ports {
	return &Ports{
		Session:   session,
		Feed:      feed,
		Article:   article,
		Workspace: workspace,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Feed == nil {
		return ErrMissingFeedService
	}
	if p.Article == nil {
		return ErrMissingArticleService
	}
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	return nil
}

package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingFeedService is returned when the feed service is not provided.
var ErrMissingFeedService = errors.New("tui: feed service is required")

// ErrMissingArticleService is returned when the article service is not provided.
var ErrMissingArticleService = errors.New("tui: article service is required")

// ErrMissingWorkspaceService is returned when the workspace service is not provided.
var ErrMissingWorkspaceService = errors.New("tui: workspace service is required")

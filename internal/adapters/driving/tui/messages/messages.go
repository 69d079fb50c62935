// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewFeed is the public categorized feed.
	ViewFeed
	// ViewReader shows a single article.
	ViewReader
	// ViewArticles lists the signed-in author's articles and drafts.
	ViewArticles
	// ViewEditor is the rich-text article editor.
	ViewEditor
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewFeed:
		return "feed"
	case ViewReader:
		return "reader"
	case ViewArticles:
		return "articles"
	case ViewEditor:
		return "editor"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SessionLoaded carries the cached identity, or the reason there is none.
type SessionLoaded struct {
	Session domain.Session
	Err     error
}

// FeedLoaded carries the categorized feed from the service.
type FeedLoaded struct {
	Feed *domain.CategorizedFeed
	Err  error
}

// ArticleOpened carries a full article for the reader view.
type ArticleOpened struct {
	Article *domain.Article
	Err     error
}

// ArticlesLoaded carries the author's own listings.
type ArticlesLoaded struct {
	Articles []domain.Article
	Drafts   []domain.Article
	Err      error
}

// EditRequested opens the editor on an existing article or draft.
type EditRequested struct {
	Draft driving.Draft
}

// SaveCompleted reports the outcome of a draft save.
type SaveCompleted struct {
	ID  int64
	Err error
}

// PublishCompleted reports the outcome of a publish. Token is set when
// the promotion was interrupted and can be resumed.
type PublishCompleted struct {
	ID    int64
	Token string
	Err   error
}

// DeleteCompleted reports the outcome of a delete.
type DeleteCompleted struct {
	ID  int64
	Err error
}

// BufferRecovered carries an unsaved editing session found in the
// local workspace.
type BufferRecovered struct {
	BufferID string
	Draft    driving.Draft
}

// ThumbnailAttached carries thumbnail bytes read off the UI goroutine;
// the editor applies them in Update.
type ThumbnailAttached struct {
	Thumbnail domain.Thumbnail
}

// AutosaveTick asks the editor to snapshot its session.
type AutosaveTick struct{}

// AutosaveCompleted reports a workspace autosave.
type AutosaveCompleted struct {
	BufferID string
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

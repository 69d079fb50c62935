package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/messages"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/views/articles"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/views/editor"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/views/feed"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/views/menu"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/views/reader"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// feedView is the public feed browser.
	feedView *feed.View

	// readerView renders a single article.
	readerView *reader.View

	// articlesView lists the author's drafts and completed articles.
	articlesView *articles.View

	// editorView is the rich-text article editor.
	editorView *editor.View

	// session is the cached backend identity, zero when browsing as guest.
	session domain.Session

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool

	// preloaded marks an editor opened on a fetched record, which
	// skips workspace recovery.
	preloaded bool

	// defaultCategory is preselected in fresh editing sessions.
	defaultCategory domain.Category
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		feedView:     feed.NewView(s, ports.Feed),
		readerView:   reader.NewView(s),
		articlesView: articles.NewView(s, ports.Article),
		editorView:   editor.NewView(s, ports.Article, ports.Workspace),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithStyles replaces the default style set, for themed startup.
func (a *App) WithStyles(s *styles.Styles) *App {
	if s == nil {
		return a
	}
	a.styles = s
	a.menuView = menu.NewView(s)
	a.feedView = feed.NewView(s, a.ports.Feed)
	a.readerView = reader.NewView(s)
	a.articlesView = articles.NewView(s, a.ports.Article)
	a.editorView = editor.NewView(s, a.ports.Article, a.ports.Workspace)
	return a
}

// WithDefaultCategory sets the category preselected in fresh editing
// sessions.
func (a *App) WithDefaultCategory(c domain.Category) *App {
	a.defaultCategory = c
	return a
}

// StartInEditor opens the app directly on the compose view.
func (a *App) StartInEditor() *App {
	a.currentView = messages.ViewEditor
	a.editorView.SetDraft(driving.Draft{Category: a.defaultCategory})
	return a
}

// StartEditing opens the app directly on the editor with an existing
// article loaded. Workspace recovery is skipped so the fetched record
// is not clobbered by an older buffer.
func (a *App) StartEditing(d driving.Draft) *App {
	a.currentView = messages.ViewEditor
	a.editorView.SetDraft(d)
	a.preloaded = true
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("avenue - Article Avenue"),
		a.loadSessionCmd(),
	}
	if a.currentView == messages.ViewEditor {
		cmds = append(cmds, a.editorView.Init())
		if !a.preloaded {
			cmds = append(cmds, a.recoverBufferCmd())
		}
	}
	return tea.Batch(cmds...)
}

// loadSessionCmd fetches the backend identity, if any.
func (a *App) loadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := a.ports.Session.Current(a.ctx)
		return messages.SessionLoaded{Session: s, Err: err}
	}
}

// recoverBufferCmd checks the local workspace for an unsaved session.
func (a *App) recoverBufferCmd() tea.Cmd {
	return func() tea.Msg {
		id, draft, err := a.ports.Workspace.Recover(a.ctx)
		if err != nil || draft == nil {
			return nil
		}
		return messages.BufferRecovered{BufferID: id, Draft: *draft}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.feedView.SetDimensions(msg.Width, msg.Height)
		a.readerView.SetDimensions(msg.Width, msg.Height)
		a.articlesView.SetDimensions(msg.Width, msg.Height)
		a.editorView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewFeed:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			a.feedView, cmd = a.feedView.Update(msg)
			return a, cmd

		case messages.ViewReader:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewFeed
				return a, nil
			}
			a.readerView, cmd = a.readerView.Update(msg)
			return a, cmd

		case messages.ViewArticles:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			a.articlesView, cmd = a.articlesView.Update(msg)
			return a, cmd

		case messages.ViewEditor:
			if msg.Type == tea.KeyEsc && !a.editorView.PromptActive() {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			a.editorView, cmd = a.editorView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.SessionLoaded:
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrNotAuthenticated) {
			a.err = msg.Err
		}
		a.session = msg.Session
		a.menuView.SetSession(msg.Session)
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewFeed:
			return a, a.feedView.Load()
		case messages.ViewArticles:
			return a, a.articlesView.Load()
		case messages.ViewEditor:
			a.editorView.SetDraft(driving.Draft{Category: a.defaultCategory})
			return a, tea.Batch(a.editorView.Init(), a.recoverBufferCmd())
		case messages.ViewMenu, messages.ViewReader, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.ArticleOpened:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.readerView.SetArticle(msg.Article)
		a.currentView = messages.ViewReader
		return a, nil

	case messages.EditRequested:
		a.editorView.SetDraft(msg.Draft)
		a.currentView = messages.ViewEditor
		return a, a.editorView.Init()

	case messages.BufferRecovered:
		if a.currentView == messages.ViewEditor {
			a.editorView.SetDraft(msg.Draft)
			a.editorView.SetBufferID(msg.BufferID)
		}
		return a, nil

	case messages.FeedLoaded:
		a.feedView, cmd = a.feedView.Update(msg)
		return a, cmd

	case messages.ArticlesLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.articlesView, cmd = a.articlesView.Update(msg)
		return a, cmd

	case messages.DeleteCompleted:
		a.articlesView, cmd = a.articlesView.Update(msg)
		return a, cmd

	case messages.PublishCompleted:
		if a.currentView == messages.ViewArticles {
			a.articlesView, cmd = a.articlesView.Update(msg)
			return a, cmd
		}
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.SaveCompleted, messages.AutosaveTick, messages.AutosaveCompleted:
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewEditor {
			a.editorView, cmd = a.editorView.Update(msg)
		}
		return a, cmd
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewFeed:
		a.feedView, cmd = a.feedView.Update(msg)
	case messages.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	case messages.ViewArticles:
		a.articlesView, cmd = a.articlesView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewFeed:
		return a.feedView.View()
	case messages.ViewReader:
		return a.readerView.View()
	case messages.ViewArticles:
		return a.articlesView.View()
	case messages.ViewEditor:
		return a.editorView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Feed:
  tab         Cycle category
  /           Filter by title
  enter       Open article
  r           Reload

My Articles:
  enter       Edit draft or article
  p           Publish draft
  d           Delete

Editor:
  ctrl+s      Save draft
  ctrl+p      Publish
  ctrl+b/i/u  Bold / italic / underline
  ctrl+k      Inline code
  ctrl+t      Cycle block type
  ctrl+g      Insert image
  ctrl+↑/↓    Resize image
  ctrl+o      Attach thumbnail
  ctrl+n      Next field
  tab         Indent list item

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the loaded identity.
func (a *App) Session() domain.Session {
	return a.session
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.feedView.SetDimensions(width, height)
	a.readerView.SetDimensions(width, height)
	a.articlesView.SetDimensions(width, height)
	a.editorView.SetDimensions(width, height)
}

// Package articles provides the author's own listings view: drafts and
// published articles, with edit, publish, and delete actions.
package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/messages"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

// View represents the own-articles view.
type View struct {
	styles   *styles.Styles
	articles driving.ArticleService

	drafts    []domain.Article
	published []domain.Article
	selected  int

	loading bool
	status  string
	err     error

	width  int
	height int
}

// NewView creates a new articles view.
func NewView(s *styles.Styles, articles driving.ArticleService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		articles: articles,
		width:    80,
		height:   24,
	}
}

// Init requests the listings.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load fetches both listings from the service.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.err = nil
	return func() tea.Msg {
		ctx := context.Background()
		drafts, err := v.articles.ListDrafts(ctx)
		if err != nil {
			return messages.ArticlesLoaded{Err: err}
		}
		published, err := v.articles.ListArticles(ctx)
		if err != nil {
			return messages.ArticlesLoaded{Err: err}
		}
		return messages.ArticlesLoaded{Drafts: drafts, Articles: published}
	}
}

// SetDimensions updates the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// entries returns drafts followed by published articles.
func (v *View) entries() []domain.Article {
	out := make([]domain.Article, 0, len(v.drafts)+len(v.published))
	out = append(out, v.drafts...)
	out = append(out, v.published...)
	return out
}

// Update handles messages for the articles view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ArticlesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.drafts = msg.Drafts
		v.published = msg.Articles
		if v.selected >= len(v.entries()) {
			v.selected = 0
		}
		return v, nil

	case messages.DeleteCompleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.status = fmt.Sprintf("Deleted article %d", msg.ID)
		return v, v.Load()

	case messages.PublishCompleted:
		if msg.Err != nil {
			if msg.Token != "" {
				v.err = fmt.Errorf("publish interrupted; resume with token %s: %w", msg.Token, msg.Err)
			} else {
				v.err = msg.Err
			}
			return v, nil
		}
		v.status = fmt.Sprintf("Published article %d", msg.ID)
		return v, v.Load()

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	return v, nil
}

func (v *View) updateKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	entries := v.entries()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}

	case "down", "j":
		if v.selected < len(entries)-1 {
			v.selected++
		}

	case "r":
		return v, v.Load()

	case "enter":
		if v.selected < len(entries) {
			a := entries[v.selected]
			return v, func() tea.Msg {
				return messages.EditRequested{Draft: draftFromArticle(a)}
			}
		}

	case "d":
		if v.selected < len(entries) {
			a := entries[v.selected]
			return v, v.deleteCmd(a)
		}

	case "p":
		if v.selected < len(entries) {
			a := entries[v.selected]
			if a.Kind == domain.KindDraft {
				return v, v.publishCmd(a)
			}
			v.status = "Already published"
		}
	}

	return v, nil
}

func (v *View) deleteCmd(a domain.Article) tea.Cmd {
	return func() tea.Msg {
		err := v.articles.Delete(context.Background(), a.ID, a.Kind)
		return messages.DeleteCompleted{ID: a.ID, Err: err}
	}
}

func (v *View) publishCmd(a domain.Article) tea.Cmd {
	return func() tea.Msg {
		id, err := v.articles.Publish(context.Background(), draftFromArticle(a))
		if err != nil {
			var interrupted *driving.PublishInterruptedError
			if errors.As(err, &interrupted) {
				return messages.PublishCompleted{Token: interrupted.Token, Err: err}
			}
			return messages.PublishCompleted{Err: err}
		}
		return messages.PublishCompleted{ID: id}
	}
}

// draftFromArticle rebuilds the editing session for a fetched article.
// The stored thumbnail path is carried over so an edit without a new
// upload keeps the existing image.
func draftFromArticle(a domain.Article) driving.Draft {
	return driving.Draft{
		ArticleID:   a.ID,
		Kind:        a.Kind,
		Title:       a.Title,
		Category:    a.Category,
		Body:        a.Body,
		Description: a.Description,
		Thumbnail:   a.Thumbnail,
	}
}

// View renders the listings.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("My Articles"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	default:
		v.renderSection(&b, "Drafts", v.drafts, 0)
		b.WriteString("\n")
		v.renderSection(&b, "Published", v.published, len(v.drafts))
	}

	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.status))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("enter edit · p publish · d delete · r reload · esc back"))

	return b.String()
}

func (v *View) renderSection(b *strings.Builder, title string, items []domain.Article, offset int) {
	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(v.styles.Muted.Render("  none"))
		b.WriteString("\n")
		return
	}
	for i, a := range items {
		cursor := "  "
		style := v.styles.Normal
		if offset+i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		meta := v.styles.Muted.Render(fmt.Sprintf("  #%d · %s", a.ID, a.Category))
		b.WriteString(cursor + style.Render(a.Title) + meta + "\n")
	}
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Package reader provides the single-article reading view for the TUI.
package reader

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/render"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// View represents the reader view.
type View struct {
	styles   *styles.Styles
	article  *domain.Article
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewView creates a new reader view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// Init initialises the reader view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDimensions updates the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	if v.ready {
		v.viewport.Width = width
		v.viewport.Height = height - 4
		if v.article != nil {
			v.viewport.SetContent(v.renderBody())
		}
	}
}

// SetArticle loads an article into the viewport.
func (v *View) SetArticle(a *domain.Article) {
	v.article = a
	v.viewport = viewport.New(v.width, v.height-4)
	v.viewport.SetContent(v.renderBody())
	v.ready = true
}

// Update handles messages for the reader view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if !v.ready {
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the article.
func (v *View) View() string {
	if v.article == nil {
		return v.styles.Muted.Render("No article selected.")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.article.Title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("by " + v.article.Username))
	b.WriteString("\n\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ scroll · esc back"))
	return b.String()
}

func (v *View) renderBody() string {
	width := v.width
	if width > 100 {
		width = 100
	}
	r := render.New(v.styles, width)

	var parts []string
	if v.article.Description != nil && !v.article.Description.IsEmpty() {
		parts = append(parts, v.styles.Quote.Render(v.article.Description.PlainText()))
	}
	if v.article.Body != nil {
		parts = append(parts, r.Document(v.article.Body))
	}
	return strings.Join(parts, "\n\n")
}

// Article returns the loaded article.
func (v *View) Article() *domain.Article {
	return v.article
}

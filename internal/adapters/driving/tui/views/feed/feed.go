// Package feed provides the public categorized feed view for the TUI.
package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/messages"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

// categoryTabs is the cycling order of the feed filter. The empty
// category means "all".
var categoryTabs = []domain.Category{
	"",
	domain.CategoryGeneral,
	domain.CategorySports,
	domain.CategoryWorldNews,
	domain.CategoryScience,
}

// View represents the feed view.
type View struct {
	styles *styles.Styles
	feeds  driving.FeedService

	feed     *domain.CategorizedFeed
	entries  []domain.Article
	selected int
	category int

	filter    textinput.Model
	filtering bool

	loading bool
	err     error

	width  int
	height int
}

// NewView creates a new feed view.
func NewView(s *styles.Styles, feeds driving.FeedService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	filter := textinput.New()
	filter.Placeholder = "filter by title"
	filter.CharLimit = 80

	return &View{
		styles: s,
		feeds:  feeds,
		filter: filter,
		width:  80,
		height: 24,
	}
}

// Init requests the feed.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load fetches the feed from the service.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.err = nil
	return func() tea.Msg {
		feed, err := v.feeds.Feed(context.Background())
		return messages.FeedLoaded{Feed: feed, Err: err}
	}
}

// SetDimensions updates the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Update handles messages for the feed view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.FeedLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.feed = msg.Feed
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v *View) updateFilter(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		v.filtering = false
		v.filter.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.refresh()
	return v, cmd
}

func (v *View) updateList(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}

	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
		}

	case "tab":
		v.category = (v.category + 1) % len(categoryTabs)
		v.refresh()

	case "/":
		v.filtering = true
		return v, v.filter.Focus()

	case "r":
		return v, v.Load()

	case "enter":
		if v.selected < len(v.entries) {
			article := v.entries[v.selected]
			return v, func() tea.Msg {
				return messages.ArticleOpened{Article: &article}
			}
		}
	}

	return v, nil
}

// refresh recomputes the visible entries from the category tab and the
// title filter.
func (v *View) refresh() {
	if v.feed == nil {
		v.entries = nil
		return
	}

	entries := v.feed.ByCategory(categoryTabs[v.category])
	if query := v.filter.Value(); query != "" {
		entries = domain.FilterByTitle(entries, query)
	}
	v.entries = entries
	if v.selected >= len(v.entries) {
		v.selected = 0
	}
}

// View renders the feed.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Feed"))
	b.WriteString("  ")
	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	if v.filtering || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading feed..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Could not load the feed: " + v.err.Error()))
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("No articles."))
	default:
		for i, entry := range v.entries {
			cursor := "  "
			style := v.styles.Normal
			if i == v.selected {
				cursor = "> "
				style = v.styles.Selected
			}
			line := fmt.Sprintf("%s%s", cursor, style.Render(entry.Title))
			meta := v.styles.Muted.Render(fmt.Sprintf("  by %s · %s", entry.Username, entry.Category))
			b.WriteString(line + meta + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("tab category · / filter · enter read · r reload · esc back"))

	return b.String()
}

func (v *View) renderTabs() string {
	labels := make([]string, len(categoryTabs))
	for i, cat := range categoryTabs {
		label := string(cat)
		if label == "" {
			label = "All"
		}
		if i == v.category {
			labels[i] = v.styles.Subtitle.Render(label)
		} else {
			labels[i] = v.styles.Muted.Render(label)
		}
	}
	return strings.Join(labels, " | ")
}

// Entries returns the currently visible entries.
func (v *View) Entries() []domain.Article {
	return v.entries
}

// Selected returns the index of the highlighted entry.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

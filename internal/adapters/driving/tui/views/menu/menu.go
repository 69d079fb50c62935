// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/messages"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool // If true, selecting this item quits the app

	// AuthRequired items are shown muted when no one is signed in.
	AuthRequired bool
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	session  domain.Session
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Feed", View: messages.ViewFeed},
			{Label: "My Articles", View: messages.ViewArticles, AuthRequired: true},
			{Label: "Compose", View: messages.ViewEditor, AuthRequired: true},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetSession records the signed-in identity for display.
func (v *View) SetSession(s domain.Session) {
	v.session = s
}

// SetDimensions updates the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			if item.AuthRequired && !v.session.Valid() {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Article Avenue"))
	b.WriteString("\n\n")

	if v.session.Valid() {
		b.WriteString(v.styles.Muted.Render("signed in as " + v.session.Username))
	} else {
		b.WriteString(v.styles.Muted.Render("browsing as guest"))
	}
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if item.AuthRequired && !v.session.Valid() {
			style = v.styles.Muted
		}
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		b.WriteString(cursor + style.Render(item.Label) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ navigate · enter select · q quit"))

	return b.String()
}

// Selected returns the index of the highlighted item.
func (v *View) Selected() int {
	return v.selected
}

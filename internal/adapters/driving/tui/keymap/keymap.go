// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Delete removes the selected item.
	Delete key.Binding

	// NextCategory cycles the feed category filter.
	NextCategory key.Binding

	// Filter starts a title search in the feed.
	Filter key.Binding
}

// EditorKeyMap defines keybindings for the editor view. Formatting
// shortcuts mirror the usual rich-text conventions.
type EditorKeyMap struct {
	// Save persists the session as a draft.
	Save key.Binding

	// Publish makes the article public.
	Publish key.Binding

	// Bold toggles bold on the selection.
	Bold key.Binding

	// Italic toggles italic on the selection.
	Italic key.Binding

	// Underline toggles underline on the selection.
	Underline key.Binding

	// InlineCode toggles code styling on the selection.
	InlineCode key.Binding

	// CycleBlock cycles the current block's type.
	CycleBlock key.Binding

	// Indent deepens a list item.
	Indent key.Binding

	// Outdent shallows a list item.
	Outdent key.Binding

	// NextField moves focus between title, category, and body.
	NextField key.Binding

	// Exit leaves the editor.
	Exit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "category"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
	}
}

// DefaultEditorKeyMap returns the default editor keybindings.
func DefaultEditorKeyMap() *EditorKeyMap {
	return &EditorKeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save draft"),
		),
		Publish: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "publish"),
		),
		Bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		Italic: key.NewBinding(
			key.WithKeys("ctrl+i"),
			key.WithHelp("ctrl+i", "italic"),
		),
		Underline: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "underline"),
		),
		InlineCode: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "code"),
		),
		CycleBlock: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "block type"),
		),
		Indent: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),
		Outdent: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "outdent"),
		),
		NextField: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next field"),
		),
		Exit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit"),
		),
	}
}

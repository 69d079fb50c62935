package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/article-avenue/avenue-cli/internal/adapters/driven/config/file"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Article Avenue.

Browse the categorized feed, read articles, manage your drafts and
published articles, and compose rich-text articles.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  Esc      - Back
  ctrl+c   - Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, nil)
	},
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Open the article editor",
	Long: `Launch the terminal UI directly in the article editor.

If an unsaved editing session exists in the local workspace, it is
recovered into the editor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, func(app *tui.App) { app.StartInEditor() })
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(composeCmd)
}

func runTUI(cmd *cobra.Command, setup func(*tui.App)) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Session:   sessionService,
		Feed:      feedService,
		Article:   articleService,
		Author:    authorService,
		Workspace: workspaceService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if configStore != nil {
		theme := configStore.GetString(file.KeyTheme)
		app.WithStyles(styles.NewStyles(styles.ThemeByName(theme)))
		if cat, err := domain.ParseCategory(configStore.GetString(file.KeyDefaultCategory)); err == nil {
			app.WithDefaultCategory(cat)
		}
	}
	app.WithContext(cmd.Context())
	if setup != nil {
		setup(app)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

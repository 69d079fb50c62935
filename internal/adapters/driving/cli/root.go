// Package cli provides the avenue command-line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
	"github.com/article-avenue/avenue-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	sessionService   driving.SessionService
	articleService   driving.ArticleService
	feedService      driving.FeedService
	authorService    driving.AuthorService
	workspaceService driving.WorkspaceService
	configStore      driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "avenue",
	Short: "Terminal client for the Article Avenue blogging platform",
	Long: `avenue reads and writes Article Avenue from the terminal.

Browse the public feed, read articles, and, as a signed-in author,
compose rich-text articles with drafts, autosave recovery, and
publishing.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services aggregates everything the CLI needs from the composition root.
type Services struct {
	Session   driving.SessionService
	Article   driving.ArticleService
	Feed      driving.FeedService
	Author    driving.AuthorService
	Workspace driving.WorkspaceService
	Config    driven.ConfigStore
}

// SetServices injects the core services. Call before Execute.
func SetServices(s Services) {
	sessionService = s.Session
	articleService = s.Article
	feedService = s.Feed
	authorService = s.Author
	workspaceService = s.Workspace
	configStore = s.Config
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

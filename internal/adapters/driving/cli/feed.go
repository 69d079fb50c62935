package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/render"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

var feedFilter string

var feedCmd = &cobra.Command{
	Use:   "feed [category]",
	Short: "Browse the public feed",
	Long: `List the public feed, optionally narrowed to one category
(General, Sports, Science, World-News) and filtered by title substring.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFeed,
}

var viewCmd = &cobra.Command{
	Use:   "view [username] [title]",
	Short: "Read a public article",
	Long: `Fetch and render one public article by author and title.

The title may be given in its URL slug form (hyphens for spaces).`,
	Args: cobra.ExactArgs(2),
	RunE: runView,
}

func init() {
	feedCmd.Flags().StringVar(&feedFilter, "filter", "", "case-insensitive title filter")
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(viewCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	var category domain.Category
	if len(args) == 1 {
		var err error
		category, err = domain.ParseCategory(args[0])
		if err != nil {
			return fmt.Errorf("unknown category %q", args[0])
		}
	}

	feed, err := feedService.Feed(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching feed: %w", err)
	}

	entries := feed.ByCategory(category)
	if feedFilter != "" {
		entries = domain.FilterByTitle(entries, feedFilter)
	}
	if len(entries) == 0 {
		cmd.Println("No articles found.")
		return nil
	}

	for i := range entries {
		printArticleLine(cmd, &entries[i])
	}
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	username, slug := args[0], args[1]
	article, err := feedService.PublicArticle(cmd.Context(), username, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no article %q by %s", slug, username)
		}
		return fmt.Errorf("fetching article: %w", err)
	}

	s := styles.DefaultStyles()
	r := render.New(s, 80)

	cmd.Println(s.Title.Render(article.Title))
	cmd.Printf("by %s", article.Username)
	if !article.CreatedAt.IsZero() {
		cmd.Printf(" on %s", article.CreatedAt.Format("2006-01-02"))
	}
	cmd.Println()
	cmd.Println()
	if article.Description != nil && !article.Description.IsEmpty() {
		cmd.Println(s.Quote.Render(article.Description.PlainText()))
		cmd.Println()
	}
	cmd.Println(r.Document(article.Body))
	return nil
}

// printArticleLine prints one listing row shared by feed, author, and
// article listings.
func printArticleLine(cmd *cobra.Command, a *domain.Article) {
	var meta []string
	if a.Category != "" {
		meta = append(meta, string(a.Category))
	}
	if a.Username != "" {
		meta = append(meta, "by "+a.Username)
	}
	if !a.CreatedAt.IsZero() {
		meta = append(meta, a.CreatedAt.Format("2006-01-02"))
	}

	line := "  " + a.Title
	if len(meta) > 0 {
		line += "  (" + strings.Join(meta, ", ") + ")"
	}
	cmd.Println(line)
}

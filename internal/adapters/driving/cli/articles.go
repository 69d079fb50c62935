package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List your published articles",
	RunE:  runArticles,
}

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List your drafts",
	RunE:  runDrafts,
}

var deleteDraftFlag bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete one of your articles",
	Long: `Delete a published article, or a draft with --draft.

Deletion is idempotent: deleting an already-deleted article succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var publishResumeToken string

var publishCmd = &cobra.Command{
	Use:   "publish [draft-id]",
	Short: "Publish a draft",
	Long: `Promote a draft to a published article.

Promotion deletes the draft and re-creates it as a published article.
If the second step fails the draft content is not lost: the command
prints a resume token, and 'avenue publish --resume <token>' retries
the remaining step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(articlesCmd)
	rootCmd.AddCommand(draftsCmd)

	deleteCmd.Flags().BoolVar(&deleteDraftFlag, "draft", false, "the id refers to a draft")
	rootCmd.AddCommand(deleteCmd)

	publishCmd.Flags().StringVar(&publishResumeToken, "resume", "", "resume an interrupted publish")
	rootCmd.AddCommand(publishCmd)
}

func runArticles(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	articles, err := articleService.ListArticles(cmd.Context())
	if err != nil {
		return listError(err)
	}
	if len(articles) == 0 {
		cmd.Println("No published articles.")
		return nil
	}

	for i := range articles {
		cmd.Printf("  [%d]", articles[i].ID)
		printArticleLine(cmd, &articles[i])
	}
	return nil
}

func runDrafts(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	drafts, err := articleService.ListDrafts(cmd.Context())
	if err != nil {
		return listError(err)
	}
	if len(drafts) == 0 {
		cmd.Println("No drafts.")
		return nil
	}

	for i := range drafts {
		cmd.Printf("  [%d]", drafts[i].ID)
		printArticleLine(cmd, &drafts[i])
	}
	return nil
}

func listError(err error) error {
	if errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, domain.ErrUnauthorized) {
		return errors.New("not signed in; run 'avenue login' first")
	}
	return fmt.Errorf("listing articles: %w", err)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid article id %q", args[0])
	}

	kind := domain.KindCompleted
	if deleteDraftFlag {
		kind = domain.KindDraft
	}

	if err := articleService.Delete(cmd.Context(), id, kind); err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
	}
	cmd.Printf("Deleted %s %d.\n", kind, id)
	return nil
}

func runPublish(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	if publishResumeToken != "" {
		id, err := articleService.ResumePublish(cmd.Context(), publishResumeToken)
		if err != nil {
			return fmt.Errorf("resuming publish: %w", err)
		}
		cmd.Printf("Published as article %d.\n", id)
		return nil
	}

	if len(args) != 1 {
		return errors.New("a draft id or --resume token is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid draft id %q", args[0])
	}

	draft, err := findRecord(cmd, id, domain.KindDraft)
	if err != nil {
		return err
	}

	publishedID, err := articleService.Publish(cmd.Context(), draft)
	if err != nil {
		var interrupted *driving.PublishInterruptedError
		if errors.As(err, &interrupted) {
			cmd.PrintErrf("Publish interrupted after the draft was removed.\n")
			cmd.PrintErrf("Your article is not lost. Retry with:\n\n")
			cmd.PrintErrf("  avenue publish --resume %s\n", interrupted.Token)
			return err
		}
		if errors.Is(err, domain.ErrMissingTitle) {
			return errors.New("draft has no title; set one before publishing")
		}
		return fmt.Errorf("publishing draft %d: %w", id, err)
	}

	cmd.Printf("Published as article %d.\n", publishedID)
	return nil
}

// findRecord loads the full payload backing one of the author's
// articles or drafts.
func findRecord(cmd *cobra.Command, id int64, kind domain.ArticleKind) (driving.Draft, error) {
	var (
		records []domain.Article
		err     error
	)
	if kind == domain.KindDraft {
		records, err = articleService.ListDrafts(cmd.Context())
	} else {
		records, err = articleService.ListArticles(cmd.Context())
	}
	if err != nil {
		return driving.Draft{}, listError(err)
	}
	for i := range records {
		if records[i].ID == id {
			a := &records[i]
			return driving.Draft{
				ArticleID:   a.ID,
				Kind:        a.Kind,
				Title:       a.Title,
				Category:    a.Category,
				Body:        a.Body,
				Description: a.Description,
				Thumbnail:   a.Thumbnail,
			}, nil
		}
	}
	return driving.Draft{}, fmt.Errorf("no %s with id %d", kind, id)
}

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

var editDraftFlag bool

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit one of your articles",
	Long: `Open the terminal UI editor on an existing article.

By default the id refers to a published article; pass --draft to edit
a draft instead. Saving a published article updates it in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().BoolVar(&editDraftFlag, "draft", false, "the id refers to a draft")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid article id %q", args[0])
	}

	kind := domain.KindCompleted
	if editDraftFlag {
		kind = domain.KindDraft
	}

	draft, err := findRecord(cmd, id, kind)
	if err != nil {
		return err
	}

	return runTUI(cmd, func(app *tui.App) { app.StartEditing(draft) })
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/article-avenue/avenue-cli/internal/adapters/driven/config/file"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the TUI theme",
	Long: `Show the current TUI colour theme, or set it.

The theme is persisted in the config file and applied the next time
the TUI starts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if len(args) == 0 {
		current := configStore.GetString(file.KeyTheme)
		if current == "" {
			current = "dark"
		}
		cmd.Println(current)
		return nil
	}

	name := args[0]
	if name != "light" && name != "dark" {
		return fmt.Errorf("unknown theme %q (want light or dark)", name)
	}
	if err := configStore.Set(file.KeyTheme, name); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	cmd.Printf("Theme set to %s.\n", name)
	return nil
}

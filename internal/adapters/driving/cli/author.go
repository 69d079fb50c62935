package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

var (
	signupName       string
	signupEmail      string
	signupUsername   string
	signupDesc       string
	signupProfilePic string
	signupPassword   string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new Article Avenue account",
	Long: `Register a new account.

A profile picture is optional; pass a local image path with
--profile-pic. The password is prompted without echo unless --password
is given.

Example:
  avenue signup --name "Jo Writer" --email jo@example.com \
    --username jo --desc "Writes about science" --profile-pic ./me.png`,
	RunE: runSignup,
}

var authorCmd = &cobra.Command{
	Use:   "author [username]",
	Short: "Show an author's public profile and articles",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthor,
}

var applyMessage string

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply to become an author",
	Long: `Submit a become-an-author application.

The application text comes from --message, or from stdin when the flag
is omitted. An empty application is rejected before anything is sent.`,
	RunE: runApply,
}

func init() {
	signupCmd.Flags().StringVar(&signupName, "name", "", "display name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "account email")
	signupCmd.Flags().StringVar(&signupUsername, "username", "", "account username")
	signupCmd.Flags().StringVar(&signupDesc, "desc", "", "author description")
	signupCmd.Flags().StringVar(&signupProfilePic, "profile-pic", "", "path to a profile image")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "password (prompted if omitted)")
	rootCmd.AddCommand(signupCmd)

	applyCmd.Flags().StringVarP(&applyMessage, "message", "m", "", "application text")
	rootCmd.AddCommand(applyCmd)

	rootCmd.AddCommand(authorCmd)
}

func runSignup(cmd *cobra.Command, _ []string) error {
	if authorService == nil {
		return errors.New("author service not configured")
	}

	password := signupPassword
	if password == "" {
		var err error
		password, err = readPassword(cmd, "Password: ")
		if err != nil {
			return err
		}
	}

	req := domain.SignUpRequest{
		Name:       signupName,
		Email:      signupEmail,
		Password:   password,
		Username:   signupUsername,
		AuthorDesc: signupDesc,
	}
	if signupProfilePic != "" {
		data, err := os.ReadFile(signupProfilePic)
		if err != nil {
			return fmt.Errorf("reading profile picture: %w", err)
		}
		req.ProfilePic = data
		req.Filename = filepath.Base(signupProfilePic)
	}

	if err := authorService.SignUp(cmd.Context(), req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("missing required fields: %w", err)
		}
		return fmt.Errorf("signup failed: %w", err)
	}

	cmd.Printf("Account %s created. Run 'avenue login %s' to sign in.\n", req.Username, req.Email)
	return nil
}

func runAuthor(cmd *cobra.Command, args []string) error {
	if authorService == nil {
		return errors.New("author service not configured")
	}

	username := args[0]
	profile, err := authorService.Profile(cmd.Context(), username)
	if err != nil {
		return fmt.Errorf("fetching author %q: %w", username, err)
	}

	cmd.Println(profile.Name)
	if profile.Description != "" {
		cmd.Println(profile.Description)
	}
	cmd.Println()

	articles, err := authorService.Articles(cmd.Context(), username)
	if err != nil {
		return fmt.Errorf("fetching articles by %q: %w", username, err)
	}
	if len(articles) == 0 {
		cmd.Println("No published articles.")
		return nil
	}

	cmd.Printf("Articles by %s:\n", username)
	for i := range articles {
		printArticleLine(cmd, &articles[i])
	}
	return nil
}

func runApply(cmd *cobra.Command, _ []string) error {
	if authorService == nil {
		return errors.New("author service not configured")
	}

	message := applyMessage
	if message == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading application text: %w", err)
		}
		message = strings.TrimSpace(string(data))
	}

	if err := authorService.Apply(cmd.Context(), message); err != nil {
		if errors.Is(err, domain.ErrEmptyResponse) {
			return errors.New("application text is empty")
		}
		return fmt.Errorf("submitting application: %w", err)
	}

	cmd.Println("Application submitted.")
	return nil
}

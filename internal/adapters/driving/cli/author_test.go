package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

func TestAuthorCmd_ShowsProfileAndArticles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	authorService = &mockAuthorService{
		profile: &domain.AuthorProfile{
			Name:        "Jo Writer",
			Description: "Writes about science",
		},
		articles: []domain.Article{{Title: "Black Holes"}},
	}

	out, err := execute(t, "author", "jo")

	require.NoError(t, err)
	assert.Contains(t, out, "Jo Writer")
	assert.Contains(t, out, "Writes about science")
	assert.Contains(t, out, "Black Holes")
}

func TestAuthorCmd_NoArticles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "author", "jo")

	require.NoError(t, err)
	assert.Contains(t, out, "No published articles.")
}

func TestApplyCmd_SubmitsMessage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockAuthorService{}
	authorService = mock

	out, err := execute(t, "apply", "-m", "I would like to write here.")

	require.NoError(t, err)
	assert.Equal(t, "I would like to write here.", mock.applied)
	assert.Contains(t, out, "Application submitted.")
}

func TestApplyCmd_ReadsStdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockAuthorService{}
	authorService = mock
	applyMessage = ""
	rootCmd.SetIn(strings.NewReader("From stdin.\n"))
	defer rootCmd.SetIn(nil)

	_, err := execute(t, "apply")

	require.NoError(t, err)
	assert.Equal(t, "From stdin.", mock.applied)
}

func TestApplyCmd_RejectsEmpty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	applyMessage = ""
	rootCmd.SetIn(strings.NewReader(""))
	defer rootCmd.SetIn(nil)

	_, err := execute(t, "apply")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestSignupCmd_Registers(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockAuthorService{}
	authorService = mock

	out, err := execute(t, "signup",
		"--name", "Jo Writer",
		"--email", "jo@example.com",
		"--username", "jo",
		"--desc", "Writes about science",
		"--password", "secret")

	require.NoError(t, err)
	require.NotNil(t, mock.signedUp)
	assert.Equal(t, "Jo Writer", mock.signedUp.Name)
	assert.Equal(t, "jo", mock.signedUp.Username)
	assert.Empty(t, mock.signedUp.ProfilePic)
	assert.Contains(t, out, "Account jo created.")
}

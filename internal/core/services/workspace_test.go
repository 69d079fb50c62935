package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/article-avenue/avenue-cli/internal/adapters/driven/storage/memory"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driving"
)

func TestWorkspaceService_AutosaveAllocatesID(t *testing.T) {
	service := NewWorkspaceService(memory.NewWorkspaceStore())

	body := domain.NewDocument()
	body.Blocks[0].Text = "work in progress"

	id, err := service.Autosave(context.Background(), "", draftWith(body))

	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestWorkspaceService_AutosaveKeepsID(t *testing.T) {
	service := NewWorkspaceService(memory.NewWorkspaceStore())
	ctx := context.Background()

	body := domain.NewDocument()
	body.Blocks[0].Text = "first"
	id, err := service.Autosave(ctx, "", draftWith(body))
	require.NoError(t, err)

	body.Blocks[0].Text = "second"
	again, err := service.Autosave(ctx, id, draftWith(body))

	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestWorkspaceService_RecoverRoundTrip(t *testing.T) {
	service := NewWorkspaceService(memory.NewWorkspaceStore())
	ctx := context.Background()

	body := domain.NewDocument()
	body.Blocks[0].Text = "recoverable text"
	body.ToggleInlineStyle(domain.Selection{EndOffset: 11}, domain.StyleBold)

	d := driving.Draft{
		ArticleID: 42,
		Kind:      domain.KindDraft,
		Title:     "Interrupted Session",
		Category:  domain.CategoryScience,
		Body:      body,
		Thumbnail: domain.Thumbnail{Filename: "cover.png"},
	}
	_, err := service.Autosave(ctx, "", d)
	require.NoError(t, err)

	id, got, err := service.Recover(ctx)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, int64(42), got.ArticleID)
	assert.Equal(t, domain.KindDraft, got.Kind)
	assert.Equal(t, "Interrupted Session", got.Title)
	assert.Equal(t, domain.CategoryScience, got.Category)
	assert.Equal(t, "cover.png", got.Thumbnail.Filename)
	require.NotNil(t, got.Body)
	assert.Equal(t, "recoverable text", got.Body.Blocks[0].Text)
	require.Len(t, got.Body.Blocks[0].StyleRanges, 1)
	assert.Equal(t, domain.StyleBold, got.Body.Blocks[0].StyleRanges[0].Style)
	assert.Nil(t, got.Description)
}

func TestWorkspaceService_RecoverEmptyWorkspace(t *testing.T) {
	service := NewWorkspaceService(memory.NewWorkspaceStore())

	_, _, err := service.Recover(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkspaceService_Discard(t *testing.T) {
	store := memory.NewWorkspaceStore()
	service := NewWorkspaceService(store)
	ctx := context.Background()

	body := domain.NewDocument()
	body.Blocks[0].Text = "done"
	id, err := service.Autosave(ctx, "", draftWith(body))
	require.NoError(t, err)

	require.NoError(t, service.Discard(ctx, id))

	_, _, err = service.Recover(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkspaceService_DiscardEmptyID(t *testing.T) {
	service := NewWorkspaceService(memory.NewWorkspaceStore())

	assert.NoError(t, service.Discard(context.Background(), ""))
}

func draftWith(body *domain.Document) driving.Draft {
	return driving.Draft{
		Kind:     domain.KindDraft,
		Title:    "Untitled",
		Category: domain.CategoryGeneral,
		Body:     body,
	}
}

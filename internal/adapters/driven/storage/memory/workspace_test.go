package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

func TestWorkspaceStore_SaveAndGet(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	buf := domain.DraftBuffer{ID: "a", Title: "First", UpdatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, buf))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
}

func TestWorkspaceStore_SaveRequiresID(t *testing.T) {
	store := NewWorkspaceStore()

	err := store.Save(context.Background(), domain.DraftBuffer{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkspaceStore_GetMissing(t *testing.T) {
	store := NewWorkspaceStore()

	_, err := store.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkspaceStore_PendingPublishRoundTrip(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	p := domain.PendingPublish{Token: "tok-1", Title: "Stuck", CreatedAt: time.Now()}
	require.NoError(t, store.SavePending(ctx, p))

	got, err := store.GetPending(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Stuck", got.Title)

	require.NoError(t, store.DeletePending(ctx, "tok-1"))
	_, err = store.GetPending(ctx, "tok-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkspaceStore_SavePendingRequiresToken(t *testing.T) {
	store := NewWorkspaceStore()

	err := store.SavePending(context.Background(), domain.PendingPublish{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkspaceStore_LatestOrdersByUpdate(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Save(ctx, domain.DraftBuffer{ID: "old", UpdatedAt: base.Add(-time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.DraftBuffer{ID: "new", UpdatedAt: base}))

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", latest.ID)
}

func TestWorkspaceStore_ListMostRecentFirst(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Save(ctx, domain.DraftBuffer{ID: "a", UpdatedAt: base.Add(-2 * time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.DraftBuffer{ID: "b", UpdatedAt: base}))
	require.NoError(t, store.Save(ctx, domain.DraftBuffer{ID: "c", UpdatedAt: base.Add(-time.Hour)}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "c", list[1].ID)
	assert.Equal(t, "a", list[2].ID)
}

func TestWorkspaceStore_DeleteIsIdempotent(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.DraftBuffer{ID: "a", UpdatedAt: time.Now()}))
	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

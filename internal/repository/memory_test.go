package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/catpage/internal/domain"
	"github.com/mtlprog/catpage/internal/repository"
)

func TestMemoryStore_LoadMissing(t *testing.T) {
	store := repository.NewMemoryStore()

	_, err := store.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStore_PutLoad(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	state := &domain.PageState{
		SessionID: "s1",
		ActiveTab: domain.TabCare,
		FunFact:   "A group of cats is called a clowder.",
		Ratings:   []int{1, 0, 0, 5, 0},
	}
	require.NoError(t, store.Put(ctx, state))
	assert.False(t, state.UpdatedAt.IsZero())

	// Mutating the caller's slice must not leak into the store.
	state.Ratings[0] = 3

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.TabCare, got.ActiveTab)
	assert.Equal(t, []int{1, 0, 0, 5, 0}, got.Ratings)

	got.Ratings[1] = 4
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Ratings[1])
}

func TestMemoryStore_ResetRatings(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	require.NoError(t, store.Put(ctx, &domain.PageState{SessionID: "a", ActiveTab: domain.TabAbout, Ratings: []int{2, 0, 0, 0, 0}}))
	require.NoError(t, store.Put(ctx, &domain.PageState{SessionID: "b", ActiveTab: domain.TabBreeds, Ratings: []int{0, 0, 0, 0, 0}}))

	n, err := store.ResetRatings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	a, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, a.Ratings)
	assert.Equal(t, domain.TabAbout, a.ActiveTab)

	require.NoError(t, store.Ping(ctx))
}

func TestMemoryStore_FieldWrites(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Put(ctx, &domain.PageState{SessionID: "a", ActiveTab: domain.TabAbout, Ratings: []int{5, 0, 0, 0, 0}}))

	_, err := store.ResetRatings(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(ctx, "a", domain.TabCare, "A group of cats is called a clowder."))
	require.NoError(t, store.SaveRating(ctx, "a", 3, 2))

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.TabCare, got.ActiveTab)
	assert.Equal(t, "A group of cats is called a clowder.", got.FunFact)
	assert.Equal(t, []int{0, 0, 0, 2, 0}, got.Ratings)

	assert.ErrorIs(t, store.SaveRating(ctx, "missing", 0, 1), domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.SaveSession(ctx, "missing", domain.TabAbout, ""), domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.SaveRating(ctx, "a", 7, 1), domain.ErrBreedNotFound)
}

package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/daybook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRepo_RandomActive_SkipsInactive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLQuoteRepo(database)
	ctx := context.Background()

	active := testutil.NewTestQuote("Keep going.", testutil.WithComment("for Mondays"))
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, testutil.NewTestQuote("Hidden.", testutil.WithInactive())))

	for i := 0; i < 5; i++ {
		q, err := repo.RandomActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, active.ID, q.ID)
		require.NotNil(t, q.Comment)
		assert.Equal(t, "for Mondays", *q.Comment)
	}
}

func TestQuoteRepo_RandomActive_NoneActive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLQuoteRepo(database)
	require.NoError(t, repo.Create(context.Background(), testutil.NewTestQuote("x", testutil.WithInactive())))

	_, err := repo.RandomActive(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteRepo_UpdateAndDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLQuoteRepo(database)
	ctx := context.Background()

	q := testutil.NewTestQuote("Original")
	require.NoError(t, repo.Create(ctx, q))

	q.Text = "Edited"
	q.IsActive = false
	require.NoError(t, repo.Update(ctx, q))

	fetched, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", fetched.Text)
	assert.False(t, fetched.IsActive)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, q.ID))
	assert.ErrorIs(t, repo.Delete(ctx, q.ID), ErrNotFound)
}

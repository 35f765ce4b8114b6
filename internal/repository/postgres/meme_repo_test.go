package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/cricbytes/cricbytes/internal/repository/postgres"
	"github.com/cricbytes/cricbytes/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemeRepository_ListPagination(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		testutil.NewMemeBuilder().
			WithUploader(user).
			WithCreatedAt(base.Add(time.Duration(i) * time.Minute)).
			Build(t, testDB.DB)
	}

	ids := func(memes []*domain.Meme) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(memes))
		for _, m := range memes {
			out = append(out, m.ID)
		}
		return out
	}

	page1, err := repos.Meme.List(ctx, 5, 0)
	require.NoError(t, err)
	require.Len(t, page1, 5)

	page2, err := repos.Meme.List(ctx, 5, 5)
	require.NoError(t, err)
	require.Len(t, page2, 5)

	full, err := repos.Meme.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, full, 10)

	// Newest first
	for i := 1; i < len(full); i++ {
		assert.False(t, full[i].CreatedAt.After(full[i-1].CreatedAt))
	}

	// Two half pages are disjoint and concatenate to the full page
	assert.Equal(t, ids(full), append(ids(page1), ids(page2)...))

	count, err := repos.Meme.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

func TestMemeRepository_IncrementLikesIsAtomic(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	meme := testutil.NewMemeBuilder().WithUploader(user).WithLikes(3).Build(t, testDB.DB)

	const likers = 25

	var wg sync.WaitGroup
	errs := make(chan error, likers)
	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Meme.IncrementLikes(ctx, meme.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// No lost updates
	stored, err := repos.Meme.GetByID(ctx, meme.ID)
	require.NoError(t, err)
	assert.Equal(t, 3+likers, stored.Likes)
}

func TestMemeRepository_IncrementLikesMissingMeme(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)

	_, err := repos.Meme.IncrementLikes(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrMemeNotFound)
}

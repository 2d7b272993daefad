package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/internal/domains/movie/repository"
	"movie-platform-backend/internal/testutil"
	"movie-platform-backend/pkg/database"
)

// Two concurrent runs for an unseen id: one row, one insert overall, any loser sees a conflict
func TestReconcile_ConcurrentInsert_Integration(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPostgresRepository(db.Pool)
	svc := NewIngestService(&fakeFetcher{}, repo, database.NewPoolTxRunner(db.Pool), nil, nil, IngestOptions{})
	ctx := context.Background()

	const runs = 2
	var (
		wg      sync.WaitGroup
		results [runs]*model.IngestResult
		errs    [runs]error
	)

	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Reconcile(ctx, []model.MovieRecord{rec(424242, "Race")})
		}(i)
	}
	wg.Wait()

	inserted := 0
	for i := 0; i < runs; i++ {
		if errs[i] != nil {
			assert.True(t, model.IsReconcileConflict(errs[i]), "unexpected error: %v", errs[i])
			continue
		}
		inserted += results[i].Inserted
	}
	assert.Equal(t, 1, inserted)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestReconcile_Idempotent_Integration(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPostgresRepository(db.Pool)
	svc := NewIngestService(&fakeFetcher{}, repo, database.NewPoolTxRunner(db.Pool), nil, nil, IngestOptions{})
	ctx := context.Background()

	batch := model.NormalizeAll([]model.RawRecord{
		{"id": 1, "title": "One", "release_date": "2020-01-02", "popularity": 3.5},
		{"id": 2, "name": "Two", "media_type": "tv"},
	})

	first, err := svc.Reconcile(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)

	second, err := svc.Reconcile(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Updated)

	list, err := repo.List(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "One", list[0].Title)
	assert.True(t, list[1].IsSeries)
}

package repos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promostore/internal/domain"
	"promostore/internal/repos"
)

func newSyncLogRepo(t *testing.T) *repos.SyncLogRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewSyncLogRepo(db)
}

func TestSyncLogLifecycle(t *testing.T) {
	r := newSyncLogRepo(t)
	ctx := context.Background()

	l, err := r.Start(ctx, domain.SyncProducts)
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, domain.SyncRunning, l.Status)
	assert.Nil(t, l.CompletedAt)

	got, err := r.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncRunning, got.Status)
	assert.False(t, got.Terminal())

	require.NoError(t, r.Complete(ctx, l.ID, 250))
	got, err = r.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncCompleted, got.Status)
	assert.Equal(t, 250, got.RecordsProcessed)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(got.StartedAt))
}

func TestSyncLogReachesTerminalStatusOnce(t *testing.T) {
	r := newSyncLogRepo(t)
	ctx := context.Background()

	l, err := r.Start(ctx, domain.SyncCategories)
	require.NoError(t, err)
	require.NoError(t, r.Fail(ctx, l.ID, "vendor down"))

	assert.ErrorIs(t, r.Complete(ctx, l.ID, 10), repos.ErrLogFinished)
	assert.ErrorIs(t, r.Fail(ctx, l.ID, "again"), repos.ErrLogFinished)

	got, err := r.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncFailed, got.Status)
	assert.Equal(t, "vendor down", got.ErrorMessage)
	assert.Equal(t, 0, got.RecordsProcessed)
	assert.NotNil(t, got.CompletedAt)

	assert.ErrorIs(t, r.Complete(ctx, "missing", 1), repos.ErrNotFound)
}

func TestSyncLogListLatest(t *testing.T) {
	r := newSyncLogRepo(t)
	ctx := context.Background()

	var ids []string
	for _, st := range []domain.SyncType{domain.SyncCategories, domain.SyncBrandingMethods, domain.SyncProducts} {
		l, err := r.Start(ctx, st)
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}

	got, err := r.ListLatest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[1], got[1].ID)
}

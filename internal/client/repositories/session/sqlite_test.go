package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dantsyura/nexus-cli/internal/common"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := InitDatabase(context.Background(), "file:sessionrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Clear(context.Background()))
	return repo
}

func TestSQLiteRepository_SaveAndLoadUser(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveUser(ctx, 7, "dan"))

	id, err := repo.ActiveUserID(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)

	username, err := repo.Username(ctx)
	require.NoError(t, err)
	require.Equal(t, "dan", username)
}

func TestSQLiteRepository_SaveUser_Overwrites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveUser(ctx, 7, "dan"))
	require.NoError(t, repo.SaveUser(ctx, 8, "corwin"))

	id, err := repo.ActiveUserID(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(8), id)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveUser(ctx, 7, "dan"))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.ActiveUserID(ctx)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)

	_, err = repo.Username(ctx)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestSQLiteRepository_NoSession(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.ActiveUserID(context.Background())
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestSQLiteRepository_RawKeyValueRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	v, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, repo.Set(ctx, "k", []byte("v1")))
	require.NoError(t, repo.Set(ctx, "k", []byte("v2")))

	v, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), v)
}

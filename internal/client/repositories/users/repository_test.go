package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/storage"
	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupKV(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return storage.NewSQLiteRepository(db)
}

func TestCreate_ThenGetByEmailIgnoresCase(t *testing.T) {
	ctx := context.Background()
	r := NewKVRepository(setupKV(t))

	require.NoError(t, r.Create(ctx, &models.User{Email: "ann@example.com", FirstName: "Ann"}))

	u, err := r.GetByEmail(ctx, "  ANN@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.FirstName)
}

func TestCreate_DuplicateKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	r := NewKVRepository(setupKV(t))

	require.NoError(t, r.Create(ctx, &models.User{Email: "ann@example.com", FirstName: "Ann"}))
	err := r.Create(ctx, &models.User{Email: "Ann@Example.com", FirstName: "Other"})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ann", list[0].FirstName)
}

func TestGetByEmail_Missing(t *testing.T) {
	r := NewKVRepository(setupKV(t))
	_, err := r.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	r := NewKVRepository(setupKV(t))

	require.ErrorIs(t, r.Update(ctx, &models.User{Email: "x@example.com"}), common.ErrNotFound)

	require.NoError(t, r.Create(ctx, &models.User{Email: "a@example.com"}))
	require.NoError(t, r.Create(ctx, &models.User{Email: "b@example.com"}))
	require.NoError(t, r.Update(ctx, &models.User{Email: "b@example.com", Verified: true}))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].Verified)
	assert.True(t, list[1].Verified)
}

func TestList_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := setupKV(t)
	require.NoError(t, kv.Set(ctx, UsersKey, []byte("{not json")))

	_, err := NewKVRepository(kv).List(ctx)
	require.Error(t, err)
}

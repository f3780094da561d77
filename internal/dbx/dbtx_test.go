package dbx_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories/users"
	"github.com/dmitrijs2005/ideaboard/internal/client/storage"
	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/dbx"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupKV(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func value(t *testing.T, db dbx.DBTX, key string) string {
	t.Helper()
	v, err := storage.NewSQLiteRepository(db).Get(context.Background(), key)
	require.NoError(t, err)
	return string(v)
}

func TestWithTx_CommitsAllWrites(t *testing.T) {
	db := setupKV(t)

	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := storage.NewSQLiteRepository(tx)
		if err := kv.Set(ctx, "ignite_session_v1", []byte("tok")); err != nil {
			return err
		}
		return kv.Set(ctx, "ignite_ideas_v1", []byte("[]"))
	})
	require.NoError(t, err)
	require.Equal(t, "tok", value(t, db, "ignite_session_v1"))
	require.Equal(t, "[]", value(t, db, "ignite_ideas_v1"))
}

func TestWithTx_SeesOwnWrites(t *testing.T) {
	db := setupKV(t)

	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewKVRepository(storage.NewSQLiteRepository(tx))
		if err := repo.Create(ctx, &models.User{Email: "ann@example.com"}); err != nil {
			return err
		}
		u, err := repo.GetByEmail(ctx, "ann@example.com")
		if err != nil {
			return err
		}
		u.Verified = true
		return repo.Update(ctx, u)
	})
	require.NoError(t, err)

	u, err := users.NewKVRepository(storage.NewSQLiteRepository(db)).GetByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	require.True(t, u.Verified)
}

func TestWithTx_DuplicateEmailRollsBack(t *testing.T) {
	db := setupKV(t)
	ctx := context.Background()

	seed := users.NewKVRepository(storage.NewSQLiteRepository(db))
	require.NoError(t, seed.Create(ctx, &models.User{Email: "ann@example.com", FirstName: "Ann"}))

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := storage.NewSQLiteRepository(tx)
		if err := kv.Set(ctx, "ignite_session_v1", []byte("tok")); err != nil {
			return err
		}
		return users.NewKVRepository(kv).Create(ctx, &models.User{Email: "ann@example.com", FirstName: "Other"})
	})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	require.Empty(t, value(t, db, "ignite_session_v1"), "session write must be rolled back")
	list, err := seed.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Ann", list[0].FirstName)
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupKV(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Empty(t, value(t, db, "ignite_ideas_v1"), "must rollback on panic")
	}()

	_ = dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		require.NoError(t, storage.NewSQLiteRepository(tx).Set(ctx, "ignite_ideas_v1", []byte("[]")))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupKV(t)
	require.NoError(t, db.Close())

	called := false
	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
}

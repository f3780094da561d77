// Package repositories vends the typed client repositories, all backed by the
// one local key-value store and bound to a dbx.DBTX so a service can run a
// read-modify-write sequence inside a single transaction.
package repositories

import (
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories/codes"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories/ideas"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories/session"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories/users"
	"github.com/dmitrijs2005/ideaboard/internal/client/storage"
	"github.com/dmitrijs2005/ideaboard/internal/dbx"
)

type Manager interface {
	Users(db dbx.DBTX) users.Repository
	Ideas(db dbx.DBTX) ideas.Repository
	Codes(db dbx.DBTX) codes.Repository
	Session(db dbx.DBTX) session.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}

// KVManager builds every repository on storage.SQLiteRepository.
type KVManager struct{}

func NewKVManager() *KVManager {
	return &KVManager{}
}

func (m *KVManager) Users(db dbx.DBTX) users.Repository {
	return users.NewKVRepository(storage.NewSQLiteRepository(db))
}

func (m *KVManager) Ideas(db dbx.DBTX) ideas.Repository {
	return ideas.NewKVRepository(storage.NewSQLiteRepository(db))
}

func (m *KVManager) Codes(db dbx.DBTX) codes.Repository {
	return codes.NewKVRepository(storage.NewSQLiteRepository(db))
}

func (m *KVManager) Session(db dbx.DBTX) session.Repository {
	return session.NewKVRepository(storage.NewSQLiteRepository(db))
}

func (m *KVManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewKVRepository(storage.NewSQLiteRepository(db))
}

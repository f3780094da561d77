package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/ideaboard/internal/dbx"
	"github.com/dmitrijs2005/ideaboard/internal/server/repositories/ideas"
	"github.com/dmitrijs2005/ideaboard/internal/server/repositories/profiles"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Ideas(db dbx.DBTX) ideas.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}

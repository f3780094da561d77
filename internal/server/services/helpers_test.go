package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/dbx"
	"github.com/dmitrijs2005/ideaboard/internal/server/models"
	"github.com/dmitrijs2005/ideaboard/internal/server/repositories/ideas"
	"github.com/dmitrijs2005/ideaboard/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/ideaboard/internal/server/repositories/repomanager"
)

// -------- test fakes --------

type fakeIdeasRepo struct {
	created   []*models.Idea
	createErr error

	list      []*models.Idea
	listErr   error
	lastLimit int
}

func (f *fakeIdeasRepo) Create(_ context.Context, idea *models.Idea) (*models.Idea, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	idea.CreatedAt = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	f.created = append(f.created, idea)
	return idea, nil
}

func (f *fakeIdeasRepo) List(_ context.Context, limit int) ([]*models.Idea, error) {
	f.lastLimit = limit
	return f.list, f.listErr
}

type fakeProfilesRepo struct {
	saved map[string]*models.Profile
	err   error
}

func (f *fakeProfilesRepo) Upsert(_ context.Context, p *models.Profile) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.saved == nil {
		f.saved = map[string]*models.Profile{}
	}
	if prev, ok := f.saved[p.Email]; ok {
		p.Joined = prev.Joined
	}
	f.saved[p.Email] = p
	return p, nil
}

func (f *fakeProfilesRepo) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	if p, ok := f.saved[email]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

type fakeRepoMgr struct {
	repomanager.RepositoryManager
	ideas    *fakeIdeasRepo
	profiles *fakeProfilesRepo
}

func (m *fakeRepoMgr) Ideas(dbx.DBTX) ideas.Repository       { return m.ideas }
func (m *fakeRepoMgr) Profiles(dbx.DBTX) profiles.Repository { return m.profiles }

func newFakes(t *testing.T) (*sql.DB, *fakeRepoMgr) {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New err: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, &fakeRepoMgr{ideas: &fakeIdeasRepo{}, profiles: &fakeProfilesRepo{}}
}

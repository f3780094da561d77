package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/dmitrijs2005/ideaboard/internal/client/client"
	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	PingErr error

	NotifyErr error
	Notices   []models.SignupNotice

	ListRet []models.Idea
	ListErr error

	CreateErr    error
	CreateTokens []string
	Created      []models.Idea

	ProfileErr error
	Profiles   []models.Profile

	PresignRet    *models.ImageUpload
	PresignErr    error
	PresignCTypes []string
	UploadErr     error
	Uploaded      []byte
}

func (f *fakeClient) Close() error                   { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) NotifySignup(ctx context.Context, notice models.SignupNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Notices = append(f.Notices, notice)
	return f.NotifyErr
}

func (f *fakeClient) ListIdeas(ctx context.Context) ([]models.Idea, error) {
	return f.ListRet, f.ListErr
}

func (f *fakeClient) CreateIdea(ctx context.Context, token string, idea *models.Idea) (*models.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateTokens = append(f.CreateTokens, token)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.Created = append(f.Created, *idea)
	return idea, nil
}

func (f *fakeClient) SaveProfile(ctx context.Context, token string, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProfileErr != nil {
		return f.ProfileErr
	}
	f.Profiles = append(f.Profiles, *profile)
	return nil
}

func (f *fakeClient) PresignImageUpload(ctx context.Context, token, contentType string) (*models.ImageUpload, error) {
	f.PresignCTypes = append(f.PresignCTypes, contentType)
	return f.PresignRet, f.PresignErr
}

func (f *fakeClient) UploadImage(ctx context.Context, upload *models.ImageUpload, contentType string, body io.Reader) error {
	if f.UploadErr != nil {
		return f.UploadErr
	}
	b, err := io.ReadAll(body)
	f.Uploaded = b
	return err
}

var (
	errUnavailable = client.ErrUnavailable
	errRejected    = &client.StatusError{StatusCode: 500, Body: "boom"}
)

// ---- fake code sender ----

type fakeSender struct {
	mu    sync.Mutex
	Err   error
	Codes map[string][]string
}

func (s *fakeSender) SendCode(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Codes == nil {
		s.Codes = map[string][]string{}
	}
	s.Codes[email] = append(s.Codes[email], code)
	return s.Err
}

func (s *fakeSender) last(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.Codes[email]
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// ---- fake alternate feed ----

type fakeFeed struct {
	ideas []models.Idea
	err   error
}

func (f *fakeFeed) Ideas(ctx context.Context) ([]models.Idea, error) {
	return f.ideas, f.err
}

var errFeed = errors.New("feed file missing")

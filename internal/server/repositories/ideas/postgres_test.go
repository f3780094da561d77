package ideas

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ideaboard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^\s*INSERT\s+INTO\s+ideas\s*\(id,\s*title,\s*description,\s*category,\s*tags,\s*author,\s*image,\s*submitted_by\)\s*VALUES\s*\(\$1,.*\$8\)\s*RETURNING\s+created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(insertQ).
		WithArgs("id-1", "Solar Bench", "charges phones", "Energy", `["ai","solar"]`, "ann@example.com", "", "ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), &models.Idea{
		ID: "id-1", Title: "Solar Bench", Description: "charges phones", Category: "Energy",
		Tags: []string{"ai", "solar"}, Author: "ann@example.com", SubmittedBy: "ann@example.com",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_NilTagsStoredAsEmptyArray(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("id-2", "t", "d", "", `[]`, "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	if _, err := repo.Create(context.Background(), &models.Idea{ID: "id-2", Title: "t", Description: "d"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Idea{ID: "x", Title: "t", Description: "d"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

var ideaCols = []string{"id", "title", "description", "category", "tags", "author", "image", "submitted_by", "created_at"}

func TestList_NewestFirstWithLimit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(ideaCols).
		AddRow("b", "B", "d", "", []byte(`["x"]`), "", "", "", now).
		AddRow("a", "A", "d", "", []byte(`[]`), "", "", "", now.Add(-time.Hour))

	mock.ExpectQuery(`(?s)SELECT\s+id,.*FROM\s+ideas\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$1`).
		WithArgs(10).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected ideas: %+v", got)
	}
	if len(got[0].Tags) != 1 || got[0].Tags[0] != "x" {
		t.Fatalf("unexpected tags: %v", got[0].Tags)
	}
	if got[1].Tags == nil || len(got[1].Tags) != 0 {
		t.Fatalf("want empty non-nil tags, got %#v", got[1].Tags)
	}
}

func TestList_NoLimitEmpty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)ORDER\s+BY\s+created_at\s+DESC\s*$`).
		WillReturnRows(sqlmock.NewRows(ideaCols))

	got, err := repo.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty slice, got %#v", got)
	}
}

func TestList_BadTags(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows(ideaCols).AddRow("a", "A", "d", "", []byte(`{`), "", "", "", time.Now()))

	if _, err := repo.List(context.Background(), 0); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestList_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), 5)
	if err == nil || !regexp.MustCompile(`failed to select ideas: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

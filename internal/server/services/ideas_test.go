package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaService_Create(t *testing.T) {
	db, rm := newFakes(t)
	svc := NewIdeaService(db, rm)

	got, err := svc.Create(context.Background(), &models.Idea{
		ID:          "client-chosen",
		Title:       "  Solar Bench ",
		Description: "charges phones",
		Tags:        []string{" ai", "", "solar "},
	}, "ann@example.com")
	require.NoError(t, err)

	_, perr := uuid.Parse(got.ID)
	assert.NoError(t, perr, "server assigns a uuid")
	assert.NotEqual(t, "client-chosen", got.ID)
	assert.Equal(t, "Solar Bench", got.Title)
	assert.Equal(t, []string{"ai", "solar"}, got.Tags)
	assert.Equal(t, "ann@example.com", got.Author)
	assert.Equal(t, "ann@example.com", got.SubmittedBy)
	assert.False(t, got.CreatedAt.IsZero())
	require.Len(t, rm.ideas.created, 1)
}

func TestIdeaService_Create_AuthorFallbacks(t *testing.T) {
	db, rm := newFakes(t)
	svc := NewIdeaService(db, rm)
	ctx := context.Background()

	got, err := svc.Create(ctx, &models.Idea{Title: "t", Description: "d", Author: "Ann Lee"}, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", got.Author)

	got, err = svc.Create(ctx, &models.Idea{Title: "t", Description: "d"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", got.Author)
	assert.Empty(t, got.SubmittedBy)
}

func TestIdeaService_Create_Validation(t *testing.T) {
	db, rm := newFakes(t)
	svc := NewIdeaService(db, rm)

	_, err := svc.Create(context.Background(), &models.Idea{Title: "  ", Image: "not a url"}, "")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "description is required")
	assert.Contains(t, err.Error(), "image must be a valid URL")
	assert.Empty(t, rm.ideas.created)
}

func TestIdeaService_Create_RepoError(t *testing.T) {
	db, rm := newFakes(t)
	rm.ideas.createErr = errors.New("db down")
	svc := NewIdeaService(db, rm)

	_, err := svc.Create(context.Background(), &models.Idea{Title: "t", Description: "d"}, "")
	require.EqualError(t, err, "db down")
}

func TestIdeaService_List_ClampsLimit(t *testing.T) {
	db, rm := newFakes(t)
	rm.ideas.list = []*models.Idea{{ID: "a"}}
	svc := NewIdeaService(db, rm)
	ctx := context.Background()

	got, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, DefaultListLimit, rm.ideas.lastLimit)

	_, err = svc.List(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, rm.ideas.lastLimit)

	_, err = svc.List(ctx, 10_000)
	require.NoError(t, err)
	assert.Equal(t, DefaultListLimit, rm.ideas.lastLimit)
}

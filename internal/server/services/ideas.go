package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/ideaboard/internal/server/models"
	"github.com/dmitrijs2005/ideaboard/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultListLimit caps GET /api/ideas.
const DefaultListLimit = 100

const anonymousAuthor = "Anonymous"

type IdeaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validate    *validator.Validate
}

func NewIdeaService(db *sql.DB, repomanager repomanager.RepositoryManager) *IdeaService {
	return &IdeaService{
		db:          db,
		repomanager: repomanager,
		validate:    newValidator(),
	}
}

// Create stores a new idea. submitter is the email of a verified bearer
// token or "". The server assigns the id and creation time; a missing
// author falls back to the submitter, then to "Anonymous".
func (s *IdeaService) Create(ctx context.Context, in *models.Idea, submitter string) (*models.Idea, error) {
	idea := &models.Idea{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Tags:        cleanList(in.Tags),
		Author:      strings.TrimSpace(in.Author),
		Image:       strings.TrimSpace(in.Image),
		SubmittedBy: submitter,
	}
	if idea.Author == "" {
		idea.Author = submitter
	}
	if idea.Author == "" {
		idea.Author = anonymousAuthor
	}

	if err := validateStruct(s.validate, idea); err != nil {
		return nil, err
	}

	return s.repomanager.Ideas(s.db).Create(ctx, idea)
}

// List returns the newest ideas first, at most limit of them.
func (s *IdeaService) List(ctx context.Context, limit int) ([]*models.Idea, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	return s.repomanager.Ideas(s.db).List(ctx, limit)
}

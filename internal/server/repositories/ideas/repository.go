package ideas

import (
	"context"

	"github.com/dmitrijs2005/ideaboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, idea *models.Idea) (*models.Idea, error)
	// List returns at most limit ideas, newest first. A non-positive limit
	// returns everything.
	List(ctx context.Context, limit int) ([]*models.Idea, error)
}

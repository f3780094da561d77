package profiles

import (
	"context"

	"github.com/dmitrijs2005/ideaboard/internal/server/models"
)

type Repository interface {
	// Upsert stores p keyed by email; the original join time is kept.
	Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// Package profiles provides the PostgreSQL-backed registration profile
// repository.
package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/dbx"
	"github.com/dmitrijs2005/ideaboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	encoded, err := json.Marshal(interests)
	if err != nil {
		return nil, fmt.Errorf("encode interests: %w", err)
	}

	query := `
		INSERT INTO profiles (email, first_name, last_name, education_level, interests, about, joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email)
		DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			education_level = EXCLUDED.education_level,
			interests = EXCLUDED.interests,
			about = EXCLUDED.about,
			updated_at = now()
		RETURNING joined, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		p.Email, p.FirstName, p.LastName, p.EducationLevel, string(encoded), p.About, p.Joined,
	).Scan(&p.Joined, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT email, first_name, last_name, education_level, interests, about, joined, updated_at
		FROM profiles
		WHERE email = $1
	`

	var (
		p         models.Profile
		interests []byte
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&p.Email, &p.FirstName, &p.LastName, &p.EducationLevel, &interests, &p.About, &p.Joined, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(interests, &p.Interests); err != nil {
		return nil, fmt.Errorf("decode interests: %w", err)
	}
	return &p, nil
}

// Package ideas provides the PostgreSQL-backed idea repository.
package ideas

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/dbx"
	"github.com/dmitrijs2005/ideaboard/internal/server/models"
)

// PostgresRepository implements idea storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts idea and fills CreatedAt from the database clock.
func (r *PostgresRepository) Create(ctx context.Context, idea *models.Idea) (*models.Idea, error) {
	tags, err := encodeTags(idea.Tags)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO ideas (id, title, description, category, tags, author, image, submitted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		idea.ID, idea.Title, idea.Description, idea.Category, tags, idea.Author, idea.Image, idea.SubmittedBy,
	).Scan(&idea.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return idea, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.Idea, error) {
	query := `
		SELECT id, title, description, category, tags, author, image, submitted_by, created_at
		FROM ideas
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select ideas: %w", err)
	}
	defer rows.Close()

	result := []*models.Idea{}
	for rows.Next() {
		var (
			item models.Idea
			tags []byte
		)
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Category, &tags,
			&item.Author, &item.Image, &item.SubmittedBy, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &item.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of idea %s: %w", item.ID, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

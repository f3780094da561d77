// Package ideas persists the local idea feed: an append-only, newest-first
// JSON list under one store key.
package ideas

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/storage"
)

// IdeasKey is the store key holding the local idea sequence.
const IdeasKey = "ignite_ideas_v1"

type Repository interface {
	// List returns the local sequence, most recent first.
	List(ctx context.Context) ([]models.Idea, error)

	// Prepend puts idea at the head of the sequence. Existing records are
	// never modified.
	Prepend(ctx context.Context, idea *models.Idea) error
}

type KVRepository struct {
	kv storage.Repository
}

func NewKVRepository(kv storage.Repository) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) List(ctx context.Context) ([]models.Idea, error) {
	var list []models.Idea
	if _, err := storage.GetJSON(ctx, r.kv, IdeasKey, &list); err != nil {
		return nil, fmt.Errorf("load ideas: %w", err)
	}
	return list, nil
}

func (r *KVRepository) Prepend(ctx context.Context, idea *models.Idea) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	list = append([]models.Idea{*idea}, list...)
	if err := storage.SetJSON(ctx, r.kv, IdeasKey, list); err != nil {
		return fmt.Errorf("save ideas: %w", err)
	}
	return nil
}

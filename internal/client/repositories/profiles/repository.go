// Package profiles keeps locally saved registration profiles, one per email.
package profiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/storage"
	"github.com/dmitrijs2005/ideaboard/internal/common"
)

// ProfilesKey is the store key of the email -> profile object.
const ProfilesKey = "ignite_profiles_v1"

type Repository interface {
	Get(ctx context.Context, email string) (*models.Profile, error)
	Put(ctx context.Context, profile *models.Profile) error
}

type KVRepository struct {
	kv storage.Repository
}

func NewKVRepository(kv storage.Repository) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) load(ctx context.Context) (map[string]models.Profile, error) {
	all := map[string]models.Profile{}
	if _, err := storage.GetJSON(ctx, r.kv, ProfilesKey, &all); err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return all, nil
}

func (r *KVRepository) Get(ctx context.Context, email string) (*models.Profile, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := all[common.NormalizeEmail(email)]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (r *KVRepository) Put(ctx context.Context, profile *models.Profile) error {
	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	all[common.NormalizeEmail(profile.Email)] = *profile
	if err := storage.SetJSON(ctx, r.kv, ProfilesKey, all); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	return nil
}

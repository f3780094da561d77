// Package users persists local account records as one JSON list under a
// single store key, keeping at most one record per normalized email.
package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/storage"
	"github.com/dmitrijs2005/ideaboard/internal/common"
)

// UsersKey is the store key holding the user list.
const UsersKey = "ignite_users_v1"

// Repository describes the account record operations used by the account service.
type Repository interface {
	// List returns every stored user in insertion order.
	List(ctx context.Context) ([]models.User, error)

	// GetByEmail looks a user up by normalized email; common.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Create appends a user; common.ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *models.User) error

	// Update replaces the stored record with the same email; common.ErrNotFound if absent.
	Update(ctx context.Context, user *models.User) error
}

// KVRepository implements Repository on top of the local key-value store.
type KVRepository struct {
	kv storage.Repository
}

func NewKVRepository(kv storage.Repository) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) List(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if _, err := storage.GetJSON(ctx, r.kv, UsersKey, &list); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return list, nil
}

func (r *KVRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(list, email); i >= 0 {
		u := list[i]
		return &u, nil
	}
	return nil, common.ErrNotFound
}

func (r *KVRepository) Create(ctx context.Context, user *models.User) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	if indexOf(list, user.Email) >= 0 {
		return common.ErrDuplicateEmail
	}
	list = append(list, *user)
	if err := storage.SetJSON(ctx, r.kv, UsersKey, list); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *KVRepository) Update(ctx context.Context, user *models.User) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	i := indexOf(list, user.Email)
	if i < 0 {
		return common.ErrNotFound
	}
	list[i] = *user
	if err := storage.SetJSON(ctx, r.kv, UsersKey, list); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func indexOf(list []models.User, email string) int {
	key := common.NormalizeEmail(email)
	for i := range list {
		if common.NormalizeEmail(list[i].Email) == key {
			return i
		}
	}
	return -1
}

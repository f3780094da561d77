// Package codes stores one pending verification code per email.
package codes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/storage"
	"github.com/dmitrijs2005/ideaboard/internal/common"
)

// KeyPrefix prefixes the per-email code keys.
const KeyPrefix = "ignite_otc_v1:"

// Key returns the store key of email's code.
func Key(email string) string {
	return KeyPrefix + common.NormalizeEmail(email)
}

type Repository interface {
	// Get returns email's pending code; common.ErrNotFound if none.
	Get(ctx context.Context, email string) (*models.VerificationCode, error)

	// Put stores code, replacing any previous code for the same email.
	Put(ctx context.Context, code *models.VerificationCode) error

	// Delete removes email's code. Idempotent.
	Delete(ctx context.Context, email string) error
}

type KVRepository struct {
	kv storage.Repository
}

func NewKVRepository(kv storage.Repository) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) Get(ctx context.Context, email string) (*models.VerificationCode, error) {
	var c models.VerificationCode
	ok, err := storage.GetJSON(ctx, r.kv, Key(email), &c)
	if err != nil {
		return nil, fmt.Errorf("load verification code: %w", err)
	}
	if !ok {
		return nil, common.ErrNotFound
	}
	return &c, nil
}

func (r *KVRepository) Put(ctx context.Context, code *models.VerificationCode) error {
	if err := storage.SetJSON(ctx, r.kv, Key(code.Email), code); err != nil {
		return fmt.Errorf("save verification code: %w", err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, email string) error {
	return r.kv.Delete(ctx, Key(email))
}

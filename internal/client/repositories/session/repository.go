// Package session stores the session pointer: the signed token of the
// currently logged-in user, or nothing.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/client/storage"
)

// SessionKey is the store key of the session token.
const SessionKey = "ignite_session_v1"

type Repository interface {
	// Token returns the stored session token, or "" when logged out.
	Token(ctx context.Context) (string, error)

	// SetToken replaces the session token.
	SetToken(ctx context.Context, token string) error

	// Clear removes the session token. Idempotent.
	Clear(ctx context.Context) error
}

type KVRepository struct {
	kv storage.Repository
}

func NewKVRepository(kv storage.Repository) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) Token(ctx context.Context) (string, error) {
	raw, err := r.kv.Get(ctx, SessionKey)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return string(raw), nil
}

func (r *KVRepository) SetToken(ctx context.Context, token string) error {
	if err := r.kv.Set(ctx, SessionKey, []byte(token)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *KVRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, SessionKey)
}

// Package storage is the client's local key-value store: the one persistent
// handle every client component owns explicitly. Values are opaque bytes;
// typed repositories encode JSON on top of it.
package storage

import (
	"context"
)

// Repository is a string-keyed byte store. Get returns (nil, nil) for a
// missing key; Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

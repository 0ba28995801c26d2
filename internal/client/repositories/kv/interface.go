// Package kv is the durable, string-keyed key-value store the identity and
// progression services persist into.
//
// Contract shared by every implementation:
//   - Get of an absent key returns (nil, nil); absence and removal are the same.
//   - Delete of an absent key is a no-op.
//   - WithTx runs fn against a view whose writes commit together only when
//     fn returns nil.
package kv

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every entry whose key starts with prefix ("" for all).
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

type Store interface {
	Repository
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}

// Package kv is the key/value repository behind the local store. Values are
// opaque bytes; a missing key reads as (nil, nil).
package kv

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

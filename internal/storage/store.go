package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KV is the persistence boundary: a string-keyed map of serialized
// collections. One logical collection per key; values are opaque to the
// store. Reads reflect the most recent write.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

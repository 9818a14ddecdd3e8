package draft

import (
	"context"
	"errors"
)

// ErrNotFound reports an empty slot.
var ErrNotFound = errors.New("draft: not found")

// Store persists raw slot payloads by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

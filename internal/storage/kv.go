package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("storage: key not found")

// KV is the durable string store backing the payment timers. Only the
// timer code writes through it; keys are namespaced by booking id.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Package kvstore provides the key/value byte stores the cart persists into.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Backend is an asynchronous byte store addressed by string keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports an absent key. Backends must return it (possibly
// wrapped) so the store can tell "missing" from "broken".
var ErrNotFound = errors.New("storage: key not found")

// Backend is the keyed string store the conversation state persists to.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Package metadata is the key/value store of the local vault. It keeps the
// sealed session token, the username and the local history.
package metadata

import (
	"context"
)

const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyHistory  = "twr_history"
)

// SessionKeys are the keys that belong to a logged-in user and are removed
// together on logout.
var SessionKeys = []string{KeyToken, KeyUsername}

// Repository reads and writes opaque values by key. Get returns (nil, nil)
// when the key is absent and a non-nil empty slice for an empty value.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, keys ...string) error
}

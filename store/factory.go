package store

import (
	"context"
	"fmt"
	"time"

	"mealcart/domain"
)

type options struct {
	redisTTL time.Duration
}

// Option tunes a backend built by NewStore
type Option func(*options)

// WithRedisTTL sets the expiry of saved carts in the redis store
func WithRedisTTL(ttl time.Duration) Option {
	return func(o *options) { o.redisTTL = ttl }
}

// NewStore constructs a domain.CartStore by kind: "memory", "file", "redis" or "sqlite".
// target is the file path for file, the URL for redis and the DSN for sqlite;
// for memory it is ignored.
func NewStore(ctx context.Context, kind, target string, opts ...Option) (domain.CartStore, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	switch kind {
	case "memory", "mem":
		return NewInMemoryStore(), nil
	case "file":
		if target == "" {
			return nil, fmt.Errorf("file path required for file store")
		}
		return NewFileStore(target)
	case "redis":
		if target == "" {
			return nil, fmt.Errorf("redis url required for redis store")
		}
		return NewRedisStore(ctx, target, o.redisTTL)
	case "sqlite":
		if target == "" {
			return nil, fmt.Errorf("database path required for sqlite store")
		}
		return NewSQLiteStore(target)
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}

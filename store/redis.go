package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mealcart/domain"

	"github.com/redis/go-redis/v9"
)

// cmdable is the slice of the redis client the store needs
type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
}

// RedisStore keeps each snapshot as one JSON string value
type RedisStore struct {
	client cmdable
	raw    *redis.Client
	prefix string
	ttl    time.Duration
}

var _ domain.CartStore = (*RedisStore)(nil)

// NewRedisStore connects to the redis server at url (redis://host:port/db)
// and pings it once. A positive ttl expires an idle cart that long after
// its last save; zero keeps it forever.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	if ttl < 0 {
		return nil, fmt.Errorf("redis ttl must not be negative: %s", ttl)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: raw, raw: raw, prefix: "mealcart:", ttl: ttl}, nil
}

// Close releases the underlying connection pool
func (s *RedisStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}

func (s *RedisStore) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.EmptySnapshot(), nil
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("redis get %s: %w", key, err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	if snap.Lines == nil {
		snap = domain.EmptySnapshot()
	}
	return snap, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, snap domain.Snapshot) error {
	if snap.Lines == nil {
		snap = domain.EmptySnapshot()
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefix+key, string(b), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

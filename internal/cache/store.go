package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 10 * time.Minute
	keyPrefix  = "deals:"
)

// Store keeps raw proxy responses in Redis for a short time.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

// New connects to redisURL, which may be a redis:// URL or a bare host:port.
func New(redisURL string, ttl time.Duration) *Store {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{Client: redis.NewClient(opts), TTL: ttl}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// Get returns the cached body. Any Redis failure counts as a miss.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.Client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.Client.Set(ctx, keyPrefix+key, value, s.TTL).Err()
}

func (s *Store) Close() error {
	return s.Client.Close()
}

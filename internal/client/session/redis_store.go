package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "shift:session:" // shift:session:{name}
	defaultRedisTTL  = 7 * 24 * time.Hour
)

// RedisStore shares one session between processes, keyed by name.
type RedisStore struct {
	client *redis.Client
	name   string
	ttl    time.Duration
	now    func() time.Time
}

type RedisOption func(*RedisStore)

// WithRedisClock replaces time.Now when bounding the key TTL. Give it the
// same clock as the Manager.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisStore) {
		s.now = now
	}
}

// NewRedisStore returns a store under shift:session:{name}. A non-positive ttl
// uses seven days. Keys never outlive the session's own expiry.
func NewRedisStore(client *redis.Client, name string, ttl time.Duration, opts ...RedisOption) *RedisStore {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	s := &RedisStore{client: client, name: name, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Load(ctx context.Context) (*Record, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := s.ttl
	if !rec.Session.ExpiresAt.IsZero() {
		left := rec.Session.ExpiresAt.Sub(s.now())
		if left <= 0 {
			return s.Delete(ctx)
		}
		if left < ttl {
			ttl = left
		}
	}

	if err := s.client.Set(ctx, s.key(), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, s.name)
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shift-agent/shift-agent/internal/auth/domain"
)

const (
	principalKeyPrefix = "shift:principal:" // shift:principal:{firebase_uid}
	principalTTL       = 30 * time.Minute
)

// PrincipalCache keeps resolved principals in Redis so authenticated requests
// skip the user lookup.
type PrincipalCache struct {
	client *redis.Client
}

func NewPrincipalCache(client *redis.Client) *PrincipalCache {
	return &PrincipalCache{client: client}
}

// Get returns domain.ErrUserNotFound on a cache miss.
func (c *PrincipalCache) Get(ctx context.Context, firebaseUID string) (*domain.Principal, error) {
	data, err := c.client.Get(ctx, c.key(firebaseUID)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}

	var p domain.Principal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal principal: %w", err)
	}
	return &p, nil
}

func (c *PrincipalCache) Set(ctx context.Context, p *domain.Principal) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal principal: %w", err)
	}
	if err := c.client.Set(ctx, c.key(p.FirebaseUID), data, principalTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache principal: %w", err)
	}
	return nil
}

func (c *PrincipalCache) Delete(ctx context.Context, firebaseUID string) error {
	if err := c.client.Del(ctx, c.key(firebaseUID)).Err(); err != nil {
		return fmt.Errorf("failed to evict principal: %w", err)
	}
	return nil
}

func (c *PrincipalCache) key(firebaseUID string) string {
	return fmt.Sprintf("%s%s", principalKeyPrefix, firebaseUID)
}

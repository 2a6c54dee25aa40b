package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultLinkTTL bounds how long an issued token stays cached. Tokens
// never change while a link is active, so the TTL only limits memory,
// not correctness.
const DefaultLinkTTL = 24 * time.Hour

// LinkCache is a Redis fast path for short-link issuance: it maps a
// recipe to its active token so repeated get-link calls skip Postgres.
// Resolution is never served from here; the hit counter lives in the
// database and its increment must stay atomic with the active check.
type LinkCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLinkCache wraps a Redis client. A zero ttl falls back to
// DefaultLinkTTL.
func NewLinkCache(client *redis.Client, ttl time.Duration) *LinkCache {
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}
	return &LinkCache{client: client, ttl: ttl}
}

func linkKey(recipeID int64) string {
	return fmt.Sprintf("shortlink:recipe:%d", recipeID)
}

// TokenByRecipe returns the cached token for the recipe, or "" on miss.
func (c *LinkCache) TokenByRecipe(ctx context.Context, recipeID int64) (string, error) {
	token, err := c.client.Get(ctx, linkKey(recipeID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get cached token: %w", err)
	}
	return token, nil
}

// SetTokenByRecipe caches the recipe's active token.
func (c *LinkCache) SetTokenByRecipe(ctx context.Context, recipeID int64, token string) error {
	if err := c.client.Set(ctx, linkKey(recipeID), token, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache token: %w", err)
	}
	return nil
}

// InvalidateRecipe drops the recipe's cached token. Called on
// deactivation so a stale token is never re-issued.
func (c *LinkCache) InvalidateRecipe(ctx context.Context, recipeID int64) error {
	if err := c.client.Del(ctx, linkKey(recipeID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached token: %w", err)
	}
	return nil
}

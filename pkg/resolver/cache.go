package resolver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "ledger:receiver:"

// CachedResolver wraps a Resolver with a Redis cache. Identity mappings
// change rarely, so reads are served from the cache for the configured TTL;
// Invalidate evicts a mapping early when an identity is re-linked.
type CachedResolver struct {
	Next   Resolver
	Client *redis.Client
	TTL    time.Duration
	Logger *slog.Logger
}

// NewCachedResolver creates a new CachedResolver.
func NewCachedResolver(next Resolver, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedResolver {
	return &CachedResolver{Next: next, Client: client, TTL: ttl, Logger: logger}
}

// Make sure we conform to the interface
var _ Resolver = (*CachedResolver)(nil)

// ResolveReceiver serves the mapping from cache when present, falling through
// to the underlying resolver otherwise. Cache failures degrade to the remote
// lookup rather than failing the resolution.
func (r *CachedResolver) ResolveReceiver(ctx context.Context, externalID string) (string, error) {
	key := cacheKeyPrefix + externalID

	cached, err := r.Client.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		r.Logger.Warn("receiver cache read failed", "external_id", externalID, "error", err)
	}

	internalID, err := r.Next.ResolveReceiver(ctx, externalID)
	if err != nil {
		return "", err
	}

	if err := r.Client.Set(ctx, key, internalID, r.TTL).Err(); err != nil {
		r.Logger.Warn("receiver cache write failed", "external_id", externalID, "error", err)
	}

	return internalID, nil
}

// Invalidate evicts a cached mapping.
func (r *CachedResolver) Invalidate(ctx context.Context, externalID string) error {
	return r.Client.Del(ctx, cacheKeyPrefix+externalID).Err()
}

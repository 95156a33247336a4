package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/ports"
)

// Road distances change rarely; entries can live for a while.
const redisDistanceTTL = 30 * 24 * time.Hour

// RedisDistanceCache is a Redis-backed alternative to the SQL distance
// cache, useful when several service instances share one cache.
type RedisDistanceCache struct {
	client *redis.Client
}

func NewRedisDistanceCache(client *redis.Client) *RedisDistanceCache {
	return &RedisDistanceCache{client: client}
}

type redisDistanceEntry struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

func distanceKey(from, to domain.Coordinate, profile string) string {
	// Six decimals (~0.1 m) keeps keys stable across float formatting.
	return fmt.Sprintf("dist:%.6f,%.6f|%.6f,%.6f|%s",
		from.Lat, from.Lng, to.Lat, to.Lng, profile)
}

// Get fetches a cached result for one coordinate pair and profile.
func (r *RedisDistanceCache) Get(
	ctx context.Context,
	from, to domain.Coordinate,
	profile string,
) (ports.DistanceResult, bool, error) {
	if r.client == nil {
		return ports.DistanceResult{}, false, errors.New("redis distance cache: client is nil")
	}

	raw, err := r.client.Get(ctx, distanceKey(from, to, profile)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get redis distance cache: %w", err)
	}

	var entry redisDistanceEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get redis distance cache: decode entry: %w", err)
	}

	return ports.DistanceResult{
		DistanceKm:  entry.DistanceKm,
		DurationMin: entry.DurationMin,
	}, true, nil
}

// Put stores one result with a TTL.
func (r *RedisDistanceCache) Put(
	ctx context.Context,
	from, to domain.Coordinate,
	profile string,
	result ports.DistanceResult,
) error {
	if r.client == nil {
		return errors.New("redis distance cache: client is nil")
	}

	payload, err := json.Marshal(redisDistanceEntry{
		DistanceKm:  result.DistanceKm,
		DurationMin: result.DurationMin,
	})
	if err != nil {
		return fmt.Errorf("insert redis distance cache: encode entry: %w", err)
	}

	if err := r.client.Set(ctx, distanceKey(from, to, profile), payload, redisDistanceTTL).Err(); err != nil {
		return fmt.Errorf("insert redis distance cache: %w", err)
	}

	return nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"flight-itinerary-service/internal/domain"
	"flight-itinerary-service/internal/platform/obs"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisItineraryCache stores solved itineraries as JSON strings with a TTL.
type RedisItineraryCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisItineraryCache wraps client. A ttl of zero or less keeps entries until evicted.
func NewRedisItineraryCache(client redis.UniversalClient, ttl time.Duration) *RedisItineraryCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisItineraryCache{client: client, ttl: ttl}
}

// Ping verifies the connection at startup.
func (r *RedisItineraryCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis itinerary cache: ping: %w", err)
	}
	return nil
}

func (r *RedisItineraryCache) Get(ctx context.Context, key string) (_ domain.Itinerary, _ bool, err error) {
	defer obs.Time(ctx, "itinerary.cache.redis.Get")(&err)

	if strings.TrimSpace(key) == "" {
		return domain.Itinerary{}, false, errors.New("get itinerary cache: key must not be empty")
	}

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Itinerary{}, false, nil
	}
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("get itinerary cache: redis get: %w", err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("get itinerary cache: decode payload: %w", err)
	}
	return it, true, nil
}

func (r *RedisItineraryCache) Put(ctx context.Context, key string, it domain.Itinerary) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("insert itinerary cache: key must not be empty")
	}

	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("insert itinerary cache: encode payload: %w", err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert itinerary cache: redis set: %w", err)
	}
	return nil
}

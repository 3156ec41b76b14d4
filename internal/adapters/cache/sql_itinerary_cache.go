package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flight-itinerary-service/internal/domain"
	"flight-itinerary-service/internal/platform/obs"
	"fmt"
	"strings"
	"time"
)

// noExpiry is stored as expires_at when the cache has no TTL.
var noExpiry = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// SQLItineraryCache stores solved itineraries in the itinerary_cache table.
// A TTL of zero or less keeps entries until they are overwritten, like the
// Redis cache.
type SQLItineraryCache struct {
	DB  *sql.DB
	TTL time.Duration
	now func() time.Time
}

func NewSQLItineraryCache(db *sql.DB, ttl time.Duration) *SQLItineraryCache {
	return &SQLItineraryCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch an unexpired itinerary by key.
func (s *SQLItineraryCache) Get(ctx context.Context, key string) (_ domain.Itinerary, _ bool, err error) {
	defer obs.Time(ctx, "itinerary.cache.sql.Get")(&err)

	if s.DB == nil {
		return domain.Itinerary{}, false, errors.New("itinerary cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return domain.Itinerary{}, false, errors.New("get itinerary cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM itinerary_cache
	WHERE cache_key = $1
		AND expires_at > $2;
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.now()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Itinerary{}, false, nil
	}
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("get itinerary cache: query itinerary_cache table: %w", err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal(payload, &it); err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("get itinerary cache: decode payload: %w", err)
	}
	return it, true, nil
}

// Store an itinerary under key, replacing any previous entry.
func (s *SQLItineraryCache) Put(ctx context.Context, key string, it domain.Itinerary) error {
	if s.DB == nil {
		return errors.New("itinerary cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert itinerary cache: key must not be empty")
	}

	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("insert itinerary cache: encode payload: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO itinerary_cache (cache_key, payload, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		expires_at = EXCLUDED.expires_at;
	`, key, payload, s.expiresAt())
	if err != nil {
		return fmt.Errorf("insert itinerary cache key=%q: %w", key, err)
	}

	return nil
}

func (s *SQLItineraryCache) expiresAt() time.Time {
	if s.TTL <= 0 {
		return noExpiry
	}
	return s.now().Add(s.TTL)
}

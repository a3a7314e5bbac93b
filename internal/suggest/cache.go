package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedSource memoizes another Source in Redis per clinician and month.
type CachedSource struct {
	next   Source
	client *redis.Client
	ttl    time.Duration
}

func NewCachedSource(next Source, client *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, client: client, ttl: ttl}
}

func cacheKey(clinicianID string, month time.Time) string {
	return fmt.Sprintf("suggest:%s:%s", clinicianID, month.Format("2006-01"))
}

func (c *CachedSource) Suggest(ctx context.Context, clinicianID string, month time.Time) ([]string, error) {
	key := cacheKey(clinicianID, month)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var dates []string
		if jsonErr := json.Unmarshal(raw, &dates); jsonErr == nil {
			return dates, nil
		}
	case !errors.Is(err, redis.Nil):
		return nil, fmt.Errorf("suggest: cache get: %w", err)
	}

	dates, err := c.next.Suggest(ctx, clinicianID, month)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dates)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return nil, fmt.Errorf("suggest: cache set: %w", err)
	}
	return dates, nil
}

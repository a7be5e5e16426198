package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 24 * time.Hour

// DedupChecker claims webhook delivery ids so redelivered callbacks are dropped.
// Key format: dedup:webhook:<id>
type DedupChecker struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewDedupChecker wraps client. A non-positive ttl falls back to 24h.
func NewDedupChecker(client redis.Cmdable, ttl time.Duration) *DedupChecker {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &DedupChecker{client: client, ttl: ttl}
}

// Claim sets the key only if absent. It returns false when another delivery
// already claimed it within the TTL.
func (d *DedupChecker) Claim(ctx context.Context, id string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(id), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	return ok, nil
}

func (d *DedupChecker) key(id string) string {
	return fmt.Sprintf("dedup:webhook:%s", id)
}

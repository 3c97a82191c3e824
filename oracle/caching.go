package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/homevisit/phleb-router/engineerr"
	"github.com/homevisit/phleb-router/entities"
)

// CachingOracle decorates a TravelTimeOracle with a Redis-backed cache keyed
// on the coordinate lists, per spec §5 ("the oracle is shared and
// stateless; its implementation may cache"). A cache miss falls through to
// inner and best-effort populates the cache; cache-write failures never
// fail the call.
type CachingOracle struct {
	inner TravelTimeOracle
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachingOracle wraps inner with a Redis cache using the given TTL.
func NewCachingOracle(inner TravelTimeOracle, rdb *redis.Client, ttl time.Duration) *CachingOracle {
	return &CachingOracle{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(origins, destinations []entities.Coordinate) string {
	h := sha256.New()
	for _, c := range origins {
		fmt.Fprintf(h, "o:%.6f,%.6f;", c.Lat, c.Lon)
	}
	for _, c := range destinations {
		fmt.Fprintf(h, "d:%.6f,%.6f;", c.Lat, c.Lon)
	}
	return "phleb-router:traveltime:" + hex.EncodeToString(h.Sum(nil))
}

// Query implements TravelTimeOracle, consulting the cache before delegating
// to inner.
func (c *CachingOracle) Query(ctx context.Context, origins, destinations []entities.Coordinate) ([][]int, error) {
	key := cacheKey(origins, destinations)

	if cached, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var matrix [][]int
		if jsonErr := json.Unmarshal(cached, &matrix); jsonErr == nil {
			return matrix, nil
		}
		// Corrupt cache entry: fall through and recompute.
	} else if err != redis.Nil {
		return nil, engineerr.Oracle("reading travel-time cache", err)
	}

	matrix, err := c.inner.Query(ctx, origins, destinations)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(matrix); err == nil {
		_ = c.rdb.Set(ctx, key, encoded, c.ttl).Err()
	}

	return matrix, nil
}

package optimize

import (
	"context"
	"strconv"
	"strings"
	"time"
)

const cacheKeyDelimiter = ":"

// CacheStore is the best-effort result cache. A miss is ("", false, nil).
type CacheStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CacheKey joins pathID, userID and the place ids of origin, destination and
// each waypoint in stored order. Optimized indices are relative to that order,
// so a permutation is a different key. c must have passed Validate.
func CacheKey(pathID, userID int64, c ClassifiedPath) string {
	parts := make([]string, 0, 4+len(c.Waypoints))
	parts = append(parts,
		strconv.FormatInt(pathID, 10),
		strconv.FormatInt(userID, 10),
		c.Origin.GooglePlaceID,
		c.Destination.GooglePlaceID,
	)
	for _, wp := range c.Waypoints {
		parts = append(parts, wp.GooglePlaceID)
	}
	return strings.Join(parts, cacheKeyDelimiter)
}

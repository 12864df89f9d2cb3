package rdb

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetCachedData is a generic read-through cache wrapper.
// On cache miss it invokes the callable, caches its result
// and returns it. Cache failures are logged, never surfaced,
// so a degraded Redis does not take the fetch path down.
func GetCachedData[T any](
	ctx context.Context,
	rdb *Service,
	cacheKey string,
	cacheTimeout time.Duration,
	callable func() (T, error), // Function to call if cache miss
) (T, error) {

	var zero, data T

	// A dead context fails the whole operation up front
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	// Try to get value from Redis cache.
	// The underlying data type needs to implement
	// the encoding.BinaryUnmarshaler interface if needed.
	err := rdb.Client.Get(ctx, cacheKey).Scan(&data)
	if err == nil {
		return data, nil
	}

	if err != redis.Nil {
		log.Printf(
			"Error getting data from Redis for key '%s': %v",
			cacheKey, err,
		)
	}

	// If not in cache or error, execute the callable
	data, err = callable()
	if err != nil {
		return zero, err
	}

	// Cache the data for later use.
	// The underlying data type needs to implement
	// the encoding.BinaryMarshaler interface if needed.
	if err = rdb.Client.Set(ctx, cacheKey, data, cacheTimeout).Err(); err != nil {
		// Don't return an error if unable to set redis cache
		log.Printf("Error setting cache in Redis for key '%s': %v", cacheKey, err)
	}

	return data, nil
}

// DeleteCachedData evicts a key from the cache
func DeleteCachedData(ctx context.Context, rdb *Service, cacheKey string) error {
	return rdb.Client.Del(ctx, cacheKey).Err()
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"pharmacy-stock-service/internal/domain"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache stores geocoded points as one hash per address, for
// deployments where several service instances share a warm cache.
type RedisGeocodeCache struct {
	Client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client}
}

// Fetch the cached point for an address.
func (r *RedisGeocodeCache) Get(ctx context.Context, address string) (domain.GeoPoint, bool, error) {
	if r.Client == nil {
		return domain.GeoPoint{}, false, errors.New("geocode cache: redis client is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.GeoPoint{}, false, errors.New("get geocode cache: address must not be empty")
	}

	vals, err := r.Client.HGetAll(ctx, redisKeyPrefix+address).Result()
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache: redis hgetall: %w", err)
	}
	if len(vals) == 0 {
		return domain.GeoPoint{}, false, nil
	}

	lat, err := strconv.ParseFloat(vals["lat"], 64)
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache: parse lat for %q: %w", address, err)
	}
	lon, err := strconv.ParseFloat(vals["lon"], 64)
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache: parse lon for %q: %w", address, err)
	}

	return domain.GeoPoint{Lat: lat, Lon: lon, Label: vals["label"]}, true, nil
}

// Store or replace the cached point for an address.
func (r *RedisGeocodeCache) Put(ctx context.Context, address string, point domain.GeoPoint) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	fields := map[string]any{
		"lat":   strconv.FormatFloat(point.Lat, 'f', -1, 64),
		"lon":   strconv.FormatFloat(point.Lon, 'f', -1, 64),
		"label": point.Label,
	}
	if err := r.Client.HSet(ctx, redisKeyPrefix+address, fields).Err(); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: redis hset: %w", address, err)
	}

	return nil
}

package cache

import (
	"context"
	"math"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"pharmacy-stock-service/internal/domain"
)

func newTestRedisCache(t *testing.T) *RedisGeocodeCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisGeocodeCache(client)
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	addr := "ul. Długa 12, Gdańsk, Polska"
	want := domain.GeoPoint{Lat: 54.3497, Lon: 18.6532, Label: "Długa 12, Gdańsk"}

	if err := c.Put(ctx, addr, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, addr)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if math.Abs(got.Lat-want.Lat) > 1e-9 || math.Abs(got.Lon-want.Lon) > 1e-9 {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got.Label != want.Label {
		t.Fatalf("label = %q, want %q", got.Label, want.Label)
	}
}

func TestRedisGeocodeCacheMiss(t *testing.T) {
	c := newTestRedisCache(t)

	_, ok, err := c.Get(context.Background(), "ul. Nieznana 1, Radom")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestRedisGeocodeCacheRejectsEmptyAddress(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	if _, _, err := c.Get(ctx, "   "); err == nil {
		t.Fatal("Get with blank address: expected error")
	}
	if err := c.Put(ctx, "", domain.GeoPoint{}); err == nil {
		t.Fatal("Put with empty address: expected error")
	}
}

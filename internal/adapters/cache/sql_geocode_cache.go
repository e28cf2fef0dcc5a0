package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pharmacy-stock-service/internal/domain"
	"pharmacy-stock-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping addresses to geocoded
// points.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached point for an address.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.GeoPoint{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.GeoPoint{}, false, errors.New("get geocode cache: address must not be empty")
	}

	q := `
	SELECT lat, lon, label
    FROM geocode_cache
    WHERE address = $1;
	`

	var pt domain.GeoPoint
	err = s.DB.QueryRowContext(ctx, q, address).Scan(&pt.Lat, &pt.Lon, &pt.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeoPoint{}, false, nil
	}
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return pt, true, nil
}

// Store or replace the cached point for an address.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, point domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lon, label)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		label = EXCLUDED.label;
	`
	if _, err := s.DB.ExecContext(ctx, q, address, point.Lat, point.Lon, point.Label); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}

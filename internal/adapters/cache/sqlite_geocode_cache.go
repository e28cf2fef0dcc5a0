package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pharmacy-stock-service/internal/domain"
)

// SQLite backed cache mapping address strings to geocoded points.
// Address keys are expected to be consistent (e.g., normalized)
// by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch the cached point for an address.
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (domain.GeoPoint, bool, error) {
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
    WHERE address = ?;
	`

	var pt domain.GeoPoint
	err := s.DB.QueryRowContext(ctx, q, address).Scan(&pt.Lat, &pt.Lon, &pt.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeoPoint{}, false, nil
	}
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return pt, true, nil
}

// Store or replace the cached point for an address.
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, point domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
        address,
        lat,
        lon,
        label
    )
    VALUES (?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, address, point.Lat, point.Lon, point.Label); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}

package ports

import (
	"context"

	"pharmacy-stock-service/internal/domain"
)

// GeocodeCache is a persistent address -> coordinates store backing the
// in-process geocode memo. Keys are expected to be consistent (e.g.,
// whitespace-normalized) by the caller.
type GeocodeCache interface {
	// Get returns the cached point for an address and whether it was present.
	Get(ctx context.Context, address string) (domain.GeoPoint, bool, error)
	// Put stores or replaces the cached point for an address.
	Put(ctx context.Context, address string, point domain.GeoPoint) error
}

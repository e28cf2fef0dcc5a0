package ports

import (
	"context"
	"pharmacy-stock-service/internal/domain"
)

// Geocoder resolves a free-text address to coordinates.
//
// A nil point with a nil error means the address could not be resolved;
// that outcome is final for the call (no retry with backoff) and the caller
// decides whether a missing geopoint voids its work. Errors are reserved
// for cancellation and infrastructure failures.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.GeoPoint, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pharmacy-stock-service/internal/adapters/stock"
	"pharmacy-stock-service/internal/catalog"
	"pharmacy-stock-service/internal/domain"
	"pharmacy-stock-service/internal/platform/obs"
	"pharmacy-stock-service/internal/ports"
)

// SearchService runs the whole pipeline for one query: resolve the user's
// address, discover nearby cities, aggregate stock across them, rank and
// compose. One linear pass, no state kept between queries.
type SearchService struct {
	Catalog  *catalog.Catalog
	Geocoder ports.Geocoder
	Sessions *stock.Pool

	// Country is appended to pharmacy addresses before geocoding.
	Country string
}

// Search answers "which pharmacies within radiusKm of address stock these
// medications". An unresolvable user address returns *domain.GeocodingError
// before any stock lookup; everything less fatal degrades into the result
// (empty lists, zero-hit cells).
func (s *SearchService) Search(
	ctx context.Context,
	address string,
	medications []string,
	radiusKm float64,
) (_ *domain.SearchResult, err error) {
	defer obs.Time(ctx, "search.Search")(&err)

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("search: address must be non-empty")
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("search: radius must be positive, got %f", radiusKm)
	}

	meds := dedupeMedications(medications)
	if len(meds) == 0 {
		return nil, errors.New("search: at least one medication is required")
	}

	user, err := s.Geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("search: geocode user address: %w", err)
	}
	if user == nil {
		// Hard stop: no user coordinates, no distances.
		return nil, &domain.GeocodingError{Address: address}
	}

	cities := s.Catalog.Nearby(*user, radiusKm)
	if len(cities) == 0 {
		return Compose(*user, meds, nil, nil), nil
	}

	// One session for the whole query; release is guaranteed.
	session, release, err := s.Sessions.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: acquire stock session: %w", err)
	}
	defer release()

	records, searched, err := Aggregate(ctx, session, cities, meds)
	if err != nil {
		return nil, fmt.Errorf("search: aggregate: %w", err)
	}

	ranked, err := Rank(ctx, s.Geocoder, *user, radiusKm, meds, records, s.Country)
	if err != nil {
		return nil, fmt.Errorf("search: rank: %w", err)
	}

	return Compose(*user, meds, ranked, searched), nil
}

// dedupeMedications trims entries, drops blanks and keeps first occurrence
// order. Equality is exact-string; medication strings are opaque keys here.
func dedupeMedications(medications []string) []string {
	seen := make(map[string]struct{}, len(medications))
	out := make([]string, 0, len(medications))
	for _, m := range medications {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

package services

import (
	"context"
	"log"
	"sort"
	"strings"

	"pharmacy-stock-service/internal/domain"
	"pharmacy-stock-service/internal/platform/obs"
	"pharmacy-stock-service/internal/ports"
)

// Rank geocodes every aggregated pharmacy, filters by the user's radius and
// returns the sorted list: pharmacies stocking everything first, then by
// distance ascending, ties keeping aggregation order (stable sort).
//
// The pharmacy's own geocoded position is trusted over its origin city's
// distance: a pharmacy surfaced by an in-radius city is still dropped when
// its street address geocodes outside the radius, or not at all.
func Rank(
	ctx context.Context,
	geocoder ports.Geocoder,
	user domain.GeoPoint,
	radiusKm float64,
	requested []string,
	records []*domain.PharmacyRecord,
	country string,
) (_ []domain.RankedPharmacy, err error) {
	defer obs.Time(ctx, "search.Rank")(&err)

	kept := make([]domain.RankedPharmacy, 0, len(records))

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pt, gerr := geocoder.Geocode(ctx, withCountry(rec.Address, country))
		if gerr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("pharmacy geocode failed name=%q addr=%q: %v", rec.Name, rec.Address, gerr)
			pt = nil
		}

		if pt == nil {
			// No coordinates, no distance: excluded from ranked output.
			continue
		}

		d := domain.HaversineKm(user, *pt)
		if d > radiusKm {
			continue
		}

		dist := d
		kept = append(kept, domain.RankedPharmacy{
			PharmacyRecord:    *rec,
			Location:          pt,
			DistanceKm:        &dist,
			HasAllMedications: len(rec.Medications) == len(requested),
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].HasAllMedications != kept[j].HasAllMedications {
			return kept[i].HasAllMedications
		}
		return *kept[i].DistanceKm < *kept[j].DistanceKm
	})

	return kept, nil
}

// withCountry appends ", <country>" unless the address already mentions it.
func withCountry(address, country string) string {
	if country == "" {
		return address
	}
	if strings.Contains(strings.ToLower(address), strings.ToLower(country)) {
		return address
	}
	return address + ", " + country
}

// Compose builds the final result from the ranked list: the priority list
// restricted to pharmacies stocking every requested medication, the full
// list, and the per-medication summary over the full list. Empty outcomes
// get an explanatory message rather than an error.
func Compose(
	user domain.GeoPoint,
	requested []string,
	ranked []domain.RankedPharmacy,
	searched []domain.CitySearch,
) *domain.SearchResult {
	priority := make([]domain.RankedPharmacy, 0, len(ranked))
	for _, r := range ranked {
		if r.HasAllMedications {
			priority = append(priority, r)
		}
	}

	summary := make(map[string]int, len(requested))
	for _, med := range requested {
		n := 0
		for i := range ranked {
			if ranked[i].HasMedication(med) {
				n++
			}
		}
		summary[med] = n
	}

	msg := ""
	switch {
	case len(searched) == 0:
		msg = "no cataloged cities within the requested radius"
	case len(ranked) == 0:
		msg = "no pharmacies with the requested medications within the radius"
	}

	return &domain.SearchResult{
		UserLocation:      user,
		MedicationSummary: summary,
		PriorityList:      priority,
		FullList:          ranked,
		CitiesSearched:    searched,
		Message:           msg,
	}
}

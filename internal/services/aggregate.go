package services

import (
	"context"
	"log"

	"pharmacy-stock-service/internal/domain"
	"pharmacy-stock-service/internal/platform/obs"
	"pharmacy-stock-service/internal/ports"
)

// Aggregate drives the stock provider across the cross-product of nearby
// cities and requested medications, merging results into one record per
// pharmacy identity.
//
// Calls are sequential and single-medication: the provider is one stateful
// session, and repeated single-medication queries are more reliable
// upstream than combined ones. A failing city+medication cell is recorded
// as zero hits and the loop continues; only cancellation stops it.
//
// Returned records preserve first-seen insertion order, which later stable
// sorting relies on. Within one run a record's medication set only grows.
func Aggregate(
	ctx context.Context,
	provider ports.StockProvider,
	cities []domain.CityDistance,
	medications []string,
) (_ []*domain.PharmacyRecord, _ []domain.CitySearch, err error) {
	defer obs.Time(ctx, "search.Aggregate")(&err)

	byKey := make(map[domain.PharmacyKey]*domain.PharmacyRecord)
	ordered := make([]*domain.PharmacyRecord, 0, 32)
	searched := make([]domain.CitySearch, 0, len(cities))

	for _, cd := range cities {
		hits := make(map[string]int, len(medications))

		for _, med := range medications {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}

			matches, qerr := provider.QueryStock(ctx, cd.City.Name, med)
			if qerr != nil {
				if ctx.Err() != nil {
					return nil, nil, ctx.Err()
				}
				log.Printf("stock query failed city=%q med=%q: %v", cd.City.Name, med, qerr)
				hits[med] = 0
				continue
			}

			hits[med] = len(matches)

			for i := range matches {
				merge(byKey, &ordered, &matches[i], med, cd)
			}
		}

		searched = append(searched, domain.CitySearch{
			City:       cd.City.Name,
			DistanceKm: cd.DistanceKm,
			Hits:       hits,
		})
	}

	return ordered, searched, nil
}

// merge folds one provider match into the running per-pharmacy map. For an
// already-known identity the medication set is unioned and the better of
// any two phones/external codes kept (non-empty wins); nothing is ever
// removed.
func merge(
	byKey map[domain.PharmacyKey]*domain.PharmacyRecord,
	ordered *[]*domain.PharmacyRecord,
	match *domain.PharmacyRecord,
	medication string,
	origin domain.CityDistance,
) {
	key := match.Key()

	if existing, ok := byKey[key]; ok {
		existing.AddMedication(medication)
		if existing.Phone == "" && match.Phone != "" {
			existing.Phone = match.Phone
		}
		if existing.ExternalCode == "" && match.ExternalCode != "" {
			existing.ExternalCode = match.ExternalCode
		}
		return
	}

	rec := &domain.PharmacyRecord{
		Name:           match.Name,
		Address:        match.Address,
		Phone:          match.Phone,
		ExternalCode:   match.ExternalCode,
		OriginCity:     origin.City.Name,
		OriginCityDist: origin.DistanceKm,
	}
	rec.AddMedication(medication)

	byKey[key] = rec
	*ordered = append(*ordered, rec)
}

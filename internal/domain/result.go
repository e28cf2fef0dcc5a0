package domain

import "fmt"

// CitySearch is per-city diagnostic telemetry from one aggregation run.
type CitySearch struct {
	City       string
	DistanceKm float64

	// Hits maps each requested medication to the number of pharmacies the
	// provider returned for it in this city. Failed lookups count as zero.
	Hits map[string]int
}

// SearchResult is the composed answer to one stock search.
type SearchResult struct {
	UserLocation GeoPoint

	// MedicationSummary maps each requested medication to how many
	// pharmacies in FullList carry it.
	MedicationSummary map[string]int

	// PriorityList holds only pharmacies confirmed to stock every requested
	// medication, within the radius, nearest first.
	PriorityList []RankedPharmacy

	// FullList holds every in-radius pharmacy, priority entries first, then
	// by distance.
	FullList []RankedPharmacy

	CitiesSearched []CitySearch

	// Message explains empty outcomes (no cities in radius, nothing in
	// stock). Empty on populated results.
	Message string
}

// GeocodingError reports that the user's own address could not be resolved
// by any geocoding variant. It is fatal for the whole query: without user
// coordinates no distances can be computed.
type GeocodingError struct {
	Address string
}

func (e *GeocodingError) Error() string {
	return fmt.Sprintf("address %q could not be geocoded", e.Address)
}

package domain

// PharmacyKey is the natural identity of a pharmacy across overlapping
// city/medication lookups. The upstream source has no stable numeric
// identifier for every entry, so the (name, address) pair is the key.
type PharmacyKey struct {
	Name    string
	Address string
}

// PharmacyRecord is the merged view of one pharmacy built up while folding
// in per-city, per-medication results. The medication list only ever grows
// within a single aggregation run: once a medication is confirmed in stock
// it is never removed, even if a later lookup fails to surface the same
// pharmacy again.
type PharmacyRecord struct {
	Name         string
	Address      string
	Phone        string
	ExternalCode string

	// Medications confirmed in stock, in first-confirmed order.
	Medications []string

	// City whose lookup first surfaced this pharmacy, and that city's
	// distance from the user.
	OriginCity     string
	OriginCityDist float64
}

// Key returns the deduplication identity of the record.
func (p *PharmacyRecord) Key() PharmacyKey {
	return PharmacyKey{Name: p.Name, Address: p.Address}
}

// HasMedication reports whether the given medication has been confirmed in
// stock. Equality is exact-string; fuzzy matching happens upstream.
func (p *PharmacyRecord) HasMedication(med string) bool {
	for _, m := range p.Medications {
		if m == med {
			return true
		}
	}
	return false
}

// AddMedication records a confirmed medication, ignoring duplicates.
func (p *PharmacyRecord) AddMedication(med string) {
	if !p.HasMedication(med) {
		p.Medications = append(p.Medications, med)
	}
}

// RankedPharmacy is a PharmacyRecord positioned relative to the user.
// Location and DistanceKm are nil when the pharmacy's own address could not
// be geocoded.
type RankedPharmacy struct {
	PharmacyRecord

	Location          *GeoPoint
	DistanceKm        *float64
	HasAllMedications bool
}

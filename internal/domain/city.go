package domain

// CityEntry is one row of the static city catalog: a canonical city name
// and its center coordinates. Entries are loaded once at startup and never
// mutated.
type CityEntry struct {
	Name string
	Lat  float64
	Lon  float64
}

// Location returns the catalog coordinates of the city center.
func (c CityEntry) Location() GeoPoint {
	return GeoPoint{Lat: c.Lat, Lon: c.Lon, Label: c.Name}
}

// CityDistance pairs a catalog city with its distance from a reference
// point, typically the user's geocoded address.
type CityDistance struct {
	City       CityEntry
	DistanceKm float64
}

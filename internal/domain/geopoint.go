package domain

import "math"

// Earth radius used for great-circle distances, in kilometers.
const earthRadiusKm = 6371.0

// GeoPoint is an immutable geographic position. Label carries the
// human-readable name the geocoder resolved, when one is available.
type GeoPoint struct {
	Lat   float64
	Lon   float64
	Label string
}

// HaversineKm returns the great-circle distance between two points in
// kilometers. Pure function; accurate to well within ±0.01 km over the
// 0-50 km radii this service works with.
func HaversineKm(a, b GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

package catalog

import (
	"testing"

	"pharmacy-stock-service/internal/domain"
)

func mustParse(t *testing.T, raw string) *Catalog {
	t.Helper()
	c, err := parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	return c
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}

	got := c.Resolve("Warszawa")
	if len(got) != 1 || got[0].Name != "Warszawa" {
		t.Fatalf("Resolve(Warszawa) = %v, want exact singleton", got)
	}
}

func TestParseRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty name", `[{"name": "  ", "lat": 1, "lon": 1}]`},
		{"duplicate", `[{"name": "A", "lat": 1, "lon": 1}, {"name": "A", "lat": 2, "lon": 2}]`},
		{"bad latitude", `[{"name": "A", "lat": 91, "lon": 1}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parse([]byte(tc.raw)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestNearbySortsAscending(t *testing.T) {
	// Two cities roughly 5.5 km apart on the equator.
	c := mustParse(t, `[
		{"name": "CityY", "lat": 0, "lon": 0.05},
		{"name": "CityX", "lat": 0, "lon": 0}
	]`)

	user := domain.GeoPoint{Lat: 0, Lon: 0}
	got := c.Nearby(user, 10)

	if len(got) != 2 {
		t.Fatalf("Nearby returned %d cities, want 2", len(got))
	}
	if got[0].City.Name != "CityX" || got[1].City.Name != "CityY" {
		t.Fatalf("cities not sorted nearest first: %q, %q", got[0].City.Name, got[1].City.Name)
	}
	if got[0].DistanceKm != 0 {
		t.Fatalf("CityX distance = %f, want 0", got[0].DistanceKm)
	}
	if got[1].DistanceKm < 5.4 || got[1].DistanceKm > 5.7 {
		t.Fatalf("CityY distance = %f, want ~5.56", got[1].DistanceKm)
	}
}

func TestNearbyExcludesOutOfRadius(t *testing.T) {
	c := mustParse(t, `[
		{"name": "Near", "lat": 0, "lon": 0.01},
		{"name": "Far", "lat": 0, "lon": 1.0}
	]`)

	got := c.Nearby(domain.GeoPoint{Lat: 0, Lon: 0}, 5)
	if len(got) != 1 || got[0].City.Name != "Near" {
		t.Fatalf("Nearby = %v, want only Near", got)
	}
}

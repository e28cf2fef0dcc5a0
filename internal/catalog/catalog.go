package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	_ "embed"

	"pharmacy-stock-service/internal/domain"
)

//go:embed cities.json
var citiesJSON []byte

// Catalog holds the fixed set of known cities and their coordinates.
// It is loaded once and read-only afterwards.
type Catalog struct {
	entries []domain.CityEntry
}

type cityRow struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Load builds the catalog from the embedded city data.
func Load() (*Catalog, error) {
	return parse(citiesJSON)
}

func parse(raw []byte) (*Catalog, error) {
	var rows []cityRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("load catalog: parse json: %w", err)
	}

	entries := make([]domain.CityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.CityEntry{Name: row.Name, Lat: row.Lat, Lon: row.Lon})
	}

	return New(entries)
}

// New builds a catalog from explicit entries, validating names and
// coordinates. Entry order is preserved; it drives resolver fallback and
// tie-breaking.
func New(entries []domain.CityEntry) (*Catalog, error) {
	out := make([]domain.CityEntry, 0, len(entries))
	seen := map[string]struct{}{}
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("load catalog: entry at index %d: name cannot be empty", i+1)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("load catalog: duplicate city %q", name)
		}
		if e.Lat < -90 || e.Lat > 90 || e.Lon < -180 || e.Lon > 180 {
			return nil, fmt.Errorf("load catalog: city %q has invalid coordinates (%f, %f)", name, e.Lat, e.Lon)
		}

		seen[name] = struct{}{}
		out = append(out, domain.CityEntry{Name: name, Lat: e.Lat, Lon: e.Lon})
	}

	return &Catalog{entries: out}, nil
}

// Entries returns all catalog entries in catalog order.
func (c *Catalog) Entries() []domain.CityEntry {
	out := make([]domain.CityEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of cataloged cities.
func (c *Catalog) Len() int { return len(c.entries) }

// Nearby returns the catalog cities within radiusKm of the user, nearest
// first. This works off the catalog's own coordinates: it answers "which
// cataloged cities are geographically close", independent of whatever city
// name the user typed.
func (c *Catalog) Nearby(user domain.GeoPoint, radiusKm float64) []domain.CityDistance {
	out := make([]domain.CityDistance, 0, 8)
	for _, e := range c.entries {
		d := domain.HaversineKm(user, e.Location())
		if d <= radiusKm {
			out = append(out, domain.CityDistance{City: e, DistanceKm: d})
		}
	}

	// Stable so equidistant cities keep catalog order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})

	return out
}

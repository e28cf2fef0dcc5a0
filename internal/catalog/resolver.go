package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"pharmacy-stock-service/internal/domain"
)

const maxResolveMatches = 5

// Resolve maps a free-text city name to catalog entries, best match first.
//
// Ladder: exact match (singleton); substring match in either direction;
// prefix match; and finally the first catalog entries, so the caller always
// has something to disambiguate against when the catalog is non-empty.
// Input is trimmed but not otherwise normalized; the catalog is assumed to
// share the alphabet of typical input.
func (c *Catalog) Resolve(input string) []domain.CityEntry {
	input = strings.TrimSpace(input)

	for _, e := range c.entries {
		if e.Name == input {
			return []domain.CityEntry{e}
		}
	}

	if input != "" {
		var subs []domain.CityEntry
		for _, e := range c.entries {
			if strings.Contains(e.Name, input) || strings.Contains(input, e.Name) {
				subs = append(subs, e)
				if len(subs) == maxResolveMatches {
					break
				}
			}
		}
		if len(subs) > 0 {
			return subs
		}

		var prefixed []domain.CityEntry
		for _, e := range c.entries {
			if strings.HasPrefix(e.Name, input) {
				prefixed = append(prefixed, e)
				if len(prefixed) == maxResolveMatches {
					break
				}
			}
		}
		if len(prefixed) > 0 {
			return prefixed
		}
	}

	n := maxResolveMatches
	if n > len(c.entries) {
		n = len(c.entries)
	}
	out := make([]domain.CityEntry, n)
	copy(out, c.entries[:n])
	return out
}

// Suggest returns up to n catalog entries closest to the input by
// edit distance, for disambiguation prompts. Unlike Resolve it folds case,
// and it never feeds back into resolution.
func (c *Catalog) Suggest(input string, n int) []domain.CityEntry {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || n <= 0 {
		return nil
	}

	type scored struct {
		entry domain.CityEntry
		dist  int
	}

	candidates := make([]scored, 0, len(c.entries))
	for _, e := range c.entries {
		d := levenshtein.ComputeDistance(input, strings.ToLower(e.Name))
		candidates = append(candidates, scored{entry: e, dist: d})
	}

	// Stable so ties keep catalog order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]domain.CityEntry, 0, n)
	for _, s := range candidates[:n] {
		out = append(out, s.entry)
	}
	return out
}

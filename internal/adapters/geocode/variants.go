package geocode

import (
	"regexp"
	"strings"
)

// Trailing house number on a street segment: "Marszałkowska 10", "Polna 3a",
// "Długa 8/12".
var houseNumberRe = regexp.MustCompile(`\s+\d+[a-zA-Z]?(?:/\d+[a-zA-Z]?)?$`)

// Polish postal code, e.g. "00-950".
var postalCodeRe = regexp.MustCompile(`\b\d{2}-\d{3}\b`)

// buildVariants derives the ordered fallback chain of query strings for one
// address: the address as given, the address without a street-prefix token,
// the address with a trailing house number dropped, and the bare city name.
// Duplicates and empty derivations are skipped.
func buildVariants(address string, streetPrefixes []string, country string) []string {
	variants := make([]string, 0, 4)
	seen := map[string]struct{}{}

	add := func(v string) {
		v = strings.Join(strings.Fields(v), " ")
		v = strings.Trim(v, " ,")
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	add(address)

	if stripped, ok := stripStreetPrefix(address, streetPrefixes); ok {
		add(stripped)
	}

	add(stripHouseNumber(address))

	add(bareCity(address, country))

	return variants
}

// stripStreetPrefix removes the first token matching a known street-type
// prefix ("ul.", "al.", ...). Matching folds case and a trailing dot.
func stripStreetPrefix(address string, prefixes []string) (string, bool) {
	fields := strings.Fields(address)
	for i, f := range fields {
		token := strings.ToLower(strings.TrimSuffix(strings.Trim(f, ","), "."))
		for _, p := range prefixes {
			if token == strings.ToLower(strings.TrimSuffix(p, ".")) {
				rest := append(append([]string{}, fields[:i]...), fields[i+1:]...)
				return strings.Join(rest, " "), true
			}
		}
	}
	return "", false
}

// stripHouseNumber drops a trailing house number from the street segment
// (everything before the first comma).
func stripHouseNumber(address string) string {
	segments := strings.SplitN(address, ",", 2)
	street := houseNumberRe.ReplaceAllString(strings.TrimSpace(segments[0]), "")
	if len(segments) == 1 {
		return street
	}
	return street + "," + segments[1]
}

// bareCity extracts the city-ish tail of the address: the last non-empty
// comma segment that is not the country, with any postal code removed.
func bareCity(address, country string) string {
	segments := strings.Split(address, ",")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := strings.TrimSpace(postalCodeRe.ReplaceAllString(segments[i], ""))
		if seg == "" {
			continue
		}
		if country != "" && strings.EqualFold(seg, country) {
			continue
		}
		return seg
	}
	return ""
}

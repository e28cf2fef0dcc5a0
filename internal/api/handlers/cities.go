package handlers

import (
	"net/http"
	"strings"

	"pharmacy-stock-service/internal/api/dto"
	"pharmacy-stock-service/internal/catalog"
	"pharmacy-stock-service/internal/domain"
)

const maxSuggestions = 3

// CitiesHandler serves the city catalog and name resolution.
type CitiesHandler struct {
	Catalog *catalog.Catalog
}

// List returns all cataloged cities, or resolves a name when ?q= is set.
func (h *CitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, r, http.StatusOK, toCityResponses(h.Catalog.Entries()))
		return
	}

	res := dto.ResolveCityResponse{
		Query:   q,
		Matches: toCityResponses(h.Catalog.Resolve(q)),
	}
	exact := len(res.Matches) == 1 && res.Matches[0].Name == q
	if !exact {
		res.Suggestions = toCityResponses(h.Catalog.Suggest(q, maxSuggestions))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func toCityResponses(in []domain.CityEntry) []dto.CityResponse {
	out := make([]dto.CityResponse, 0, len(in))
	for _, c := range in {
		out = append(out, dto.CityResponse{Name: c.Name, Lat: c.Lat, Lon: c.Lon})
	}
	return out
}

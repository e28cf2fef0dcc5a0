package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"pharmacy-stock-service/internal/api/dto"
	"pharmacy-stock-service/internal/domain"
	"pharmacy-stock-service/internal/services"
)

const (
	defaultRadiusKm = 10.0
	maxRadiusKm     = 50.0
)

// SearchHandler exposes the stock search pipeline over HTTP.
type SearchHandler struct {
	Service *services.SearchService
}

// Search validates the request and runs one search query end to end.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Address) == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}
	if len(req.Medications) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one medication is required")
		return
	}

	radius := req.RadiusKm
	if radius == 0 {
		radius = defaultRadiusKm
	}
	if radius < 0 || radius > maxRadiusKm {
		writeError(w, r, http.StatusBadRequest, "radius_km must be between 0 and 50")
		return
	}

	res, err := h.Service.Search(r.Context(), req.Address, req.Medications, radius)
	if err != nil {
		var ge *domain.GeocodingError
		if errors.As(err, &ge) {
			writeError(w, r, http.StatusUnprocessableEntity, ge.Error())
			return
		}
		log.Printf("search failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toSearchResponse(res))
}

func toSearchResponse(res *domain.SearchResult) dto.SearchResponse {
	out := dto.SearchResponse{
		UserLabel:         res.UserLocation.Label,
		MedicationSummary: res.MedicationSummary,
		PriorityList:      toPharmacyResponses(res.PriorityList),
		FullList:          toPharmacyResponses(res.FullList),
		CitiesSearched:    make([]dto.CitySearchResponse, 0, len(res.CitiesSearched)),
		Message:           res.Message,
	}
	for _, cs := range res.CitiesSearched {
		out.CitiesSearched = append(out.CitiesSearched, dto.CitySearchResponse{
			City:       cs.City,
			DistanceKm: cs.DistanceKm,
			Hits:       cs.Hits,
		})
	}
	return out
}

func toPharmacyResponses(in []domain.RankedPharmacy) []dto.PharmacyResponse {
	out := make([]dto.PharmacyResponse, 0, len(in))
	for _, p := range in {
		resp := dto.PharmacyResponse{
			Name:              p.Name,
			Address:           p.Address,
			Phone:             p.Phone,
			Code:              p.ExternalCode,
			Medications:       p.Medications,
			OriginCity:        p.OriginCity,
			DistanceKm:        p.DistanceKm,
			HasAllMedications: p.HasAllMedications,
		}
		if p.Location != nil {
			lat, lon := p.Location.Lat, p.Location.Lon
			resp.Lat, resp.Lon = &lat, &lon
		}
		out = append(out, resp)
	}
	return out
}

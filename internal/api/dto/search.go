package dto

type SearchRequest struct {
	Address     string   `json:"address"`
	Medications []string `json:"medications"`
	RadiusKm    float64  `json:"radius_km"`
}

type PharmacyResponse struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Phone             string   `json:"phone,omitempty"`
	Code              string   `json:"code,omitempty"`
	Medications       []string `json:"medications"`
	OriginCity        string   `json:"origin_city"`
	Lat               *float64 `json:"lat,omitempty"`
	Lon               *float64 `json:"lon,omitempty"`
	DistanceKm        *float64 `json:"distance_km,omitempty"`
	HasAllMedications bool     `json:"has_all_medications"`
}

type CitySearchResponse struct {
	City       string         `json:"city"`
	DistanceKm float64        `json:"distance_km"`
	Hits       map[string]int `json:"hits"`
}

type SearchResponse struct {
	UserLabel         string               `json:"user_label,omitempty"`
	MedicationSummary map[string]int       `json:"medication_summary"`
	PriorityList      []PharmacyResponse   `json:"priority_list"`
	FullList          []PharmacyResponse   `json:"full_list"`
	CitiesSearched    []CitySearchResponse `json:"cities_searched"`
	Message           string               `json:"message,omitempty"`
}

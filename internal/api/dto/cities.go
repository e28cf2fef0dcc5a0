package dto

type CityResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type ResolveCityResponse struct {
	Query       string         `json:"query"`
	Matches     []CityResponse `json:"matches"`
	Suggestions []CityResponse `json:"suggestions,omitempty"`
}

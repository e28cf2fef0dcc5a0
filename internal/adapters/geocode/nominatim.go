package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pharmacy-stock-service/internal/domain"
)

// Client queries a Nominatim-compatible geocoding endpoint.
type Client struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewClient(baseURL, userAgent string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("geocode client: base URL is empty")
	}
	if userAgent == "" {
		return nil, errors.New("geocode client: user agent is empty")
	}

	return &Client{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		userAgent: userAgent,
	}, nil
}

// Nominatim serializes coordinates as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves one query string to a point. A nil point with nil error
// means the backend returned no matches for this exact query.
func (c *Client) Lookup(ctx context.Context, query string) (*domain.GeoPoint, error) {
	endpoint := c.baseURL + "/search"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", query)
		q.Set("format", "jsonv2")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude for %q: %w", query, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude for %q: %w", query, err)
	}

	return &domain.GeoPoint{Lat: lat, Lon: lon, Label: places[0].DisplayName}, nil
}

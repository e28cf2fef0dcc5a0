package stock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"pharmacy-stock-service/internal/domain"
	"pharmacy-stock-service/internal/ports"
)

// HTTPProvider queries a JSON stock upstream, one city and one medication
// per call. Combined multi-medication queries are deliberately not
// supported: repeated single-medication lookups are more reliable against
// the upstream search.
//
// Each provider is one logical session; use a Pool for exclusivity.
type HTTPProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPProvider(baseURL, apiKey string) (*HTTPProvider, error) {
	if baseURL == "" {
		return nil, errors.New("stock provider: base URL is empty")
	}

	return &HTTPProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

type stockResponse struct {
	Matches []struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Code    string `json:"code"`
	} `json:"matches"`
}

// QueryStock returns pharmacies in the city carrying the medication, or a
// *ports.StockError.
func (p *HTTPProvider) QueryStock(ctx context.Context, city, medication string) ([]domain.PharmacyRecord, error) {
	city = strings.TrimSpace(city)
	medication = strings.TrimSpace(medication)
	if city == "" || medication == "" {
		return nil, errors.New("query stock: city and medication must be non-empty")
	}

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/stock", nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		if p.apiKey != "" {
			req.Header.Set("Authorization", p.apiKey)
		}
		req.Header.Set("Accept", "application/json")
		q := req.URL.Query()
		q.Set("city", city)
		q.Set("medication", medication)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			kind := ports.StockServerError
			if he.Code == http.StatusNotFound {
				kind = ports.StockNotFound
			}
			return nil, &ports.StockError{Kind: kind, City: city, Medication: medication, Detail: he.Error()}
		}
		return nil, &ports.StockError{Kind: ports.StockServerError, City: city, Medication: medication, Detail: err.Error()}
	}
	defer resp.Body.Close()

	var decoded stockResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ports.StockError{
			Kind: ports.StockServerError, City: city, Medication: medication,
			Detail: fmt.Sprintf("decode response: %v", err),
		}
	}

	if len(decoded.Matches) == 0 {
		return nil, &ports.StockError{Kind: ports.StockNoStock, City: city, Medication: medication}
	}

	out := make([]domain.PharmacyRecord, 0, len(decoded.Matches))
	for _, m := range decoded.Matches {
		name := strings.TrimSpace(m.Name)
		addr := strings.TrimSpace(m.Address)
		if name == "" || addr == "" {
			continue
		}
		out = append(out, domain.PharmacyRecord{
			Name:         name,
			Address:      addr,
			Phone:        strings.TrimSpace(m.Phone),
			ExternalCode: strings.TrimSpace(m.Code),
		})
	}

	return out, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (p *HTTPProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff while respecting context cancellation.
func (p *HTTPProvider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 250 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

package stock

import (
	"context"

	"pharmacy-stock-service/internal/domain"
	"pharmacy-stock-service/internal/ports"
)

// MockEntry seeds one city+medication cell of a MockProvider.
type MockEntry struct {
	City       string
	Medication string
	Matches    []domain.PharmacyRecord
}

// MockProvider is a deterministic in-memory StockProvider for tests and
// local runs. Cells with no seeded matches fail with NoStock; seeded errors
// take precedence. Calls records every cell queried, in order.
type MockProvider struct {
	m     map[string][]domain.PharmacyRecord
	errs  map[string]error
	Calls []string
}

func NewMockProvider(entries []MockEntry) *MockProvider {
	m := make(map[string][]domain.PharmacyRecord, len(entries))
	for _, e := range entries {
		m[e.City+"|"+e.Medication] = e.Matches
	}
	return &MockProvider{m: m, errs: map[string]error{}}
}

// Fail makes one cell return the given error.
func (p *MockProvider) Fail(city, medication string, err error) {
	p.errs[city+"|"+medication] = err
}

func (p *MockProvider) QueryStock(ctx context.Context, city, medication string) ([]domain.PharmacyRecord, error) {
	key := city + "|" + medication
	p.Calls = append(p.Calls, key)

	if err := p.errs[key]; err != nil {
		return nil, err
	}

	matches, ok := p.m[key]
	if !ok || len(matches) == 0 {
		return nil, &ports.StockError{Kind: ports.StockNoStock, City: city, Medication: medication}
	}

	// Copy so callers can't mutate the seeded fixtures.
	out := make([]domain.PharmacyRecord, len(matches))
	copy(out, matches)
	return out, nil
}

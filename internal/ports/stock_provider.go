package ports

import (
	"context"
	"fmt"

	"pharmacy-stock-service/internal/domain"
)

// StockErrorKind classifies a failed city+medication lookup.
type StockErrorKind string

const (
	// StockNotFound: the provider does not recognize the city or medication.
	StockNotFound StockErrorKind = "not_found"
	// StockServerError: the upstream source failed or timed out.
	StockServerError StockErrorKind = "server_error"
	// StockNoStock: the lookup succeeded but no pharmacy carries the medication.
	StockNoStock StockErrorKind = "no_stock"
)

// StockError is the typed failure of one QueryStock call. The aggregation
// engine treats every kind identically (zero matches, continue); only the
// diagnostic text differs.
type StockError struct {
	Kind       StockErrorKind
	City       string
	Medication string
	Detail     string
}

func (e *StockError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("stock query %s/%s: %s: %s", e.City, e.Medication, e.Kind, e.Detail)
	}
	return fmt.Sprintf("stock query %s/%s: %s", e.City, e.Medication, e.Kind)
}

// StockProvider answers "does city C have medication M in stock, and where".
//
// Implementations are single stateful sessions: at most one query may be in
// flight per instance. Callers needing exclusivity should go through a
// session pool rather than rely on the provider for mutual exclusion.
type StockProvider interface {
	// QueryStock returns pharmacies in the given city matching one
	// medication query string, or a *StockError.
	QueryStock(ctx context.Context, city, medication string) ([]domain.PharmacyRecord, error)
}

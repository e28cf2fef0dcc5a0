package stock

import (
	"context"
	"errors"

	"pharmacy-stock-service/internal/ports"
)

// Pool hands out exclusive stock-provider sessions. A provider instance is
// a single stateful session and supports at most one in-flight query, so a
// whole user query holds one session from acquire to release; a concurrent
// query waits for a free session instead of sharing one.
type Pool struct {
	sessions chan ports.StockProvider
}

// NewPool builds a pool over the given sessions.
func NewPool(sessions ...ports.StockProvider) (*Pool, error) {
	if len(sessions) == 0 {
		return nil, errors.New("session pool: at least one session is required")
	}

	ch := make(chan ports.StockProvider, len(sessions))
	for _, s := range sessions {
		if s == nil {
			return nil, errors.New("session pool: nil session")
		}
		ch <- s
	}

	return &Pool{sessions: ch}, nil
}

// Acquire blocks until a session is free or ctx is done. The release func
// must be called exactly once; deferring it right after a successful
// Acquire guarantees the session returns to the pool.
func (p *Pool) Acquire(ctx context.Context) (ports.StockProvider, func(), error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case s := <-p.sessions:
		return s, func() { p.sessions <- s }, nil
	}
}

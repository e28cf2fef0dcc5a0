package geocode

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"pharmacy-stock-service/internal/domain"
	"pharmacy-stock-service/internal/platform/obs"
	"pharmacy-stock-service/internal/ports"
)

// Backend is the raw geocoding lookup the gateway drives. A nil point with
// nil error is "no match for this query string".
type Backend interface {
	Lookup(ctx context.Context, query string) (*domain.GeoPoint, error)
}

// GatewayConfig tunes pacing and address-variant derivation.
type GatewayConfig struct {
	// CallDelay is the minimum spacing between distinct Geocode calls that
	// reach the backend. The backend's documented policy is at most one
	// request per second; 1.1s keeps a margin.
	CallDelay time.Duration
	// VariantDelay is the pause between variant attempts within one call.
	VariantDelay time.Duration
	// StreetPrefixes are street-type tokens removable in variant 2.
	StreetPrefixes []string
	// Country is the catalog's country, skipped when deriving the bare-city
	// variant.
	Country string
}

// DefaultConfig returns the production pacing and Polish address defaults.
func DefaultConfig() GatewayConfig {
	return GatewayConfig{
		CallDelay:      1100 * time.Millisecond,
		VariantDelay:   300 * time.Millisecond,
		StreetPrefixes: []string{"ul.", "al.", "pl.", "os."},
		Country:        "Polska",
	}
}

// Gateway turns free-text addresses into coordinates through a fallback
// chain of address variants, a process-lifetime memo, an optional
// persistent cache, and rate pacing toward the backend.
//
// Safe for concurrent use; concurrent callers serialize on the pacer.
type Gateway struct {
	backend Backend
	store   ports.GeocodeCache
	cfg     GatewayConfig
	pace    *pacer

	mu   sync.Mutex
	memo map[string]domain.GeoPoint
}

// NewGateway builds a gateway. store may be nil to run memo-only.
func NewGateway(backend Backend, store ports.GeocodeCache, cfg GatewayConfig) *Gateway {
	return &Gateway{
		backend: backend,
		store:   store,
		cfg:     cfg,
		pace:    newPacer(cfg.CallDelay),
		memo:    make(map[string]domain.GeoPoint),
	}
}

// Geocode resolves an address, trying each derived variant once in order
// and stopping at the first hit. A full pass with no hit returns (nil, nil)
// and is not retried with backoff; the caller decides whether a missing
// geopoint voids its work. Successful lookups are memoized by exact input
// for the process lifetime, so re-geocoding the same pharmacy address
// across medication queries costs one round trip.
func (g *Gateway) Geocode(ctx context.Context, address string) (_ *domain.GeoPoint, err error) {
	defer obs.Time(ctx, "geocode.Geocode")(&err)

	key := strings.Join(strings.Fields(address), " ")
	if key == "" {
		return nil, nil
	}

	g.mu.Lock()
	if pt, ok := g.memo[key]; ok {
		g.mu.Unlock()
		return &pt, nil
	}
	g.mu.Unlock()

	if g.store != nil {
		pt, ok, err := g.store.Get(ctx, key)
		if err != nil {
			log.Printf("geocode cache read failed addr=%q: %v", key, err)
		} else if ok {
			g.remember(key, pt)
			return &pt, nil
		}
	}

	if err := g.pace.Wait(ctx); err != nil {
		return nil, err
	}

	for i, variant := range buildVariants(key, g.cfg.StreetPrefixes, g.cfg.Country) {
		if i > 0 {
			if err := sleep(ctx, g.cfg.VariantDelay); err != nil {
				return nil, err
			}
		}

		pt, err := g.backend.Lookup(ctx, variant)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("geocode lookup failed variant=%q: %v", variant, err)
			continue
		}
		if pt == nil {
			continue
		}

		g.remember(key, *pt)
		if g.store != nil {
			if err := g.store.Put(ctx, key, *pt); err != nil {
				log.Printf("geocode cache write failed addr=%q: %v", key, err)
			}
		}
		return pt, nil
	}

	return nil, nil
}

func (g *Gateway) remember(key string, pt domain.GeoPoint) {
	g.mu.Lock()
	g.memo[key] = pt
	g.mu.Unlock()
}
